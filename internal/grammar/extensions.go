package grammar

import (
	"path/filepath"
	"strings"
)

// DetectLanguage returns the language id registered for the file's extension, or ""
// when no grammar handles it. Matching ignores case.
func (r *Registry) DetectLanguage(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	return r.byExt[normalizeExt(ext)]
}

// Extensions returns a copy of the extension to language id table.
func (r *Registry) Extensions() map[string]string {
	out := make(map[string]string, len(r.byExt))
	for ext, id := range r.byExt {
		out[ext] = id
	}
	return out
}

// DetectLanguage uses the default registry.
func DetectLanguage(path string) string {
	return defaultRegistry.DetectLanguage(path)
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Detector returns a detection function that consults overrides (extension to
// language id) before the registry's own extension table.
func (r *Registry) Detector(overrides map[string]string) func(path string) string {
	if len(overrides) == 0 {
		return r.DetectLanguage
	}
	table := make(map[string]string, len(overrides))
	for ext, id := range overrides {
		table[normalizeExt(ext)] = strings.ToLower(strings.TrimSpace(id))
	}
	return func(path string) string {
		if id, ok := table[strings.ToLower(filepath.Ext(path))]; ok {
			return id
		}
		return r.DetectLanguage(path)
	}
}
