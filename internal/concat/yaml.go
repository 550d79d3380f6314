package concat

import (
	"gopkg.in/yaml.v3"
)

type yamlFile struct {
	Path     string `yaml:"path"`
	Language string `yaml:"language,omitempty"`
	Status   Status `yaml:"status"`
	Error    string `yaml:"error,omitempty"`
	Content  string `yaml:"content"`
}

type yamlSummary struct {
	Extracted   int `yaml:"extracted"`
	Included    int `yaml:"included"`
	Unsupported int `yaml:"unsupported"`
	Failed      int `yaml:"failed"`
}

type yamlDocument struct {
	Summary yamlSummary `yaml:"summary"`
	Files   []yamlFile  `yaml:"files"`
}

// YAML renders the result as a YAML document with a per-status summary followed by
// the files.
func (r *Result) YAML() ([]byte, error) {
	doc := yamlDocument{
		Summary: yamlSummary{
			Extracted:   r.Count(StatusExtracted),
			Included:    r.Count(StatusIncluded),
			Unsupported: r.Count(StatusUnsupported),
			Failed:      r.Count(StatusFailed),
		},
		Files: make([]yamlFile, 0, len(r.Files)),
	}
	for _, f := range r.Files {
		yf := yamlFile{
			Path:     f.Path,
			Language: f.Language,
			Status:   f.Status,
			Content:  f.Content,
		}
		if f.Err != nil {
			yf.Error = f.Err.Error()
		}
		doc.Files = append(doc.Files, yf)
	}
	return yaml.Marshal(doc)
}
