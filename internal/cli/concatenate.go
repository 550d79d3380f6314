package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvp-joe/loppers/internal/concat"
	"github.com/mvp-joe/loppers/internal/config"
	"github.com/mvp-joe/loppers/internal/discovery"
	"github.com/mvp-joe/loppers/internal/grammar"
	"github.com/mvp-joe/loppers/internal/skeleton"
	"github.com/mvp-joe/loppers/internal/watcher"
)

var (
	concatFlags     discoveryFlags
	concatNoExtract bool
	concatFormat    string
	concatWorkers   int
	concatProgress  bool
	concatWatch     bool
)

// concatenateCmd represents the concatenate command
var concatenateCmd = &cobra.Command{
	Use:     "concatenate [root]",
	Aliases: []string{"concat"},
	Short:   "Concatenate a project into one document of skeletons",
	Long: `Concatenate discovers every text file under root (default: the current
directory), replaces the bodies of supported source files with their skeletons and
writes all of them as one document. Each file starts with a "--- <path>" header.

Files in unsupported languages are included as-is. Files whose extraction fails are
included as-is with a warning. Binary files are skipped.

With --watch the document is rebuilt whenever a discovered file changes.

Examples:
  # Skeleton of the whole project to stdout
  loppers concatenate

  # Full sources, YAML document, written to a file
  loppers concatenate ./src --no-extract --format yaml -o context.yaml

  # Keep context.txt up to date while editing
  loppers concatenate -o context.txt --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConcatenate,
}

func init() {
	rootCmd.AddCommand(concatenateCmd)
	concatFlags.register(concatenateCmd)
	concatenateCmd.Flags().BoolVar(&concatNoExtract, "no-extract", false, "Include full file contents instead of skeletons")
	concatenateCmd.Flags().StringVar(&concatFormat, "format", "", "Output format: text or yaml (default from config, else text)")
	concatenateCmd.Flags().IntVar(&concatWorkers, "workers", 0, "Concurrent workers (default: one per CPU)")
	concatenateCmd.Flags().BoolVar(&concatProgress, "progress", false, "Show a progress bar on stderr")
	concatenateCmd.Flags().BoolVar(&concatWatch, "watch", false, "Rebuild the output when files change")
}

// concatRun is one resolved concatenate invocation.
type concatRun struct {
	root      string
	cfg       *config.Config
	output    string
	progress  bool
	verbose   bool
	extractor *skeleton.Extractor
	cache     *concat.Cache
}

func runConcatenate(cmd *cobra.Command, args []string) error {
	root := rootArg(args)
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	concatFlags.apply(cmd, &cfg.Discovery)
	if cmd.Flags().Changed("no-extract") {
		cfg.Concatenate.Extract = !concatNoExtract
	}
	if cmd.Flags().Changed("format") {
		cfg.Concatenate.Format = concatFormat
	}
	if cmd.Flags().Changed("workers") {
		cfg.Concatenate.Workers = concatWorkers
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	run := &concatRun{
		root:      root,
		cfg:       cfg,
		output:    concatFlags.output,
		progress:  concatProgress,
		verbose:   viper.GetBool("verbose"),
		extractor: skeleton.Default(),
	}

	if !concatWatch {
		return run.execute(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	}

	run.cache, err = concat.NewCache(concat.DefaultCacheSize)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return run.watch(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// execute discovers, concatenates and writes the document once.
func (r *concatRun) execute(ctx context.Context, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	paths, err := discovery.FindFiles(r.root, r.cfg.Discovery.Options())
	if err != nil {
		return err
	}
	paths = excludeOutput(paths, outputWithinRoot(r.root, r.output))
	if len(paths) == 0 {
		return fmt.Errorf("%w: no files found under %s", concat.ErrNoPaths, r.root)
	}

	status := newStatusPrinter(stderr, r.verbose)
	var bar *fileProgress
	if r.progress {
		bar = newFileProgress(stderr, len(paths), "Concatenating")
	}

	result, err := concat.Concatenate(ctx, r.root, paths, concat.Options{
		Extract:        r.cfg.Concatenate.Extract,
		IgnoreNotFound: true,
		Workers:        r.cfg.Concatenate.Workers,
		Detect:         r.extractor.Registry().Detector(r.cfg.Languages.Overrides),
		Extractor:      r.extractor,
		Cache:          r.cache,
		OnFile: func(f concat.File) {
			status.File(f)
			bar.OnFile()
		},
	})
	bar.Finish()
	if err != nil {
		return err
	}

	content, err := render(result, r.cfg.Concatenate.Format)
	if err != nil {
		return err
	}
	if r.verbose {
		fmt.Fprintf(stderr, "%d extracted, %d included, %d unsupported, %d failed\n",
			result.Count(concat.StatusExtracted), result.Count(concat.StatusIncluded),
			result.Count(concat.StatusUnsupported), result.Count(concat.StatusFailed))
	}
	return writeOutput(stdout, stderr, r.output, content)
}

// watch runs execute once, then again after every batch of changes until ctx ends.
func (r *concatRun) watch(ctx context.Context, stdout, stderr io.Writer) error {
	status := newStatusPrinter(stderr, r.verbose)
	if err := r.execute(ctx, stdout, stderr); err != nil {
		status.Warn("%v", err)
	}

	fd, err := discovery.New(r.root, r.cfg.Discovery.Options())
	if err != nil {
		return err
	}
	output := outputWithinRoot(r.root, r.output)

	w, err := watcher.NewFileWatcher(r.root, watcher.Options{
		Ignore: func(relPath string, isDir bool) bool {
			return relPath == output || fd.Ignored(relPath, isDir)
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	rebuild := make(chan []string, 1)
	if err := w.Start(ctx, func(paths []string) {
		select {
		case rebuild <- paths:
		default:
		}
	}); err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Stop()

	fmt.Fprintf(stderr, "Watching %s for changes (Ctrl+C to stop)\n", r.root)
	for {
		select {
		case <-ctx.Done():
			return nil
		case paths := <-rebuild:
			if r.verbose {
				fmt.Fprintf(stderr, "Changed: %s\n", strings.Join(paths, ", "))
			}
			if err := r.execute(ctx, stdout, stderr); err != nil {
				status.Warn("%v", err)
			}
		}
	}
}

func render(result *concat.Result, format string) (string, error) {
	if strings.EqualFold(format, config.FormatYAML) {
		data, err := result.YAML()
		if err != nil {
			return "", fmt.Errorf("failed to encode yaml: %w", err)
		}
		return string(data), nil
	}
	return result.Text() + "\n", nil
}

// detectorFor is shared by commands that only need language detection.
func detectorFor(cfg *config.Config) func(string) string {
	return grammar.Default().Detector(cfg.Languages.Overrides)
}
