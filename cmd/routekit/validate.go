package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/routekit-dev/routekit/parser"
	"github.com/routekit-dev/routekit/schema"
	"github.com/routekit-dev/routekit/validate"
)

// legacySuffix marks manifests in the legacy sandbox dialect, which go
// through the schema checker instead of the document validator.
const legacySuffix = ".sandbox.json"

type validateOptions struct {
	mustOffer    []string
	mustUse      []string
	features     []string
	extraSchemas []string
	watch        bool
}

func newValidateCommand() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate <glob>...",
		Short: "Validate component manifests",
		Long: `Validate component manifests against the full rule set.

Arguments are doublestar glob patterns; every match is validated and
all findings are reported before the command fails. Files ending in
` + legacySuffix + ` are checked against the legacy schema instead.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&opts.mustOffer, "must-offer", nil,
		"protocol every child and collection must be offered")
	flags.StringSliceVar(&opts.mustUse, "must-use", nil,
		"protocol every manifest must use")
	flags.StringSliceVar(&opts.features, "feature", nil,
		"optional manifest feature to enable (allow_long_names, dynamic_offers, hub_access)")
	flags.StringSliceVar(&opts.extraSchemas, "extra-schema", nil,
		"additional schema for legacy manifests, as path or path=error-suffix")
	flags.BoolVar(&opts.watch, "watch", false,
		"stay running and revalidate manifests when they change")
	return cmd
}

// runner holds the per-invocation validation pipeline.
type runner struct {
	validator *validate.Validator
	checker   *schema.Checker
	out       func(format string, args ...interface{})
}

func runValidate(cmd *cobra.Command, opts *validateOptions, globs []string) error {
	files, err := expandGlobs(globs)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no manifests match %s", strings.Join(globs, " "))
	}

	features := make([]validate.Feature, 0, len(opts.features))
	for _, name := range opts.features {
		feature, ok := validate.ParseFeature(name)
		if !ok {
			return fmt.Errorf("unknown feature %q", name)
		}
		features = append(features, feature)
	}

	checker, err := newChecker(opts.extraSchemas)
	if err != nil {
		return err
	}

	r := &runner{
		validator: validate.New(
			validate.WithFeatures(features...),
			validate.WithRequirements(validate.ProtocolRequirements{
				MustOffer: opts.mustOffer,
				MustUse:   opts.mustUse,
			}),
		),
		checker: checker,
		out: func(format string, args ...interface{}) {
			fmt.Fprintf(cmd.OutOrStdout(), format, args...)
		},
	}

	if err := r.validateAll(files); !opts.watch {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return r.watch(ctx, files)
}

func newChecker(specs []string) (*schema.Checker, error) {
	extras := make([]schema.ExtraSchema, 0, len(specs))
	for _, spec := range specs {
		path, suffix, _ := strings.Cut(spec, "=")
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading extra schema: %w", err)
		}
		extras = append(extras, schema.ExtraSchema{
			Name:        filepath.Base(path),
			Data:        data,
			ErrorSuffix: suffix,
		})
	}
	return schema.NewChecker(schema.WithExtraSchemas(extras...))
}

// expandGlobs resolves every pattern and returns the union, sorted and
// deduplicated so output ordering is stable across runs.
func expandGlobs(globs []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range globs {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad glob %q: %w", pattern, err)
		}
		for _, match := range matches {
			if seen[match] {
				continue
			}
			seen[match] = true
			files = append(files, match)
		}
	}
	sort.Strings(files)
	return files, nil
}

func (r *runner) validateAll(files []string) error {
	invalid := 0
	for _, file := range files {
		if err := r.validateFile(file); err != nil {
			invalid++
			r.out("%s:\n%s\n", file, indent(err.Error()))
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d manifests invalid", invalid, len(files))
	}
	slog.Debug("all manifests valid", slog.Int("count", len(files)))
	return nil
}

func (r *runner) validateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if strings.HasSuffix(path, legacySuffix) {
		return r.checker.Check(data)
	}
	doc, err := parser.ForPath(path).Parse(data)
	if err != nil {
		return err
	}
	return r.validator.Validate(doc)
}

// watch revalidates manifests as they change until the context is
// canceled. Editors replace files rather than write in place, so
// create and rename events count as changes too.
func (r *runner) watch(ctx context.Context, files []string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, file := range files {
		watched[file] = true
		dirs[filepath.Dir(file)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}
	slog.Info("watching for changes", slog.Int("manifests", len(files)))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[event.Name] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			slog.Debug("manifest changed", slog.String("path", event.Name))
			if err := r.validateFile(event.Name); err != nil {
				r.out("%s:\n%s\n", event.Name, indent(err.Error()))
			} else {
				r.out("%s: ok\n", event.Name)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", slog.String("error", err.Error()))
		}
	}
}

func indent(s string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}
