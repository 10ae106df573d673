package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/imdbsieve/internal/config"
	"github.com/hupe1980/imdbsieve/internal/dataset"
	"github.com/hupe1980/imdbsieve/internal/frame"
	"github.com/hupe1980/imdbsieve/internal/summary"
)

type inspectOptions struct {
	format string
	top    int
}

func newInspectCommand() *cobra.Command {
	opts := &inspectOptions{}

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Summarise the datasets without filtering",
		Long: `Inspect loads the three datasets and prints what they contain: row
counts per file, how many titles carry a rating, the title types, and
the most common alias languages and genres.

Use it to check a fresh download before running filter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInspect(cmd.Context(), cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.format, "format", "table", "output format: table, json, yaml")
	f.IntVar(&opts.top, "top", 10, "number of languages and genres to list")

	return cmd
}

// inspectResult is the structured output of the inspect command.
type inspectResult struct {
	Datasets   []datasetInfo `json:"datasets" yaml:"datasets"`
	Rated      int           `json:"rated" yaml:"rated"`
	TitleTypes []countInfo   `json:"titleTypes" yaml:"titleTypes"`
	Languages  []countInfo   `json:"languages" yaml:"languages"`
	Genres     []countInfo   `json:"genres" yaml:"genres"`
}

type datasetInfo struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
	Rows int    `json:"rows" yaml:"rows"`
}

type countInfo struct {
	Value string `json:"value" yaml:"value"`
	Count int    `json:"count" yaml:"count"`
}

func runInspect(ctx context.Context, cmd *cobra.Command, opts *inspectOptions) error {
	switch opts.format {
	case "table", "json", "yaml":
	default:
		return &ExitError{Code: exitUsage, Err: fmt.Errorf("unknown format %q: expected table, json, yaml", opts.format)}
	}

	if opts.top < 0 {
		return &ExitError{Code: exitUsage, Err: fmt.Errorf("--top must not be negative, got %d", opts.top)}
	}

	cfg := config.FromContext(ctx)
	p := cfg.Paths()

	cat, err := dataset.Load(ctx, dataset.Paths{
		Basics:  p.Basics,
		Ratings: p.Ratings,
		Akas:    p.Akas,
	})
	if err != nil {
		return exitFor(err)
	}

	result := buildInspectResult(cat, p, opts.top)
	w := cmd.OutOrStdout()

	switch opts.format {
	case "json":
		return renderJSON(w, result)
	case "yaml":
		return renderYAML(w, result)
	default:
		return renderTable(w, result, !cfg.NoColor && summary.ShouldColorize(w))
	}
}

func buildInspectResult(cat *dataset.Catalog, p config.Paths, top int) inspectResult {
	return inspectResult{
		Datasets: []datasetInfo{
			{Name: "title.basics", Path: p.Basics, Rows: cat.Basics.Len()},
			{Name: "title.ratings", Path: p.Ratings, Rows: cat.Ratings.Len()},
			{Name: "title.akas", Path: p.Akas, Rows: cat.Akas.Len()},
		},
		Rated:      cat.Titles.Len(),
		TitleTypes: countValues(cat.Basics, dataset.ColTitleType, false, 0),
		Languages:  countValues(cat.Akas, dataset.ColLanguage, false, top),
		Genres:     countValues(cat.Basics, dataset.ColGenres, true, top),
	}
}

// countValues tallies the non-null values of col, most frequent first.
// With split, comma-separated cells count once per element. A limit of
// zero keeps every value.
func countValues(f *frame.Frame, col string, split bool, limit int) []countInfo {
	counts := make(map[string]int)

	f.Each(func(r frame.Row) {
		if r.IsNull(col) {
			return
		}

		v := r.Get(col)
		if !split {
			counts[v]++
			return
		}

		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				counts[part]++
			}
		}
	})

	out := make([]countInfo, 0, len(counts))
	for v, n := range counts {
		out = append(out, countInfo{Value: v, Count: n})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}

		return out[i].Value < out[j].Value
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out
}

func renderJSON(w io.Writer, result inspectResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(result)
}

func renderYAML(w io.Writer, result inspectResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(result); err != nil {
		return err
	}

	return enc.Close()
}

func renderTable(w io.Writer, result inspectResult, color bool) error {
	rows := make([][]string, 0, len(result.Datasets))
	for _, d := range result.Datasets {
		rows = append(rows, []string{d.Name, summary.Count(d.Rows), d.Path})
	}

	_, _ = fmt.Fprintln(w, "=== Datasets ===")
	_, _ = fmt.Fprintln(w, summary.Table(
		[]string{"Dataset", "Rows", "Path"},
		rows,
		[]summary.Align{summary.AlignLeft, summary.AlignRight, summary.AlignLeft},
		color,
	))
	_, _ = fmt.Fprintf(w, "Rated titles: %s\n", summary.Count(result.Rated))

	printCounts(w, "Title types", result.TitleTypes, color)
	printCounts(w, "Languages", result.Languages, color)
	printCounts(w, "Genres", result.Genres, color)

	return nil
}

func printCounts(w io.Writer, title string, counts []countInfo, color bool) {
	if len(counts) == 0 {
		return
	}

	rows := make([][]string, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []string{c.Value, summary.Count(c.Count)})
	}

	_, _ = fmt.Fprintf(w, "\n--- %s (%d) ---\n", title, len(counts))
	_, _ = fmt.Fprintln(w, summary.Table(
		[]string{"Value", "Count"},
		rows,
		[]summary.Align{summary.AlignLeft, summary.AlignRight},
		color,
	))
}
