// Package summary renders run reports and dataset overviews as terminal
// tables.
package summary

import (
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/hupe1980/imdbsieve/internal/filter"
)

// Align is a column alignment.
type Align int

// Column alignments.
const (
	AlignLeft Align = iota
	AlignRight
)

// Table renders headers and rows with the rounded style. Short rows are
// padded with empty cells. When color is set the header is bold.
func Table(headers []string, rows [][]string, aligns []Align, color bool) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	if color {
		tw.Style().Color.Header = text.Colors{text.Bold}
	}

	header := make(table.Row, columns)
	for i := range headers {
		header[i] = headers[i]
	}

	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}

		tw.AppendRow(r)
	}

	configs := make([]table.ColumnConfig, 0, columns)

	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}

		configs = append(configs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}

	tw.SetColumnConfigs(configs)

	return tw.Render()
}

// Count formats a row count with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}

// ShouldColorize reports whether w is a terminal.
func ShouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fd := file.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Export describes one written export file.
type Export struct {
	Kind     string
	Rows     int
	Excluded int
	Path     string
}

// Report is the outcome of a filter run.
type Report struct {
	Profile  string
	Criteria filter.Criteria
	Steps    []filter.Step
	Exports  []Export
}

// Render formats the report as a filter-step table followed by an export
// table.
func (r Report) Render(color bool) string {
	steps := make([][]string, 0, len(r.Steps)+1)
	for i, s := range r.Steps {
		steps = append(steps, []string{
			strconv.Itoa(i + 1),
			s.Name,
			Count(s.In),
			Count(s.Out),
			Count(s.Dropped()),
		})
	}

	exports := make([][]string, 0, len(r.Exports))
	for _, e := range r.Exports {
		exports = append(exports, []string{e.Kind, Count(e.Rows), Count(e.Excluded), e.Path})
	}

	out := "Profile: " + r.Profile + "\nCriteria: " + r.Criteria.String() + "\n"
	out += Table(
		[]string{"#", "Filter", "In", "Out", "Dropped"},
		steps,
		[]Align{AlignRight, AlignLeft, AlignRight, AlignRight, AlignRight},
		color,
	) + "\n"
	out += Table(
		[]string{"Export", "Rows", "Watched Excluded", "File"},
		exports,
		[]Align{AlignLeft, AlignRight, AlignRight, AlignLeft},
		color,
	) + "\n"

	return out
}
