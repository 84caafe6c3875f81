/*
Package report renders trees and their evaluations for humans.
*/
package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pkg/errors"

	"github.com/pbanos/pricetree/listing"
	"github.com/pbanos/pricetree/tree"
)

// NewDefaultTableStyle returns the style evaluation tables are rendered
// with unless told otherwise.
func NewDefaultTableStyle() *table.Style {
	style := table.Style{
		Name:    "StyleRounded",
		Box:     table.StyleBoxRounded,
		Format:  table.FormatOptionsDefault,
		HTML:    table.DefaultHTMLOptions,
		Options: table.OptionsDefault,
		Title:   table.TitleOptionsDefault,
		Color:   table.ColorOptionsDefault,
	}
	style.Color.Header = text.Colors{text.Bold}
	return &style
}

/*
WriteArena takes a tree and an io.Writer and writes one line per node of
the tree's arena onto it, in arena order, as the index of the node followed
by the node itself.
*/
func WriteArena(t *tree.Tree, w io.Writer) error {
	for i, n := range t.Nodes {
		_, err := fmt.Fprintf(w, "%d - %v\n", i, n)
		if err != nil {
			return errors.Wrapf(err, "writing node %d", i)
		}
	}
	return nil
}

/*
WriteEvaluation takes an evaluation, an io.Writer, a table style and whether
to use colors and writes onto the writer a summary of the evaluation
followed by its confusion matrix, with the recall of every bracket at the
end of its row and its precision at the bottom of its column. A nil style
renders the table in the plain default style.
*/
func WriteEvaluation(e *tree.Evaluation, w io.Writer, style *table.Style, withColor bool) error {
	write := func(w io.Writer, format string, args ...interface{}) {
		fmt.Fprintf(w, format, args...)
	}
	if withColor {
		write = accuracyColor(e.Accuracy()).FprintfFunc()
	}
	write(w, "Accuracy: %.2f%% (%d/%d)\n", 100*e.Accuracy(), e.Correct, e.Total)
	if e.NoData > 0 {
		fmt.Fprintf(w, "No data to predict %d of %d records\n", e.NoData, e.Total)
	}

	t := table.NewWriter()
	if style != nil {
		t.SetStyle(*style)
	}
	header := table.Row{"actual \\ predicted"}
	for _, b := range listing.Brackets() {
		header = append(header, b.String())
	}
	header = append(header, "no data", "recall")
	t.AppendHeader(header)
	for _, b := range listing.Brackets() {
		row := table.Row{b.String()}
		for _, c := range e.Confusion[b] {
			row = append(row, c)
		}
		row = append(row, percent(e.Recall(b)))
		t.AppendRow(row)
	}
	footer := table.Row{"precision"}
	for _, b := range listing.Brackets() {
		footer = append(footer, percent(e.Precision(b)))
	}
	t.AppendFooter(footer)
	_, err := io.WriteString(w, t.Render()+"\n")
	return errors.Wrap(err, "writing confusion matrix")
}

func accuracyColor(accuracy float64) *color.Color {
	switch {
	case accuracy >= 0.75:
		return color.New(color.FgGreen)
	case accuracy >= 0.5:
		return color.New(color.FgYellow)
	}
	return color.New(color.FgRed)
}

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", 100*f)
}
