package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/alex-user-go/flightfinder/internal/search/types"
)

const (
	formatJSON  = "json"
	formatTable = "table"
)

const bestMark = "★"

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func render(w io.Writer, format string, result any) error {
	if format != formatTable {
		return writeJSON(w, result)
	}

	st := newStyles(lipgloss.NewRenderer(w))
	switch v := result.(type) {
	case *types.SiteOutcome:
		_, err := fmt.Fprintln(w, renderOutcome(st, v))
		return err
	case *types.Comparison:
		_, err := fmt.Fprintln(w, renderComparison(st, v))
		return err
	default:
		return writeJSON(w, result)
	}
}

func renderOutcome(st styles, o *types.SiteOutcome) string {
	var b strings.Builder
	b.WriteString(st.header.Render(o.Site))
	b.WriteString("\n")
	b.WriteString(st.dim.Render(o.Query))
	b.WriteString("\n")

	if o.Count == 0 {
		b.WriteString(st.dim.Render("No results."))
		return b.String()
	}

	rows := make([][]string, 0, len(o.Results))
	for i, r := range o.Results {
		price := r.PriceText()
		if price == "" {
			price = "-"
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), price, r.Title, r.URL})
	}
	b.WriteString(newTable(st).Headers("#", "PRICE", "TITLE", "URL").Rows(rows...).String())
	b.WriteString("\n")

	if o.Cheapest != nil {
		b.WriteString(st.best.Render("Cheapest: " + o.Cheapest.PriceText()))
		b.WriteString(" ")
		b.WriteString(st.dim.Render(o.Cheapest.URL))
	} else {
		b.WriteString(st.dim.Render("No prices found."))
	}
	return b.String()
}

func renderComparison(st styles, c *types.Comparison) string {
	var b strings.Builder
	b.WriteString(st.header.Render(fmt.Sprintf("Compared %d sites", c.SitesChecked)))
	b.WriteString("\n")

	rows := make([][]string, 0, len(c.Rows))
	for _, r := range c.Rows {
		mark := ""
		if r.IsBest {
			mark = bestMark
		}
		rows = append(rows, []string{mark, r.Site, r.CheapestPrice, r.URL})
	}
	b.WriteString(newTable(st).Headers("", "SITE", "CHEAPEST", "URL").Rows(rows...).String())
	b.WriteString("\n")

	b.WriteString(st.best.Render(fmt.Sprintf("Best deal: %s on %s", c.BestDeal.Price, c.BestDeal.Site)))
	b.WriteString("\n")
	b.WriteString(st.dim.Render(c.BestDeal.Title + " " + c.BestDeal.URL))
	return b.String()
}

func newTable(st styles) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.tableHeader
			}
			return st.cell
		})
}
