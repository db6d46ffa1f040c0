package printer

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/obskit/obstable/pkg/obsdata"
)

// missingMarker is printed in place of a value equal to its kind's
// missing-value sentinel.
const missingMarker = "missing"

// nameColumnWidth returns the width of the name column: the longest rendered
// key actually materialized, with the "Location" heading as the floor.
func nameColumnWidth(req Request, table map[string]obsdata.Column) int {
	width := len("Location")
	for _, vr := range req.Variables {
		for _, key := range vr.Keys() {
			if _, ok := table[key]; ok && len(key) > width {
				width = len(key)
			}
		}
	}
	return width
}

// renderPages writes one table block per page: a heading of global record
// numbers, a separator, and one row per materialized rendered key in request
// order. Keys that were never materialized are skipped silently; their
// absence was already reported once during materialization.
func (p *Printer) renderPages(w io.Writer, req Request, table map[string]obsdata.Column, nameWidth int, pages [][]orderedPosition) {
	for _, page := range pages {
		fmt.Fprintf(w, "%*s | ", nameWidth, "Location")
		for _, pos := range page {
			fmt.Fprintf(w, "%*d | ", p.cfg.ColumnWidth, pos.Loc)
		}
		fmt.Fprintln(w)

		fmt.Fprint(w, strings.Repeat("-", nameWidth), "-+-")
		for range page {
			fmt.Fprint(w, strings.Repeat("-", p.cfg.ColumnWidth), "-+-")
		}
		fmt.Fprintln(w)

		for _, vr := range req.Variables {
			for _, key := range vr.Keys() {
				col, ok := table[key]
				if !ok {
					continue
				}
				fmt.Fprintf(w, "%*s | ", nameWidth, key)
				for _, pos := range page {
					fmt.Fprintf(w, "%s | ", p.formatCell(col, pos.Idx))
				}
				fmt.Fprintln(w)
			}
		}
		fmt.Fprintln(w)
	}
}

// formatCell renders one value right-aligned to the configured column width.
func (p *Printer) formatCell(col obsdata.Column, i int) string {
	width := p.cfg.ColumnWidth
	if col.IsMissing(i) {
		return fmt.Sprintf("%*s", width, missingMarker)
	}
	switch col.Kind() {
	case obsdata.KindInt, obsdata.KindBool:
		return fmt.Sprintf("%*d", width, col.Ints()[i])
	case obsdata.KindFloat:
		if p.cfg.Scientific {
			return fmt.Sprintf("%*.*e", width, p.cfg.FloatPrecision, col.Floats()[i])
		}
		return fmt.Sprintf("%*.*f", width, p.cfg.FloatPrecision, col.Floats()[i])
	case obsdata.KindString:
		return fmt.Sprintf("%*s", width, col.Strings()[i])
	case obsdata.KindTimestamp:
		return fmt.Sprintf("%*s", width, col.Times()[i].UTC().Format(time.RFC3339))
	default:
		panic(fmt.Sprintf("printer: cell has unexpected kind %s", col.Kind()))
	}
}
