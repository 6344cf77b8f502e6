package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pfrederiksen/parkrun-map/internal/mapdata"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// WriteOutput writes the merged rows in the specified format
func WriteOutput(w io.Writer, rows []mapdata.MergedRow, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatText:
		return writeText(w, rows)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the rows as JSON for the rendering layer
func writeJSON(w io.Writer, rows []mapdata.MergedRow) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(rows)
}

// writeText outputs a human-readable listing, visited venues first detail
func writeText(w io.Writer, rows []mapdata.MergedRow) error {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No venues in cache.")
		return nil
	}

	visited := 0
	for _, row := range rows {
		if row.RunCount > 0 {
			visited++
			fmt.Fprintf(w, "%s (%s): %d runs, best %s  [%.5f, %.5f]\n",
				row.EventTitle, row.Country, row.RunCount, row.PersonalBest, row.Latitude, row.Longitude)
		}
	}
	for _, row := range rows {
		if row.RunCount == 0 {
			fmt.Fprintf(w, "%s (%s): not yet visited  [%.5f, %.5f]\n",
				row.EventTitle, row.Country, row.Latitude, row.Longitude)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d runs across %d of %d venues\n", totalRuns(rows), visited, len(rows))
	return nil
}

// totalRuns sums run counts across all rows
func totalRuns(rows []mapdata.MergedRow) int {
	total := 0
	for _, row := range rows {
		total += row.RunCount
	}
	return total
}
