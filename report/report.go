// Package report renders recorded censuses as an HTML page.
package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"os"

	"github.com/pkg/browser"

	"github.com/sarchlab/lanternfish/datarecording"
	"github.com/sarchlab/lanternfish/tracing"
)

// ErrNoCensus is returned when a database holds no census rows.
var ErrNoCensus = errors.New("report: no census recorded")

// Row is one line of the report.
type Row struct {
	SimulationID string
	Day          uint64
	Total        uint64
	Buckets      []uint64
	Width        float64
}

var page = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Lanternfish census</title>
<style>
body { font-family: sans-serif; }
td { padding: 0 0.5em; text-align: right; }
.bar { background: #2a7ab0; height: 0.8em; }
</style>
</head>
<body>
<h1>Lanternfish census</h1>
<table>
<tr><th>Simulation</th><th>Day</th><th>Total</th>{{range $i, $_ := (index . 0).Buckets}}<th>Age {{$i}}</th>{{end}}<th>Growth</th></tr>
{{range .}}<tr><td>{{.SimulationID}}</td><td>{{.Day}}</td><td>{{.Total}}</td>{{range .Buckets}}<td>{{.}}</td>{{end}}<td><div class="bar" style="width: {{printf "%.1f" .Width}}%"></div></td></tr>
{{end}}</table>
</body>
</html>
`))

// MakeRows turns census entries into rows whose Width is the total relative
// to the largest total.
func MakeRows(entries []tracing.CensusEntry) []Row {
	var largest uint64
	for _, e := range entries {
		largest = max(largest, e.Total)
	}

	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		width := 0.0
		if largest > 0 {
			width = float64(e.Total) * 100 / float64(largest)
		}

		rows = append(rows, Row{
			SimulationID: e.SimulationID,
			Day:          e.Day,
			Total:        e.Total,
			Buckets:      e.Histogram().Buckets(),
			Width:        width,
		})
	}

	return rows
}

// Render writes the HTML page of rows to w.
func Render(w io.Writer, rows []Row) error {
	if len(rows) == 0 {
		return ErrNoCensus
	}

	if err := page.Execute(w, rows); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	return nil
}

// ReadCensus reads every census entry of a database, ordered by simulation
// and day.
func ReadCensus(ctx context.Context, dbPath string) ([]tracing.CensusEntry, error) {
	reader, err := datarecording.NewReader(dbPath)
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	defer reader.Close()

	reader.MapTable(tracing.CensusTable, tracing.CensusEntry{})

	results, _, err := reader.Query(ctx, tracing.CensusTable,
		datarecording.QueryParams{OrderBy: "SimulationID, Day"})
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}

	entries := make([]tracing.CensusEntry, 0, len(results))
	for _, r := range results {
		entries = append(entries, *r.(*tracing.CensusEntry))
	}

	return entries, nil
}

// Build renders the census of the database at dbPath into outPath.
func Build(ctx context.Context, dbPath, outPath string) error {
	entries, err := ReadCensus(ctx, dbPath)
	if err != nil {
		return err
	}

	buf := bytes.NewBuffer(nil)
	if err := Render(buf, MakeRows(entries)); err != nil {
		return err
	}

	if err := os.WriteFile(outPath, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	return nil
}

// Open shows the report in the default browser.
func Open(path string) error {
	if err := browser.OpenFile(path); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	return nil
}
