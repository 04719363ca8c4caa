package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"gridsite/internal/nodes"
)

// LoadCSV reads a node table from a CSV file with a header row.
func LoadCSV(path string) (nodes.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nodes.Table{}, err
	}
	defer f.Close()
	t, err := ReadCSV(f)
	if err != nil {
		return nodes.Table{}, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// ReadCSV decodes a node table. Unknown columns are ignored; a missing
// required column is left for nodes.Validate to report.
func ReadCSV(r io.Reader) (nodes.Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nodes.Table{}, errors.New("empty csv: no header row")
	}
	if err != nil {
		return nodes.Table{}, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		name := nodes.NormalizeColumn(h)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	t := nodes.Table{Columns: nodes.KnownColumns(header)}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nodes.Table{}, fmt.Errorf("line %d: %w", line, err)
		}
		n, err := nodes.DecodeRow(func(col string) (any, bool) {
			i, ok := index[col]
			if !ok || i >= len(rec) {
				return nil, ok
			}
			return rec[i], true
		})
		if err != nil {
			return nodes.Table{}, fmt.Errorf("line %d: %w", line, err)
		}
		t.Rows = append(t.Rows, n)
	}
	return t, nil
}
