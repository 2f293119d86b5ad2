// Package csvsource reads the vehicle mapping CSV into the core's tabular form.
package csvsource

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"vmap-rag/internal/rag"
)

// Reader loads a delimited file from disk. It implements rag.TableSource.
type Reader struct{}

func New() *Reader {
	return &Reader{}
}

// Read parses the file at path into a header-keyed table. Ragged rows are
// tolerated; short rows leave trailing columns empty.
func (r *Reader) Read(path string) (rag.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return rag.Table{}, fmt.Errorf("CSV file not found: %s", path)
	}
	defer f.Close()

	return Parse(f)
}

// Parse reads CSV content from rd. The first record is the header.
func Parse(rd io.Reader) (rag.Table, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return rag.Table{}, nil
	}
	if err != nil {
		return rag.Table{}, fmt.Errorf("read csv header failed: %w", err)
	}

	columns := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[i] = h
	}

	table := rag.Table{Columns: columns}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rag.Table{}, fmt.Errorf("read csv row failed: %w", err)
		}
		row := make(rag.Row, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}
