package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const utf8BOM = "\ufeff"

// rowReader streams a registry CSV file as header-keyed rows.
type rowReader struct {
	r      *csv.Reader
	header []string
	index  map[string]int
	line   int
}

func newRowReader(src io.Reader) (*rowReader, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty file: no header row")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		header[i] = h
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	return &rowReader{r: r, header: header, index: index, line: 1}, nil
}

// Next returns the next row, or io.EOF at the end of the file.
func (rr *rowReader) Next() (row, error) {
	record, err := rr.r.Read()
	if err != nil {
		return row{}, err
	}
	rr.line++
	return row{values: record, index: rr.index, line: rr.line}, nil
}

type row struct {
	values []string
	index  map[string]int
	line   int
}

// get returns the first non-empty value among the given column names.
// Rows shorter than the header read as empty for the missing columns.
func (r row) get(columns ...string) string {
	for _, c := range columns {
		i, ok := r.index[c]
		if !ok || i >= len(r.values) {
			continue
		}
		if v := strings.TrimSpace(r.values[i]); v != "" {
			return v
		}
	}
	return ""
}

// optional is get with empty mapped to nil.
func (r row) optional(columns ...string) *string {
	v := r.get(columns...)
	if v == "" {
		return nil
	}
	return &v
}
