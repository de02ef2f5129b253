package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var ErrNoHeader = errors.New("file has no header row")

// decodeReader converts r to UTF-8. A leading byte order mark overrides enc
// and is stripped.
func decodeReader(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))
}

// table is a header-indexed CSV file held in memory.
type table struct {
	header []string
	index  map[string]int
	rows   [][]string
}

func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoHeader
	}

	t := &table{header: records[0], index: make(map[string]int, len(records[0])), rows: records[1:]}
	for i, h := range t.header {
		name := strings.TrimSpace(h)
		t.header[i] = name
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}
	return t, nil
}

// require returns the column positions of names, failing on the first
// missing column.
func (t *table) require(names ...string) ([]int, error) {
	out := make([]int, len(names))
	for i, n := range names {
		pos, ok := t.index[n]
		if !ok {
			return nil, fmt.Errorf("missing required column %q", n)
		}
		out[i] = pos
	}
	return out, nil
}

func cell(row []string, pos int) string {
	if pos >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[pos])
}

// parseNumber parses a numeric cell; blanks and pandas NaN markers are NaN.
func parseNumber(s string) (float64, error) {
	switch s {
	case "", "NaN", "nan", "NA", "N/A", "null":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(s, 64)
}

// dropIndexColumn removes the first column, which holds the exported row
// index whatever its header says.
func (t *table) dropIndexColumn() {
	if len(t.header) == 0 {
		return
	}
	t.header = t.header[1:]
	t.index = make(map[string]int, len(t.header))
	for i, name := range t.header {
		if _, dup := t.index[name]; !dup {
			t.index[name] = i
		}
	}
	for i, row := range t.rows {
		if len(row) > 0 {
			t.rows[i] = row[1:]
		}
	}
}
