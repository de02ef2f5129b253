package dataset

import (
	"fmt"
	"io"
	"math"

	"adRecoDashboard/domain"
)

const (
	colAdShape   = "ads_shape"
	colMediaID   = "mda_idx"
	colStartHour = "ads_time"
	colCVR       = "CVR"
	colCPA       = "CPA"
	colTurns     = "rpt_time_turn"
)

// ParseCluster reads one cluster's historical file. The first column is the
// row index and is ignored. Every other column
// whose cells are all numeric (or blank) is also kept as a NumericColumn.
func ParseCluster(r io.Reader) (domain.ClusterDataset, error) {
	t, err := readTable(r)
	if err != nil {
		return domain.ClusterDataset{}, err
	}
	t.dropIndexColumn()

	cols, err := t.require(colAdShape, colMediaID, colStartHour, colCVR, colCPA, colTurns)
	if err != nil {
		return domain.ClusterDataset{}, err
	}

	records := make([]domain.PlacementRecord, 0, len(t.rows))
	for i, row := range t.rows {
		var nums [3]float64
		for k, pos := range cols[3:] {
			v, err := parseNumber(cell(row, pos))
			if err != nil {
				return domain.ClusterDataset{}, fmt.Errorf("row %d column %q: invalid number %q", i+2, t.header[pos], cell(row, pos))
			}
			nums[k] = v
		}
		records = append(records, domain.PlacementRecord{
			AdShape:         cell(row, cols[0]),
			MediaID:         cell(row, cols[1]),
			StartHour:       cell(row, cols[2]),
			CVR:             nums[0],
			CPA:             nums[1],
			ConversionCount: nums[2],
		})
	}

	return domain.ClusterDataset{
		Records: records,
		Columns: numericColumns(t),
	}, nil
}

func numericColumns(t *table) []domain.NumericColumn {
	out := make([]domain.NumericColumn, 0, len(t.header))
	for pos, name := range t.header {
		if t.index[name] != pos {
			continue
		}

		values := make([]float64, len(t.rows))
		numeric, seen := true, false
		for i, row := range t.rows {
			v, err := parseNumber(cell(row, pos))
			if err != nil {
				numeric = false
				break
			}
			if !math.IsNaN(v) {
				seen = true
			}
			values[i] = v
		}
		if numeric && seen {
			out = append(out, domain.NumericColumn{Name: name, Values: values})
		}
	}
	return out
}
