package dataset

import (
	"fmt"
	"io"
	"math"

	"adRecoDashboard/domain"
)

const (
	colIndustry = "ads_industry"
	colOSType   = "ads_os_type"
	colMonth    = "ads_month"
	colCluster  = "Cluster"
)

// ParseMapping reads the cluster mapping table from UTF-8 CSV. Rows with a
// blank cluster are kept with a nil cluster id.
func ParseMapping(r io.Reader) ([]domain.ClusterMappingRow, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	cols, err := t.require(colIndustry, colOSType, colMonth, colCluster)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ClusterMappingRow, 0, len(t.rows))
	for i, row := range t.rows {
		clusterID, err := parseClusterID(cell(row, cols[3]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, domain.ClusterMappingRow{
			ID:        uint64(i + 1),
			Industry:  cell(row, cols[0]),
			OSType:    cell(row, cols[1]),
			Month:     cell(row, cols[2]),
			ClusterID: clusterID,
		})
	}
	return out, nil
}

func parseClusterID(s string) (*int, error) {
	v, err := parseNumber(s)
	if err != nil {
		return nil, fmt.Errorf("invalid cluster %q", s)
	}
	if math.IsNaN(v) {
		return nil, nil
	}
	if v != math.Trunc(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("cluster %q is not an integer", s)
	}
	id := int(v)
	return &id, nil
}
