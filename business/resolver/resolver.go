package resolver

import (
	"strings"

	"adRecoDashboard/domain"
	"adRecoDashboard/pkg/logger"
)

// Resolve maps a selection to the cluster id of the first matching mapping row.
// Industry and quarter match case-sensitively after trimming, OS also ignores case.
func Resolve(rows []domain.ClusterMappingRow, sel domain.Selection) (int, error) {
	industry := normalizeIndustry(sel.Industry)
	osType := normalizeOSType(sel.OSType)
	quarter := normalizeQuarter(sel.Quarter)

	matched := -1
	for i, row := range rows {
		if row.ClusterID == nil {
			continue
		}
		if normalizeIndustry(row.Industry) != industry ||
			normalizeOSType(row.OSType) != osType ||
			normalizeQuarter(row.Month) != quarter {
			continue
		}

		if matched < 0 {
			matched = i
			continue
		}

		// first match wins; conflicting duplicates are flagged for data-quality review
		if *row.ClusterID != *rows[matched].ClusterID {
			logger.Warn("conflicting cluster mapping rows",
				"industry", industry,
				"os_type", osType,
				"quarter", quarter,
				"used_cluster", *rows[matched].ClusterID,
				"ignored_cluster", *row.ClusterID,
			)
		}
	}

	if matched < 0 {
		return 0, domain.ErrResolutionNotFound
	}

	return *rows[matched].ClusterID, nil
}

func normalizeIndustry(s string) string {
	return strings.TrimSpace(s)
}

func normalizeOSType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeQuarter(s string) string {
	return strings.TrimSpace(s)
}
