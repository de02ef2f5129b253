package insight

import (
	"sort"
	"strconv"
	"strings"

	"adRecoDashboard/domain"
)

// Distribution categories.
const (
	CategoryIndustry = "industry"
	CategoryOS       = "os"
	CategoryQuarter  = "quarter"
)

// Distribution counts how often each industry, OS and quarter appears among
// the mapping rows assigned to clusterID. Within a category buckets are
// ordered by count descending, ties by first appearance.
func Distribution(rows []domain.ClusterMappingRow, clusterID int) []domain.DistributionBucket {
	var industries, osTypes, quarters []string
	for _, r := range rows {
		if r.ClusterID == nil || *r.ClusterID != clusterID {
			continue
		}
		industries = append(industries, strings.TrimSpace(r.Industry))
		osTypes = append(osTypes, strings.ToLower(strings.TrimSpace(r.OSType)))
		quarters = append(quarters, MonthToQuarter(r.Month))
	}

	out := make([]domain.DistributionBucket, 0)
	out = append(out, valueCounts(CategoryIndustry, industries)...)
	out = append(out, valueCounts(CategoryOS, osTypes)...)
	out = append(out, valueCounts(CategoryQuarter, quarters)...)
	return out
}

// MonthToQuarter turns a month label such as "7월" or "7" into "3Q".
// Anything that is not a month number is returned unchanged.
func MonthToQuarter(month string) string {
	n, err := strconv.Atoi(strings.TrimSpace(strings.ReplaceAll(month, "월", "")))
	if err != nil || n < 1 || n > 12 {
		return month
	}
	return strconv.Itoa((n-1)/3+1) + "Q"
}

func valueCounts(category string, values []string) []domain.DistributionBucket {
	counts := make(map[string]int, len(values))
	order := make([]string, 0)
	for _, v := range values {
		if _, ok := counts[v]; !ok {
			order = append(order, v)
		}
		counts[v]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	out := make([]domain.DistributionBucket, len(order))
	for i, label := range order {
		out[i] = domain.DistributionBucket{Category: category, Label: label, Count: counts[label]}
	}
	return out
}
