package dashboard

import (
	"context"
	"errors"
	"fmt"

	"adRecoDashboard/business/insight"
	"adRecoDashboard/business/resolver"
	"adRecoDashboard/business/scoring"
	"adRecoDashboard/domain"
	"adRecoDashboard/pkg/logger"
	"adRecoDashboard/pkg/trace"
)

// DataLoader provides the (memoized) inputs of one dashboard request.
type DataLoader interface {
	Mapping(ctx context.Context) ([]domain.ClusterMappingRow, error)
	Dataset(ctx context.Context, clusterID int) (domain.ClusterDataset, error)
	Models(ctx context.Context, clusterID int) (scoring.PredictorPair, error)
}

type DashboardService struct {
	loader  DataLoader
	options domain.SelectionOptions
}

func NewDashboardService(loader DataLoader) *DashboardService {
	return &DashboardService{
		loader:  loader,
		options: domain.DefaultSelectionOptions(),
	}
}

func (s *DashboardService) Options() domain.SelectionOptions {
	return s.options
}

// ResolveCluster maps a selection to its audience cluster.
func (s *DashboardService) ResolveCluster(ctx context.Context, sel domain.Selection) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	rows, err := s.loader.Mapping(ctx)
	if err != nil {
		return 0, err
	}

	clusterID, err := resolver.Resolve(rows, sel)
	if err != nil {
		logger.Debug("cluster_not_resolved",
			"trace_id", trace.TraceIDFromContext(ctx),
			"industry", sel.Industry,
			"os", sel.OSType,
			"quarter", sel.Quarter,
		)
		return 0, err
	}
	return clusterID, nil
}

// Overview returns the descriptive view of the selected cluster.
func (s *DashboardService) Overview(ctx context.Context, sel domain.Selection) (domain.ClusterOverview, error) {
	clusterID, err := s.ResolveCluster(ctx, sel)
	if err != nil {
		return domain.ClusterOverview{}, err
	}

	rows, err := s.loader.Mapping(ctx)
	if err != nil {
		return domain.ClusterOverview{}, err
	}
	ds, err := s.loader.Dataset(ctx, clusterID)
	if err != nil {
		return domain.ClusterOverview{}, err
	}

	logger.Debug("dashboard_overview",
		"trace_id", trace.TraceIDFromContext(ctx),
		"cluster_id", clusterID,
		"rows", len(ds.Records),
	)

	return domain.ClusterOverview{
		Selection:    sel,
		ClusterID:    clusterID,
		KPI:          insight.KPI(ds.Records),
		Distribution: insight.Distribution(rows, clusterID),
		Describe:     insight.Describe(ds.Columns),
		Correlation:  insight.Correlation(ds.Columns),
	}, nil
}

// Recommend scores the selected cluster's configurations and splits a budget
// over the top three. A degenerate split leaves Budget empty and sets
// BudgetError instead of failing the report.
func (s *DashboardService) Recommend(ctx context.Context, sel domain.Selection) (domain.RecommendationReport, error) {
	clusterID, records, pair, err := s.scoringInputs(ctx, sel)
	if err != nil {
		return domain.RecommendationReport{}, err
	}

	result, err := scoring.Score(ctx, records, pair)
	if err != nil {
		return domain.RecommendationReport{}, fmt.Errorf("score cluster %d: %w", clusterID, err)
	}

	report := domain.RecommendationReport{
		Selection: sel,
		ClusterID: clusterID,
		Top3:      result.Top3,
		Top10:     result.Top10,
		Budget:    []domain.BudgetAllocation{},
	}

	budget, err := scoring.Allocate(result.Top3)
	switch {
	case err == nil:
		report.Budget = budget
	case errors.Is(err, domain.ErrDegenerateAllocation):
		logger.Warn("budget allocation skipped", "trace_id", trace.TraceIDFromContext(ctx), "cluster_id", clusterID, "error", err)
		report.BudgetError = err.Error()
	default:
		return domain.RecommendationReport{}, err
	}

	logger.Debug("dashboard_recommend",
		"trace_id", trace.TraceIDFromContext(ctx),
		"cluster_id", clusterID,
		"records", len(records),
		"top10", len(result.Top10),
	)
	return report, nil
}

// Explain returns how every candidate configuration of the selected cluster
// went through scoring.
func (s *DashboardService) Explain(ctx context.Context, sel domain.Selection) ([]domain.CandidateTrace, error) {
	clusterID, records, pair, err := s.scoringInputs(ctx, sel)
	if err != nil {
		return nil, err
	}

	traces, err := scoring.Explain(ctx, records, pair)
	if err != nil {
		return nil, fmt.Errorf("explain cluster %d: %w", clusterID, err)
	}

	logger.Debug("dashboard_explain",
		"trace_id", trace.TraceIDFromContext(ctx),
		"cluster_id", clusterID,
		"candidates", len(traces),
	)
	return traces, nil
}

func (s *DashboardService) scoringInputs(ctx context.Context, sel domain.Selection) (int, []domain.PlacementRecord, scoring.PredictorPair, error) {
	clusterID, err := s.ResolveCluster(ctx, sel)
	if err != nil {
		return 0, nil, scoring.PredictorPair{}, err
	}

	ds, err := s.loader.Dataset(ctx, clusterID)
	if err != nil {
		return 0, nil, scoring.PredictorPair{}, err
	}
	pair, err := s.loader.Models(ctx, clusterID)
	if err != nil {
		return 0, nil, scoring.PredictorPair{}, err
	}

	return clusterID, ds.Records, pair, nil
}
