package loader

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"adRecoDashboard/business/scoring"
	"adRecoDashboard/domain"
	"adRecoDashboard/pkg/logger"
)

// ---- Source interfaces ----

type MappingSource interface {
	LoadMapping(ctx context.Context) ([]domain.ClusterMappingRow, error)
}

type DatasetSource interface {
	LoadDataset(ctx context.Context, clusterID int) (domain.ClusterDataset, error)
}

type ModelSource interface {
	LoadModels(ctx context.Context, clusterID int) (scoring.PredictorPair, error)
}

// Loader memoizes the mapping table, per-cluster datasets and per-cluster
// predictor pairs. Cached values are shared read-only between callers;
// failed loads are never cached.
type Loader struct {
	mappingSrc MappingSource
	datasetSrc DatasetSource
	modelSrc   ModelSource

	mu       sync.RWMutex
	mapping  []domain.ClusterMappingRow
	hasMap   bool
	datasets map[int]domain.ClusterDataset
	models   map[int]scoring.PredictorPair
	gen      uint64

	group singleflight.Group
}

func NewLoader(mappingSrc MappingSource, datasetSrc DatasetSource, modelSrc ModelSource) *Loader {
	return &Loader{
		mappingSrc: mappingSrc,
		datasetSrc: datasetSrc,
		modelSrc:   modelSrc,
		datasets:   make(map[int]domain.ClusterDataset),
		models:     make(map[int]scoring.PredictorPair),
	}
}

// Mapping returns the cluster mapping table.
func (l *Loader) Mapping(ctx context.Context) ([]domain.ClusterMappingRow, error) {
	l.mu.RLock()
	if l.hasMap {
		rows := l.mapping
		l.mu.RUnlock()
		return rows, nil
	}
	gen := l.gen
	l.mu.RUnlock()

	v, err := l.do(ctx, "mapping", func(ctx context.Context) (any, error) {
		rows, err := l.mappingSrc.LoadMapping(ctx)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		if l.gen == gen {
			l.mapping, l.hasMap = rows, true
		}
		l.mu.Unlock()
		logger.Debug("mapping_loaded", "rows", len(rows))
		return rows, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load cluster mapping: %w", err)
	}
	return v.([]domain.ClusterMappingRow), nil
}

// Dataset returns the historical dataset of one cluster.
func (l *Loader) Dataset(ctx context.Context, clusterID int) (domain.ClusterDataset, error) {
	l.mu.RLock()
	if ds, ok := l.datasets[clusterID]; ok {
		l.mu.RUnlock()
		return ds, nil
	}
	gen := l.gen
	l.mu.RUnlock()

	v, err := l.do(ctx, "dataset:"+strconv.Itoa(clusterID), func(ctx context.Context) (any, error) {
		ds, err := l.datasetSrc.LoadDataset(ctx, clusterID)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		if l.gen == gen {
			l.datasets[clusterID] = ds
		}
		l.mu.Unlock()
		logger.Debug("dataset_loaded", "cluster_id", clusterID, "rows", len(ds.Records))
		return ds, nil
	})
	if err != nil {
		return domain.ClusterDataset{}, fmt.Errorf("load dataset for cluster %d: %w", clusterID, err)
	}
	return v.(domain.ClusterDataset), nil
}

// Models returns the CVR/CPA predictor pair of one cluster.
func (l *Loader) Models(ctx context.Context, clusterID int) (scoring.PredictorPair, error) {
	l.mu.RLock()
	if pair, ok := l.models[clusterID]; ok {
		l.mu.RUnlock()
		return pair, nil
	}
	gen := l.gen
	l.mu.RUnlock()

	v, err := l.do(ctx, "models:"+strconv.Itoa(clusterID), func(ctx context.Context) (any, error) {
		pair, err := l.modelSrc.LoadModels(ctx, clusterID)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		if l.gen == gen {
			l.models[clusterID] = pair
		}
		l.mu.Unlock()
		logger.Debug("models_loaded", "cluster_id", clusterID)
		return pair, nil
	})
	if err != nil {
		return scoring.PredictorPair{}, fmt.Errorf("load models for cluster %d: %w", clusterID, err)
	}
	return v.(scoring.PredictorPair), nil
}

// do runs load once per key across concurrent callers. The shared load is
// detached from the caller's cancellation; each caller stops waiting when
// its own ctx is done.
func (l *Loader) do(ctx context.Context, key string, load func(context.Context) (any, error)) (any, error) {
	shared := context.WithoutCancel(ctx)
	ch := l.group.DoChan(key, func() (any, error) {
		return load(shared)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.Val, res.Err
	}
}

// Invalidate drops every memoized value. Loads already in flight finish but
// their results are not stored.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.mapping, l.hasMap = nil, false
	l.datasets = make(map[int]domain.ClusterDataset)
	l.models = make(map[int]scoring.PredictorPair)
	l.gen++
	l.mu.Unlock()

	logger.Info("loader cache invalidated")
}

// WarmResult summarizes a Warm pass.
type WarmResult struct {
	Clusters []int `json:"clusters"`
	Missing  []int `json:"missing"`
}

// Warm preloads the mapping table and every cluster it references.
// Clusters whose files are missing are reported, not treated as failures.
func (l *Loader) Warm(ctx context.Context) (WarmResult, error) {
	rows, err := l.Mapping(ctx)
	if err != nil {
		return WarmResult{}, err
	}

	res := WarmResult{Clusters: clusterIDs(rows), Missing: []int{}}
	for _, id := range res.Clusters {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("context error: %w", err)
		}

		_, dsErr := l.Dataset(ctx, id)
		_, mdErr := l.Models(ctx, id)
		for _, err := range []error{dsErr, mdErr} {
			if err == nil {
				continue
			}
			if !errors.Is(err, domain.ErrMissingDataFile) {
				return res, err
			}
			logger.Warn("cluster files missing during warm-up", "cluster_id", id, "error", err)
		}
		if dsErr != nil || mdErr != nil {
			res.Missing = append(res.Missing, id)
		}
	}

	logger.Info("loader cache warmed", "clusters", len(res.Clusters), "missing", len(res.Missing))
	return res, nil
}

func clusterIDs(rows []domain.ClusterMappingRow) []int {
	seen := make(map[int]struct{})
	ids := make([]int, 0)
	for _, r := range rows {
		if r.ClusterID == nil {
			continue
		}
		if _, ok := seen[*r.ClusterID]; ok {
			continue
		}
		seen[*r.ClusterID] = struct{}{}
		ids = append(ids, *r.ClusterID)
	}
	sort.Ints(ids)
	return ids
}
