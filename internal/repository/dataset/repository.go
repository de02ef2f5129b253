package dataset

import (
	"context"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/unicode"

	"adRecoDashboard/business/loader"
	"adRecoDashboard/business/predictor"
	"adRecoDashboard/business/scoring"
	"adRecoDashboard/domain"
	"adRecoDashboard/internal/repository/blob"
)

const MappingFile = "ive_label_cluster.csv"

func ClusterFile(clusterID int) string {
	return fmt.Sprintf("ive_cluster_%d.csv", clusterID)
}

func ModelFile(clusterID int) string {
	return fmt.Sprintf("ive_model_cluster_%d.yaml", clusterID)
}

// FileRepository reads the mapping table, cluster datasets and model
// documents from blob stores. Data and models may live in different stores.
type FileRepository struct {
	data            blob.Store
	models          blob.Store
	mappingEncoding encoding.Encoding
}

var (
	_ loader.MappingSource = (*FileRepository)(nil)
	_ loader.DatasetSource = (*FileRepository)(nil)
	_ loader.ModelSource   = (*FileRepository)(nil)
)

func NewFileRepository(data, models blob.Store, mappingEncoding encoding.Encoding) *FileRepository {
	if mappingEncoding == nil {
		mappingEncoding = korean.EUCKR
	}
	return &FileRepository{data: data, models: models, mappingEncoding: mappingEncoding}
}

// EncodingByName resolves a WHATWG encoding label such as "euc-kr" or "utf-8".
func EncodingByName(name string) (encoding.Encoding, error) {
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	return enc, nil
}

func (r *FileRepository) LoadMapping(ctx context.Context) ([]domain.ClusterMappingRow, error) {
	rc, err := r.data.Open(ctx, MappingFile)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	rows, err := ParseMapping(decodeReader(rc, r.mappingEncoding))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", MappingFile, err)
	}
	return rows, nil
}

func (r *FileRepository) LoadDataset(ctx context.Context, clusterID int) (domain.ClusterDataset, error) {
	name := ClusterFile(clusterID)
	rc, err := r.data.Open(ctx, name)
	if err != nil {
		return domain.ClusterDataset{}, err
	}
	defer rc.Close()

	ds, err := ParseCluster(decodeReader(rc, unicode.UTF8))
	if err != nil {
		return domain.ClusterDataset{}, fmt.Errorf("%s: %w", name, err)
	}
	ds.ClusterID = clusterID
	return ds, nil
}

func (r *FileRepository) LoadModels(ctx context.Context, clusterID int) (scoring.PredictorPair, error) {
	name := ModelFile(clusterID)
	rc, err := r.models.Open(ctx, name)
	if err != nil {
		return scoring.PredictorPair{}, err
	}
	defer rc.Close()

	pair, err := predictor.Decode(rc)
	if err != nil {
		return scoring.PredictorPair{}, fmt.Errorf("%s: %w", name, err)
	}
	return pair, nil
}
