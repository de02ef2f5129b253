//go:build !integration

package blob

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adRecoDashboard/domain"
)

func TestLocalStore_Open(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ive_cluster_1.csv"), []byte("a,b\n"), 0o644))

	store := NewLocalStore(dir)

	rc, err := store.Open(context.Background(), "ive_cluster_1.csv")
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "a,b\n", string(body))

	_, err = store.Open(context.Background(), "ive_cluster_2.csv")
	assert.ErrorIs(t, err, domain.ErrMissingDataFile)
	assert.EqualError(t, err, "file not found: ive_cluster_2.csv")

	_, err = store.Open(context.Background(), "../etc/passwd")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrMissingDataFile))
}

type fakeS3 struct {
	objects map[string]string
	err     error
	keys    []string
}

func (f *fakeS3) GetObject(ctx context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	f.keys = append(f.keys, key)
	if f.err != nil {
		return nil, f.err
	}
	body, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(body))}, nil
}

func TestS3Store_Open(t *testing.T) {
	client := &fakeS3{objects: map[string]string{"data/ive_label_cluster.csv": "x"}}
	store := NewS3StoreWithClient(client, "bucket", "data")

	rc, err := store.Open(context.Background(), "ive_label_cluster.csv")
	require.NoError(t, err)
	body, _ := io.ReadAll(rc)
	assert.Equal(t, "x", string(body))

	_, err = store.Open(context.Background(), "ive_cluster_3.csv")
	assert.ErrorIs(t, err, domain.ErrMissingDataFile)
	assert.Equal(t, []string{"data/ive_label_cluster.csv", "data/ive_cluster_3.csv"}, client.keys)
}

func TestS3Store_OtherErrors(t *testing.T) {
	client := &fakeS3{err: errors.New("access denied")}
	store := NewS3StoreWithClient(client, "bucket", "")

	_, err := store.Open(context.Background(), "ive_cluster_3.csv")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrMissingDataFile))
	assert.Equal(t, []string{"ive_cluster_3.csv"}, client.keys)
}
