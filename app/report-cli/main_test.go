//go:build !integration

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adRecoDashboard/business/predictor"
	"adRecoDashboard/domain"
	"adRecoDashboard/internal/repository/dataset"
	"adRecoDashboard/pkg/config"
	"adRecoDashboard/pkg/utils"
)

func writeFixture(t *testing.T) (string, string) {
	t.Helper()
	dataDir, modelDir := t.TempDir(), t.TempDir()

	mapping := "ads_industry,ads_os_type,ads_month,Cluster\n음식,Web,1Q,3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, dataset.MappingFile), []byte(mapping), 0o644))

	var buf bytes.Buffer
	buf.WriteString(",ads_shape,mda_idx,ads_time,CVR,CPA,rpt_time_turn\n")
	for i := 0; i < 25; i++ {
		buf.WriteString("0,배너,101,09,0.05,500,3\n")
	}
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, dataset.ClusterFile(3)), buf.Bytes(), 0o644))

	f, err := os.Create(filepath.Join(modelDir, dataset.ModelFile(3)))
	require.NoError(t, err)
	require.NoError(t, predictor.Encode(f,
		&predictor.AdditiveModel{Intercept: math.Log1p(0.05)},
		&predictor.AdditiveModel{Intercept: math.Log1p(500)},
	))
	require.NoError(t, f.Close())

	return dataDir, modelDir
}

func testConfig() *config.Config {
	return &config.Config{
		Data: config.DataConfig{Source: config.DataSourceLocal, MappingEncoding: "utf-8"},
		JWT:  config.JWTConfig{SecretKey: "cli-secret"},
	}
}

func TestRun_Recommend(t *testing.T) {
	dataDir, modelDir := writeFixture(t)
	cfg := testConfig()

	opts, err := parseFlags([]string{"--data-dir", dataDir, "--model-dir", modelDir, "--mapping-encoding", "utf-8"}, cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, opts, &out))

	var report domain.RecommendationReport
	require.NoError(t, json.Unmarshal(out.Bytes(), &report))
	assert.Equal(t, 3, report.ClusterID)
	require.Len(t, report.Top3, 1)
	assert.Equal(t, 1.0, report.Top3[0].Score)
	require.Len(t, report.Budget, 1)
	assert.Equal(t, 100.0, report.Budget[0].SharePercent)
}

func TestRun_Overview(t *testing.T) {
	dataDir, modelDir := writeFixture(t)
	cfg := testConfig()

	opts, err := parseFlags([]string{"--data-dir", dataDir, "--model-dir", modelDir, "--mapping-encoding", "utf-8", "--overview"}, cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, opts, &out))

	var ov domain.ClusterOverview
	require.NoError(t, json.Unmarshal(out.Bytes(), &ov))
	assert.Equal(t, 25, ov.KPI.Rows)
	assert.InDelta(t, 500, ov.KPI.AvgCPA, 1e-9)
}

func TestRun_UnknownSelection(t *testing.T) {
	dataDir, modelDir := writeFixture(t)
	cfg := testConfig()

	opts, err := parseFlags([]string{"--data-dir", dataDir, "--model-dir", modelDir, "--mapping-encoding", "utf-8", "--industry", "법"}, cfg)
	require.NoError(t, err)

	err = run(context.Background(), cfg, opts, &bytes.Buffer{})
	assert.ErrorIs(t, err, domain.ErrResolutionNotFound)
}

func TestRun_AdminToken(t *testing.T) {
	cfg := testConfig()
	opts, err := parseFlags([]string{"--admin-token"}, cfg)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), cfg, opts, &out))

	claims, err := utils.ParseJWT(string(bytes.TrimSpace(out.Bytes())), "cli-secret")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestParseFlags_Conflicts(t *testing.T) {
	_, err := parseFlags([]string{"--overview", "--explain"}, testConfig())
	assert.Error(t, err)

	_, err = parseFlags([]string{"--no-such-flag"}, testConfig())
	assert.Error(t, err)
}
