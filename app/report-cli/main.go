package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"adRecoDashboard/business/dashboard"
	"adRecoDashboard/business/loader"
	"adRecoDashboard/domain"
	"adRecoDashboard/internal/repository/blob"
	"adRecoDashboard/internal/repository/dataset"
	psqlRepo "adRecoDashboard/internal/repository/postgres"
	"adRecoDashboard/pkg/config"
	"adRecoDashboard/pkg/database"
	"adRecoDashboard/pkg/logger"
	"adRecoDashboard/pkg/utils"
)

type options struct {
	selection       domain.Selection
	dataDir         string
	modelDir        string
	s3Bucket        string
	s3Region        string
	s3DataPrefix    string
	s3ModelPrefix   string
	mappingEncoding string
	overview        bool
	explain         bool
	importMapping   bool
	adminToken      bool
	tokenTTL        time.Duration
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	logger.Init(cfg.App.Environment)

	opts, err := parseFlags(os.Args[1:], cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, opts, os.Stdout); err != nil {
		logger.Error("report failed", "error", err)
		os.Exit(1)
	}
}

func parseFlags(args []string, cfg *config.Config) (options, error) {
	def := domain.DefaultSelection()
	var o options

	fs := pflag.NewFlagSet("report-cli", pflag.ContinueOnError)
	fs.StringVar(&o.selection.Industry, "industry", def.Industry, "advertiser industry")
	fs.StringVar(&o.selection.OSType, "os", def.OSType, "operating system (Web, Android, iOS)")
	fs.StringVar(&o.selection.Quarter, "quarter", def.Quarter, "fiscal quarter (1Q-4Q)")
	fs.StringVar(&o.dataDir, "data-dir", cfg.Data.DataDir, "directory holding the mapping and cluster CSV files")
	fs.StringVar(&o.modelDir, "model-dir", cfg.Data.ModelDir, "directory holding the cluster model documents")
	fs.StringVar(&o.s3Bucket, "s3-bucket", s3BucketDefault(cfg), "read files from this S3 bucket instead of local directories")
	fs.StringVar(&o.s3Region, "s3-region", cfg.Data.S3Region, "S3 region")
	fs.StringVar(&o.s3DataPrefix, "s3-data-prefix", cfg.Data.S3DataPrefix, "key prefix of data files")
	fs.StringVar(&o.s3ModelPrefix, "s3-model-prefix", cfg.Data.S3ModelPrefix, "key prefix of model documents")
	fs.StringVar(&o.mappingEncoding, "mapping-encoding", cfg.Data.MappingEncoding, "character encoding of the mapping CSV")
	fs.BoolVar(&o.overview, "overview", false, "print the cluster overview instead of recommendations")
	fs.BoolVar(&o.explain, "explain", false, "print every candidate with its filter and score details")
	fs.BoolVar(&o.importMapping, "import-mapping", false, "replace the postgres cluster_mappings table with the mapping CSV")
	fs.BoolVar(&o.adminToken, "admin-token", false, "print an ADMIN token for the cache endpoints (uses JWT_SECRET)")
	fs.DurationVar(&o.tokenTTL, "token-ttl", time.Hour, "lifetime of --admin-token")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if o.overview && o.explain {
		return options{}, fmt.Errorf("--overview and --explain are mutually exclusive")
	}
	return o, nil
}

func s3BucketDefault(cfg *config.Config) string {
	if cfg.Data.Source == config.DataSourceS3 {
		return cfg.Data.S3Bucket
	}
	return ""
}

func run(ctx context.Context, cfg *config.Config, o options, out io.Writer) error {
	if o.adminToken {
		token, err := utils.GenerateJWT("report-cli", "ADMIN", cfg.JWT.SecretKey, o.tokenTTL)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, token)
		return err
	}

	repo, err := newRepository(ctx, o)
	if err != nil {
		return err
	}

	if o.importMapping {
		return importMapping(ctx, cfg, repo, out)
	}

	svc := dashboard.NewDashboardService(loader.NewLoader(repo, repo, repo))

	var report any
	switch {
	case o.overview:
		report, err = svc.Overview(ctx, o.selection)
	case o.explain:
		report, err = svc.Explain(ctx, o.selection)
	default:
		report, err = svc.Recommend(ctx, o.selection)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(report)
}

func newRepository(ctx context.Context, o options) (*dataset.FileRepository, error) {
	enc, err := dataset.EncodingByName(o.mappingEncoding)
	if err != nil {
		return nil, err
	}

	if o.s3Bucket != "" {
		data, err := blob.NewS3Store(ctx, o.s3Bucket, o.s3Region, o.s3DataPrefix)
		if err != nil {
			return nil, err
		}
		models, err := blob.NewS3Store(ctx, o.s3Bucket, o.s3Region, o.s3ModelPrefix)
		if err != nil {
			return nil, err
		}
		return dataset.NewFileRepository(data, models, enc), nil
	}

	return dataset.NewFileRepository(blob.NewLocalStore(o.dataDir), blob.NewLocalStore(o.modelDir), enc), nil
}

func importMapping(ctx context.Context, cfg *config.Config, repo *dataset.FileRepository, out io.Writer) error {
	rows, err := repo.LoadMapping(ctx)
	if err != nil {
		return err
	}

	db, err := database.InitPostgres(cfg)
	if err != nil {
		return err
	}
	defer database.ClosePostgres(db)

	if err := psqlRepo.NewClusterMappingRepository(db).ReplaceAll(ctx, rows); err != nil {
		return err
	}

	_, err = fmt.Fprintf(out, "imported %d mapping rows\n", len(rows))
	return err
}
