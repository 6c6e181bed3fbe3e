package cli

import (
	"context"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/vellum-crm/vellum/pkg/cli/config"
	"github.com/vellum-crm/vellum/pkg/domain/types"
	"github.com/vellum-crm/vellum/pkg/usecase"
	"github.com/vellum-crm/vellum/pkg/utils/logging"
	"github.com/vellum-crm/vellum/pkg/utils/safe"
)

func cmdExport() *cli.Command {
	var (
		appCfg  config.AppConfig
		repoCfg config.Repository
		outDir  string
		bucket  string
		prefix  string
	)

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "dir",
			Usage:       "Directory to write exported documents to",
			Sources:     cli.EnvVars("VELLUM_EXPORT_DIR"),
			Destination: &outDir,
		},
		&cli.StringFlag{
			Name:        "bucket",
			Usage:       "GCS bucket to write exported documents to",
			Sources:     cli.EnvVars("VELLUM_EXPORT_BUCKET"),
			Destination: &bucket,
		},
		&cli.StringFlag{
			Name:        "prefix",
			Usage:       "Object name prefix within the GCS bucket",
			Sources:     cli.EnvVars("VELLUM_EXPORT_PREFIX"),
			Destination: &prefix,
		},
	}
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:  "export",
		Usage: "Export every tenant's metadata documents as wire-shape JSON",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if (outDir == "") == (bucket == "") {
				return goerr.New("exactly one of --dir and --bucket is required")
			}

			_, registry, err := appCfg.Configure()
			if err != nil {
				return err
			}

			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logger.Error("failed to close repository", "error", err.Error())
				}
			}()

			var sink usecase.ExportSink
			if outDir != "" {
				sink = &dirSink{root: outDir}
				logger.Info("Exporting to directory", "dir", outDir)
			} else {
				client, err := storage.NewClient(ctx)
				if err != nil {
					return goerr.Wrap(err, "failed to create storage client")
				}
				defer safe.Close(ctx, client)
				sink = &gcsSink{bucket: client.Bucket(bucket), prefix: prefix}
				logger.Info("Exporting to GCS bucket", "bucket", bucket, "prefix", prefix)
			}

			uc := usecase.New(repo, registry)
			summary, err := uc.Export(ctx, sink)
			if err != nil {
				return goerr.Wrap(err, "export failed")
			}

			logger.Info("Export completed",
				"tenants", summary.Tenants,
				"documents", summary.Documents,
			)
			return nil
		},
	}
}

// dirSink writes one file per document under root/<tenant>/<path>.json.
// Source paths are validated slash-separated segments, so they embed directly.
type dirSink struct {
	root string
}

func (s *dirSink) Put(ctx context.Context, tenant types.TenantID, path types.SourcePath, data []byte) error {
	target := filepath.Join(s.root, string(tenant), filepath.FromSlash(string(path))+".json")
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return goerr.Wrap(err, "failed to create export directory", goerr.V("path", target))
	}
	if err := os.WriteFile(target, data, 0o600); err != nil {
		return goerr.Wrap(err, "failed to write export file", goerr.V("path", target))
	}
	return nil
}

// gcsSink writes one object per document named <prefix>/<tenant>/<path>.json.
// The writer commits on Close, so its error is the write outcome.
type gcsSink struct {
	bucket *storage.BucketHandle
	prefix string
}

func (s *gcsSink) Put(ctx context.Context, tenant types.TenantID, path types.SourcePath, data []byte) error {
	name := string(tenant) + "/" + string(path) + ".json"
	if s.prefix != "" {
		name = s.prefix + "/" + name
	}

	w := s.bucket.Object(name).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return goerr.Wrap(err, "failed to write object", goerr.V("object", name))
	}
	if err := w.Close(); err != nil {
		return goerr.Wrap(err, "failed to commit object", goerr.V("object", name))
	}
	return nil
}
