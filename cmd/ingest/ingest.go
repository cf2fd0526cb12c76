// Package ingest handles the comprobante ingestion command
package ingest

import (
	"context"
	"fmt"
	"time"

	"fcastillo/sri-comprobantes/cmd/root"
	"fcastillo/sri-comprobantes/internal/archive"
	"fcastillo/sri-comprobantes/internal/clientes"
	"fcastillo/sri-comprobantes/internal/config"
	"fcastillo/sri-comprobantes/internal/fileutils"
	"fcastillo/sri-comprobantes/internal/ingest"
	"fcastillo/sri-comprobantes/internal/models"
	"fcastillo/sri-comprobantes/internal/store"

	"github.com/spf13/cobra"
)

// Cmd represents the ingest command
var Cmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Ingest SRI comprobante XML files",
	Long: `Ingest one or more SRI comprobante XML files, or every .xml file in a
directory given with --dir. Each file is parsed, deduplicated by clave de
acceso, matched against the client registry and persisted.

Example:
  comprobantes ingest factura1.xml retencion2.xml
  comprobantes ingest --dir descargas/`,
	Run: ingestFunc,
}

func ingestFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Ingest command called")

	paths := args
	if root.SharedFlags.Dir != "" {
		found, err := fileutils.ListFilesWithExtension(root.SharedFlags.Dir, ".xml")
		if err != nil {
			root.Log.Fatalf("Error listing XML files in %s: %v", root.SharedFlags.Dir, err)
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		root.Log.Fatal("No input files: pass XML files as arguments or use --dir")
	}

	cfg := root.Config
	ctx := context.Background()
	st, registry, cleanup, err := buildBackends(ctx, cfg)
	if err != nil {
		root.Log.Fatalf("Error initializing backends: %v", err)
	}
	defer cleanup()

	opts := []ingest.Option{ingest.WithLogger(root.Log)}
	if cfg.Archive.Enabled {
		archiver, err := archive.NewS3Archiver(archive.S3Config{
			Endpoint:  cfg.Archive.Endpoint,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			Bucket:    cfg.Archive.Bucket,
			Region:    cfg.Archive.Region,
			UseSSL:    cfg.Archive.UseSSL,
			URLTTL:    time.Duration(cfg.Archive.URLTTLSeconds) * time.Second,
		})
		if err != nil {
			root.Log.Fatalf("Error initializing S3 archiver: %v", err)
		}
		if err := archiver.EnsureBucket(ctx); err != nil {
			root.Log.Fatalf("Error ensuring S3 bucket: %v", err)
		}
		opts = append(opts, ingest.WithArchiver(archiver))
	}

	ingestor := ingest.New(st, registry, opts...)
	outcomes, err := ingestor.IngestPaths(ctx, paths)
	if err != nil {
		root.Log.Fatalf("Error ingesting files: %v", err)
	}

	printOutcomes(outcomes)
}

// buildBackends wires the store and client registry from configuration.
// With a DSN configured both live in PostgreSQL, otherwise the store is
// in-memory and clients come from the registry YAML file.
func buildBackends(ctx context.Context, cfg *config.Config) (ingest.Store, ingest.Registry, func(), error) {
	if cfg.Store.DSN != "" {
		pg, err := store.Connect(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connecting to database: %w", err)
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, nil, nil, fmt.Errorf("ensuring schema: %w", err)
		}
		return pg, pg, pg.Close, nil
	}

	registryFile := cfg.Registry.File
	if root.SharedFlags.Registry != "" {
		registryFile = root.SharedFlags.Registry
	}
	registry, err := clientes.LoadRegistryFile(registryFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading client registry: %w", err)
	}
	return store.NewMemoryStore(), registry, func() {}, nil
}

func printOutcomes(outcomes []models.Outcome) {
	for _, o := range outcomes {
		switch o.Status {
		case models.StatusNew:
			fmt.Printf("  + %s: %s\n", o.Filename, o.Message)
		case models.StatusDuplicate:
			fmt.Printf("  = %s: %s\n", o.Filename, o.Message)
		default:
			fmt.Printf("  ! %s: %s\n", o.Filename, o.Message)
		}
	}

	summary := models.Summarize(outcomes)
	root.Log.Infof("Ingestion completed: %d new, %d duplicates, %d errors",
		summary.New, summary.Duplicates, summary.Errors)
}
