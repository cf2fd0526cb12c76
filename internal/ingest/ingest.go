// Package ingest implements the comprobante batch ingestion pipeline:
// parse each uploaded XML, drop duplicates by clave de acceso, link the
// record to a registered client by RUC and append it to the store,
// reporting one outcome per file.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"

	"fcastillo/sri-comprobantes/internal/clientes"
	"fcastillo/sri-comprobantes/internal/fileutils"
	"fcastillo/sri-comprobantes/internal/models"
	"fcastillo/sri-comprobantes/internal/parsererror"
	"fcastillo/sri-comprobantes/internal/sri"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Store is the append-only record store consumed by the ingestor.
type Store interface {
	ListClaves(ctx context.Context) (map[string]struct{}, error)
	Append(ctx context.Context, c *models.Comprobante) error
}

// Registry lists the registered clients, read-only.
type Registry interface {
	ListClientes(ctx context.Context) ([]models.Cliente, error)
}

// Archiver stores the raw XML of an accepted comprobante and returns a
// URL kept on the record.
type Archiver interface {
	Archive(ctx context.Context, claveAcceso string, xmlData []byte) (string, error)
}

// File is one uploaded batch entry: the display filename and its raw
// XML content.
type File struct {
	Name    string
	Content []byte
}

// Ingestor coordinates batch ingestion. It holds no per-batch state; the
// duplicate-detection set lives inside each IngestBatch invocation, so
// concurrent batches on separate Ingestors (or the same one) cannot
// cross-contaminate.
type Ingestor struct {
	store    Store
	registry Registry
	archiver Archiver
	log      *logrus.Logger
}

// Option configures an Ingestor.
type Option func(*Ingestor)

// WithArchiver enables raw-XML archiving for accepted records.
func WithArchiver(a Archiver) Option {
	return func(in *Ingestor) { in.archiver = a }
}

// WithLogger sets a custom logger.
func WithLogger(logger *logrus.Logger) Option {
	return func(in *Ingestor) {
		if logger != nil {
			in.log = logger
		}
	}
}

// New constructs an Ingestor over a record store and a client registry.
func New(store Store, registry Registry, opts ...Option) *Ingestor {
	in := &Ingestor{
		store:    store,
		registry: registry,
		log:      logrus.New(),
	}
	for _, opt := range opts {
		opt(in)
	}
	return in
}

// IngestBatch processes the files sequentially, in order, and returns
// exactly one outcome per file in the same order. Per-file failures are
// reported, never propagated; the returned error covers only the
// initial store/registry snapshot, before any file is touched.
//
// Cancelling ctx stops further persistence: remaining files are
// reported as error outcomes and outcomes already produced are kept.
func (in *Ingestor) IngestBatch(ctx context.Context, files []File) ([]models.Outcome, error) {
	persisted, err := in.store.ListClaves(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing persisted claves: %w", err)
	}
	registry, err := in.registry.ListClientes(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing client registry: %w", err)
	}

	// Claves accepted earlier in this same batch. Local to this
	// invocation on purpose; see the Ingestor doc comment.
	accepted := make(map[string]struct{})

	outcomes := make([]models.Outcome, 0, len(files))
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			outcomes = append(outcomes, models.Outcome{
				Filename: f.Name,
				Status:   models.StatusError,
				Message:  err.Error(),
			})
			continue
		}
		outcomes = append(outcomes, in.processFile(ctx, f, persisted, accepted, registry))
	}

	summary := models.Summarize(outcomes)
	in.log.WithFields(logrus.Fields{
		"files":      len(files),
		"new":        summary.New,
		"duplicates": summary.Duplicates,
		"errors":     summary.Errors,
	}).Info("Batch ingestion completed")

	return outcomes, nil
}

// IngestPaths reads each path from disk and ingests the batch. A file
// that cannot be read yields an error outcome for that file only.
func (in *Ingestor) IngestPaths(ctx context.Context, paths []string) ([]models.Outcome, error) {
	files := make([]File, 0, len(paths))
	for _, path := range paths {
		data, err := fileutils.ReadFile(path)
		if err != nil {
			// Content nil marks the read failure; processFile
			// reports it without attempting a parse.
			files = append(files, File{Name: filepath.Base(path)})
			in.log.WithError(err).WithField("file", path).Warn("Failed to read file")
			continue
		}
		files = append(files, File{Name: filepath.Base(path), Content: data})
	}
	return in.IngestBatch(ctx, files)
}

// processFile runs the parse, dedup, archive, match and persist steps
// for one file and converts every failure into an outcome.
func (in *Ingestor) processFile(ctx context.Context, f File, persisted, accepted map[string]struct{}, registry []models.Cliente) models.Outcome {
	if f.Content == nil {
		return models.Outcome{
			Filename: f.Name,
			Status:   models.StatusError,
			Message:  "no se pudo leer el archivo",
		}
	}

	c, err := sri.Parse(f.Content)
	if err != nil {
		in.log.WithError(err).WithField("file", f.Name).Debug("Parse failed")
		return models.Outcome{
			Filename: f.Name,
			Status:   models.StatusError,
			Message:  err.Error(),
		}
	}

	if _, dup := persisted[c.ClaveAcceso]; dup {
		return duplicateOutcome(f.Name)
	}
	if _, dup := accepted[c.ClaveAcceso]; dup {
		return duplicateOutcome(f.Name)
	}
	accepted[c.ClaveAcceso] = struct{}{}

	if in.archiver != nil {
		url, err := in.archiver.Archive(ctx, c.ClaveAcceso, f.Content)
		if err != nil {
			// The record was never persisted, so free the clave for a
			// later copy of the same document in this batch.
			delete(accepted, c.ClaveAcceso)
			archiveErr := &parsererror.ArchiveError{ClaveAcceso: c.ClaveAcceso, Err: err}
			in.log.WithError(archiveErr).WithField("file", f.Name).Warn("Archive failed")
			return models.Outcome{
				Filename: f.Name,
				Status:   models.StatusError,
				Message:  archiveErr.Error(),
			}
		}
		c.XMLURL = url
	}

	if cl := clientes.Match(c, registry); cl != nil {
		c.ClienteID = cl.ID
		c.ClienteNombre = cl.Nombre
	}

	c.ID = uuid.New().String()
	if err := in.store.Append(ctx, c); err != nil {
		// Same reasoning as the archive failure above.
		delete(accepted, c.ClaveAcceso)
		persistErr := &parsererror.PersistenceError{ClaveAcceso: c.ClaveAcceso, Err: err}
		in.log.WithError(persistErr).WithField("file", f.Name).Warn("Persist failed")
		return models.Outcome{
			Filename: f.Name,
			Status:   models.StatusError,
			Message:  persistErr.Error(),
		}
	}

	in.log.WithFields(logrus.Fields{
		"file":        f.Name,
		"tipo":        c.Tipo,
		"claveAcceso": c.ClaveAcceso,
		"cliente":     c.ClienteNombre,
	}).Info("Comprobante ingested")

	return models.Outcome{
		Filename: f.Name,
		Status:   models.StatusNew,
		Message:  fmt.Sprintf("%s — %s", c.Tipo, c.RazonSocialEmisor),
	}
}

func duplicateOutcome(filename string) models.Outcome {
	return models.Outcome{
		Filename: filename,
		Status:   models.StatusDuplicate,
		Message:  "Ya existe en el sistema",
	}
}
