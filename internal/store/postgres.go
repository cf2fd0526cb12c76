package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fcastillo/sri-comprobantes/internal/currencyutils"
	"fcastillo/sri-comprobantes/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists comprobantes and serves the client registry
// from a Postgres database.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// Connect opens a pgx connection pool using the provided DSN.
func Connect(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	cfg.MaxConns = 8
	cfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// EnsureSchema creates the comprobantes and clientes tables if needed.
// Keeping the migration in code lets a fresh database bootstrap itself
// on first run.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const stmt = `
CREATE TABLE IF NOT EXISTS comprobantes (
	clave_acceso TEXT PRIMARY KEY,
	id TEXT NOT NULL,
	cod_doc TEXT NOT NULL,
	tipo TEXT NOT NULL,
	ruc_emisor TEXT NOT NULL DEFAULT '',
	razon_social_emisor TEXT NOT NULL DEFAULT '',
	ruc_receptor TEXT NOT NULL DEFAULT '',
	razon_social_receptor TEXT NOT NULL DEFAULT '',
	fecha TEXT NOT NULL DEFAULT '',
	importe_total NUMERIC(14,2) NOT NULL DEFAULT 0,
	total_iva NUMERIC(14,2) NOT NULL DEFAULT 0,
	cliente_id TEXT NOT NULL DEFAULT '',
	cliente_nombre TEXT NOT NULL DEFAULT '',
	xml_url TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_comprobantes_fecha ON comprobantes(fecha);
CREATE TABLE IF NOT EXISTS clientes (
	id TEXT PRIMARY KEY,
	ruc TEXT NOT NULL DEFAULT '',
	nombre TEXT NOT NULL
);`
	if _, err := s.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Append inserts a new comprobante record. A primary-key collision on
// clave_acceso maps to ErrDuplicateClave.
func (s *PostgresStore) Append(ctx context.Context, c *models.Comprobante) error {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO comprobantes (
			clave_acceso, id, cod_doc, tipo,
			ruc_emisor, razon_social_emisor, ruc_receptor, razon_social_receptor,
			fecha, importe_total, total_iva,
			cliente_id, cliente_nombre, xml_url, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`, c.ClaveAcceso, c.ID, string(c.CodDoc), c.Tipo,
		c.RucEmisor, c.RazonSocialEmisor, c.RucReceptor, c.RazonSocialReceptor,
		c.Fecha, c.ImporteTotal.StringFixed(2), c.TotalIVA.StringFixed(2),
		c.ClienteID, c.ClienteNombre, c.XMLURL, c.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateClave
		}
		return fmt.Errorf("insert comprobante: %w", err)
	}
	return nil
}

// ListClaves returns the set of persisted access keys.
func (s *PostgresStore) ListClaves(ctx context.Context) (map[string]struct{}, error) {
	rows, err := s.pool.Query(ctx, `SELECT clave_acceso FROM comprobantes`)
	if err != nil {
		return nil, fmt.Errorf("select claves: %w", err)
	}
	defer rows.Close()

	claves := make(map[string]struct{})
	for rows.Next() {
		var clave string
		if err := rows.Scan(&clave); err != nil {
			return nil, fmt.Errorf("scan clave: %w", err)
		}
		claves[clave] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claves: %w", err)
	}
	return claves, nil
}

// List returns all persisted comprobantes ordered by issue date, newest
// first, matching the listing the practice works from.
func (s *PostgresStore) List(ctx context.Context) ([]models.Comprobante, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT clave_acceso, id, cod_doc, tipo,
			ruc_emisor, razon_social_emisor, ruc_receptor, razon_social_receptor,
			fecha, importe_total::text, total_iva::text,
			cliente_id, cliente_nombre, xml_url, created_at
		FROM comprobantes ORDER BY fecha DESC, created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("select comprobantes: %w", err)
	}
	defer rows.Close()

	var out []models.Comprobante
	for rows.Next() {
		var (
			c            models.Comprobante
			codDoc       string
			importeTotal string
			totalIVA     string
		)
		if err := rows.Scan(&c.ClaveAcceso, &c.ID, &codDoc, &c.Tipo,
			&c.RucEmisor, &c.RazonSocialEmisor, &c.RucReceptor, &c.RazonSocialReceptor,
			&c.Fecha, &importeTotal, &totalIVA,
			&c.ClienteID, &c.ClienteNombre, &c.XMLURL, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comprobante: %w", err)
		}
		c.CodDoc = models.DocumentType(codDoc)
		c.ImporteTotal = currencyutils.AmountOrZero(importeTotal)
		c.TotalIVA = currencyutils.AmountOrZero(totalIVA)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate comprobantes: %w", err)
	}
	return out, nil
}

// ListClientes returns the client registry ordered by name so matching
// is deterministic across runs.
func (s *PostgresStore) ListClientes(ctx context.Context) ([]models.Cliente, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, ruc, nombre FROM clientes ORDER BY nombre, id`)
	if err != nil {
		return nil, fmt.Errorf("select clientes: %w", err)
	}
	defer rows.Close()

	var out []models.Cliente
	for rows.Next() {
		var cl models.Cliente
		if err := rows.Scan(&cl.ID, &cl.RUC, &cl.Nombre); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		out = append(out, cl)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate clientes: %w", err)
	}
	return out, nil
}
