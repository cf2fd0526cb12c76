// Package clientes holds the client registry and the RUC matcher that
// links ingested comprobantes to registered clients.
package clientes

import (
	"context"
	"fmt"
	"os"

	"fcastillo/sri-comprobantes/internal/models"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Match scans the registry for the first client whose RUC equals the
// document's issuer or receiver RUC. Clients without a RUC never match.
// Registry slice order decides ties, so the result is deterministic for
// a given registry. A nil return is the normal no-match outcome, not an
// error.
func Match(c *models.Comprobante, registry []models.Cliente) *models.Cliente {
	for i := range registry {
		cl := &registry[i]
		if cl.RUC == "" {
			continue
		}
		if cl.RUC == c.RucEmisor || cl.RUC == c.RucReceptor {
			return cl
		}
	}
	return nil
}

// StaticRegistry serves a fixed client list, e.g. one loaded from a YAML
// file for CLI runs without a database.
type StaticRegistry struct {
	Clientes []models.Cliente
}

// ListClientes returns the registry contents in load order.
func (r *StaticRegistry) ListClientes(ctx context.Context) ([]models.Cliente, error) {
	return r.Clientes, nil
}

// registryFile mirrors the YAML layout: a top-level "clientes" key over
// a list of entries.
type registryFile struct {
	Clientes []models.Cliente `yaml:"clientes"`
}

// LoadRegistryFile loads a client registry from a YAML file. A missing
// file yields an empty registry rather than an error, so ingestion can
// run without client matching configured.
func LoadRegistryFile(path string) (*StaticRegistry, error) {
	if path == "" {
		return &StaticRegistry{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warnf("Client registry file not found: %s", path)
			return &StaticRegistry{}, nil
		}
		return nil, fmt.Errorf("error reading client registry: %w", err)
	}

	var file registryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing client registry: %w", err)
	}

	log.Debugf("Loaded %d clients from %s", len(file.Clientes), path)
	return &StaticRegistry{Clientes: file.Clientes}, nil
}
