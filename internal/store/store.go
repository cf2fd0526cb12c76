// Package store provides the persisted comprobante record store. Records
// are append-only within the ingestion subsystem; editing or deleting an
// ingested comprobante is out of scope.
package store

import "errors"

// ErrDuplicateClave is returned by Append when a record with the same
// clave de acceso is already persisted. The ingestor checks before
// appending, so hitting this means two writers raced; the store keeps
// the invariant either way.
var ErrDuplicateClave = errors.New("clave de acceso already exists")
