package parsererror

import "fmt"

// InvalidXMLError represents input that is not well-formed XML at all.
type InvalidXMLError struct {
	Err error
}

func (e *InvalidXMLError) Error() string {
	return "XML inválido o corrupto"
}

func (e *InvalidXMLError) Unwrap() error {
	return e.Err
}

// NotComprobanteError represents well-formed XML that lacks the
// mandatory infoTributaria block and therefore is not an SRI receipt.
type NotComprobanteError struct{}

func (e *NotComprobanteError) Error() string {
	return "No es un comprobante SRI (falta infoTributaria)"
}

// MissingAccessKeyError represents a recognized receipt whose claveAcceso
// field is absent or empty.
type MissingAccessKeyError struct{}

func (e *MissingAccessKeyError) Error() string {
	return "Clave de acceso no encontrada"
}

// PersistenceError represents a failed append to the record store. The
// batch reports it per file and does not retry.
type PersistenceError struct {
	ClaveAcceso string
	Err         error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("no se pudo guardar el comprobante %s: %v", e.ClaveAcceso, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ArchiveError represents a failed upload of the raw XML blob to the
// object archive.
type ArchiveError struct {
	ClaveAcceso string
	Err         error
}

func (e *ArchiveError) Error() string {
	return fmt.Sprintf("no se pudo archivar el XML %s: %v", e.ClaveAcceso, e.Err)
}

func (e *ArchiveError) Unwrap() error {
	return e.Err
}
