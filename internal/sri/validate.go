package sri

import (
	"fmt"

	"fcastillo/sri-comprobantes/internal/fileutils"
	"fcastillo/sri-comprobantes/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// ParseFile reads and parses an SRI XML file from disk.
func ParseFile(xmlFile string) (*models.Comprobante, error) {
	log.WithField("file", xmlFile).Debug("Parsing SRI XML file")

	data, err := fileutils.ReadFile(xmlFile)
	if err != nil {
		return nil, fmt.Errorf("error reading XML file: %w", err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"file":        xmlFile,
		"tipo":        c.Tipo,
		"claveAcceso": c.ClaveAcceso,
	}).Debug("Parsed SRI comprobante")
	return c, nil
}

// ValidateFormat checks if a file is a recognized SRI comprobante XML.
// A file that is not valid XML or lacks the infoTributaria block is
// reported as invalid, not as an error.
func ValidateFormat(xmlFile string) (bool, error) {
	log.WithField("file", xmlFile).Info("Validating SRI comprobante format")

	data, err := fileutils.ReadFile(xmlFile)
	if err != nil {
		return false, fmt.Errorf("error reading XML file: %w", err)
	}

	if _, err := Parse(data); err != nil {
		log.WithError(err).WithField("file", xmlFile).Debug("File is not a valid SRI comprobante")
		return false, nil
	}

	log.WithField("file", xmlFile).Info("File is a valid SRI comprobante XML")
	return true, nil
}
