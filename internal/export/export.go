// Package export writes persisted comprobantes to CSV for the practice's
// reporting spreadsheets.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"fcastillo/sri-comprobantes/internal/fileutils"
	"fcastillo/sri-comprobantes/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// Delimiter for CSV output, configurable via SetDelimiter.
var delimiter rune = ','

// SetDelimiter allows setting the delimiter for CSV output
func SetDelimiter(delim rune) {
	delimiter = delim
}

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// WriteCSV writes comprobantes to a CSV file, creating parent
// directories as needed. Amounts are fixed to 2 decimal places by the
// decimal text marshaling already carried on the model.
func WriteCSV(comprobantes []models.Comprobante, csvFile string) error {
	if comprobantes == nil {
		return fmt.Errorf("cannot write nil comprobantes to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(comprobantes),
	}).Info("Writing comprobantes to CSV file")

	if err := fileutils.EnsureDirectoryExists(filepath.Dir(csvFile)); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = delimiter

	if err := gocsv.MarshalCSV(comprobantes, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	log.WithField("file", csvFile).Info("Successfully wrote comprobantes to CSV file")
	return nil
}

// FilterByYear keeps comprobantes issued in the given four-digit year.
// An empty year keeps everything.
func FilterByYear(comprobantes []models.Comprobante, year string) []models.Comprobante {
	if year == "" {
		return comprobantes
	}
	out := make([]models.Comprobante, 0, len(comprobantes))
	for _, c := range comprobantes {
		if c.Year() == year {
			out = append(out, c)
		}
	}
	return out
}

// FilterByTipo keeps comprobantes of the given document-type code. An
// empty code keeps everything.
func FilterByTipo(comprobantes []models.Comprobante, codDoc models.DocumentType) []models.Comprobante {
	if codDoc == "" {
		return comprobantes
	}
	out := make([]models.Comprobante, 0, len(comprobantes))
	for _, c := range comprobantes {
		if c.CodDoc == codDoc {
			out = append(out, c)
		}
	}
	return out
}
