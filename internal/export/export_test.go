package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fcastillo/sri-comprobantes/internal/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func init() {
	log = logrus.New()
	log.SetLevel(logrus.DebugLevel)
}

func sampleComprobantes() []models.Comprobante {
	return []models.Comprobante{
		{
			ClaveAcceso:       "clave-1",
			CodDoc:            models.TipoFactura,
			Tipo:              "Factura",
			RucEmisor:         "1790012345001",
			RazonSocialEmisor: "COMERCIAL ANDINA S.A.",
			Fecha:             "2026-02-05",
			ImporteTotal:      decimal.RequireFromString("120.00"),
			TotalIVA:          decimal.RequireFromString("15.00"),
			ClienteNombre:     "Comercial Andina",
		},
		{
			ClaveAcceso:  "clave-2",
			CodDoc:       models.TipoRetencion,
			Tipo:         "Retención",
			RucEmisor:    "0998877665001",
			Fecha:        "2025-11-20",
			ImporteTotal: decimal.RequireFromString("12.50"),
		},
	}
}

func TestWriteCSV(t *testing.T) {
	tempDir := filepath.Join(os.TempDir(), "export-test")
	err := os.MkdirAll(tempDir, 0755)
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	csvFile := filepath.Join(tempDir, "out", "comprobantes.csv")
	err = WriteCSV(sampleComprobantes(), csvFile)
	assert.NoError(t, err)

	data, err := os.ReadFile(csvFile)
	assert.NoError(t, err)

	content := string(data)
	lines := strings.Split(strings.TrimSpace(content), "\n")
	assert.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ClaveAcceso")
	assert.Contains(t, lines[0], "ImporteTotal")
	assert.Contains(t, content, "clave-1")
	assert.Contains(t, content, "COMERCIAL ANDINA S.A.")
	assert.Contains(t, content, "Comercial Andina")
	assert.Contains(t, content, "clave-2")
}

func TestWriteCSVNil(t *testing.T) {
	err := WriteCSV(nil, "unused.csv")
	assert.Error(t, err)
}

func TestWriteCSVCustomDelimiter(t *testing.T) {
	tempDir := filepath.Join(os.TempDir(), "export-delim-test")
	err := os.MkdirAll(tempDir, 0755)
	if err != nil {
		t.Fatalf("Failed to create temp directory: %v", err)
	}
	defer os.RemoveAll(tempDir)

	SetDelimiter(';')
	defer SetDelimiter(',')

	csvFile := filepath.Join(tempDir, "comprobantes.csv")
	err = WriteCSV(sampleComprobantes(), csvFile)
	assert.NoError(t, err)

	data, err := os.ReadFile(csvFile)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "ClaveAcceso;CodDoc")
}

func TestFilterByYear(t *testing.T) {
	comprobantes := sampleComprobantes()

	filtered := FilterByYear(comprobantes, "2026")
	assert.Len(t, filtered, 1)
	assert.Equal(t, "clave-1", filtered[0].ClaveAcceso)

	filtered = FilterByYear(comprobantes, "2024")
	assert.Empty(t, filtered)

	filtered = FilterByYear(comprobantes, "")
	assert.Len(t, filtered, 2)
}

func TestFilterByTipo(t *testing.T) {
	comprobantes := sampleComprobantes()

	filtered := FilterByTipo(comprobantes, models.TipoRetencion)
	assert.Len(t, filtered, 1)
	assert.Equal(t, "clave-2", filtered[0].ClaveAcceso)

	filtered = FilterByTipo(comprobantes, models.TipoNotaCredito)
	assert.Empty(t, filtered)

	filtered = FilterByTipo(comprobantes, "")
	assert.Len(t, filtered, 2)
}
