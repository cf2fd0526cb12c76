// Package export handles CSV export of ingested comprobantes
package export

import (
	"context"

	"fcastillo/sri-comprobantes/cmd/root"
	"fcastillo/sri-comprobantes/internal/config"
	"fcastillo/sri-comprobantes/internal/export"
	"fcastillo/sri-comprobantes/internal/fileutils"
	"fcastillo/sri-comprobantes/internal/models"
	"fcastillo/sri-comprobantes/internal/sri"
	"fcastillo/sri-comprobantes/internal/store"

	"github.com/spf13/cobra"
)

var (
	year string
	tipo string
)

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export [files...]",
	Short: "Export comprobantes to CSV",
	Long: `Export comprobantes to a CSV file. With a database configured the
stored comprobantes are exported, otherwise XML files given as arguments
or found under --dir are parsed and exported directly.

Example:
  comprobantes export -o comprobantes.csv --year 2026
  comprobantes export --dir descargas/ -o comprobantes.csv --tipo 01`,
	Run: exportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&year, "year", "y", "", "Only export comprobantes issued in this year")
	Cmd.Flags().StringVarP(&tipo, "tipo", "t", "", "Only export comprobantes with this codDoc (01, 03, 04, 05, 06, 07)")
}

func exportFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Export command called")

	if root.SharedFlags.Output == "" {
		root.Log.Fatal("Output CSV file must be specified with --output")
	}

	comprobantes, err := collectComprobantes(root.Config, args)
	if err != nil {
		root.Log.Fatalf("Error collecting comprobantes: %v", err)
	}

	if year != "" {
		comprobantes = export.FilterByYear(comprobantes, year)
	}
	if tipo != "" {
		codDoc := models.DocumentType(tipo)
		if !codDoc.Known() {
			root.Log.Warnf("Unknown codDoc %q, the filter will match nothing standard", tipo)
		}
		comprobantes = export.FilterByTipo(comprobantes, codDoc)
	}

	if err := export.WriteCSV(comprobantes, root.SharedFlags.Output); err != nil {
		root.Log.Fatalf("Error writing CSV: %v", err)
	}
	root.Log.Infof("Exported %d comprobantes to %s", len(comprobantes), root.SharedFlags.Output)
}

func collectComprobantes(cfg *config.Config, args []string) ([]models.Comprobante, error) {
	ctx := context.Background()

	if cfg.Store.DSN != "" {
		pg, err := store.Connect(ctx, cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		defer pg.Close()
		return pg.List(ctx)
	}

	paths := args
	if root.SharedFlags.Dir != "" {
		found, err := fileutils.ListFilesWithExtension(root.SharedFlags.Dir, ".xml")
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		root.Log.Fatal("No input: configure a database, pass XML files or use --dir")
	}

	comprobantes := make([]models.Comprobante, 0, len(paths))
	for _, path := range paths {
		c, err := sri.ParseFile(path)
		if err != nil {
			root.Log.WithError(err).Warnf("Skipping %s", path)
			continue
		}
		comprobantes = append(comprobantes, *c)
	}
	return comprobantes, nil
}
