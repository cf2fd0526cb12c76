// Package validate handles validation of comprobante XML files
package validate

import (
	"fcastillo/sri-comprobantes/cmd/root"
	"fcastillo/sri-comprobantes/internal/sri"

	"github.com/spf13/cobra"
)

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate if XML files are SRI comprobantes",
	Long: `Validate whether the given XML files are well formed SRI comprobantes
with an infoTributaria block and a clave de acceso.`,
	Args: cobra.MinimumNArgs(1),
	Run:  validateFunc,
}

func validateFunc(cmd *cobra.Command, args []string) {
	root.Log.Info("Validate command called")

	invalid := 0
	for _, xmlFile := range args {
		valid, err := sri.ValidateFormat(xmlFile)
		if err != nil {
			root.Log.Fatalf("Error validating %s: %v", xmlFile, err)
		}
		if valid {
			root.Log.Infof("%s is a valid SRI comprobante", xmlFile)
		} else {
			root.Log.Warnf("%s is NOT a valid SRI comprobante", xmlFile)
			invalid++
		}
	}

	if invalid > 0 {
		root.Log.Fatalf("%d of %d files failed validation", invalid, len(args))
	}
}
