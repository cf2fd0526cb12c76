package models

// Cliente is one entry of the practice's client registry. RUC may be
// empty for clients registered without a tax ID; those never match a
// comprobante.
type Cliente struct {
	ID     string `json:"id" yaml:"id"`
	RUC    string `json:"ruc" yaml:"ruc"`
	Nombre string `json:"nombre" yaml:"nombre"`
}
