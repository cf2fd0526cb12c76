package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType is the SRI document-type code (codDoc) carried in the
// infoTributaria block of every electronic receipt.
type DocumentType string

const (
	TipoFactura           DocumentType = "01"
	TipoLiquidacionCompra DocumentType = "03"
	TipoNotaCredito       DocumentType = "04"
	TipoNotaDebito        DocumentType = "05"
	TipoGuiaRemision      DocumentType = "06"
	TipoRetencion         DocumentType = "07"
)

// LabelDesconocido is the label applied to document-type codes this tool
// does not recognize. Unknown codes are kept, not rejected.
const LabelDesconocido = "Desconocido"

// Label returns the human-readable name for the document type.
func (t DocumentType) Label() string {
	switch t {
	case TipoFactura:
		return "Factura"
	case TipoLiquidacionCompra:
		return "Liq. de Compra"
	case TipoNotaCredito:
		return "Nota de Crédito"
	case TipoNotaDebito:
		return "Nota de Débito"
	case TipoGuiaRemision:
		return "Guía de Remisión"
	case TipoRetencion:
		return "Retención"
	default:
		return LabelDesconocido
	}
}

// Known reports whether the code is one of the SRI document types this
// tool knows how to extract detail fields for.
func (t DocumentType) Known() bool {
	return t.Label() != LabelDesconocido
}

// Comprobante is the normalized record extracted from one SRI electronic
// receipt XML. ClaveAcceso is the natural key; no two persisted records
// may share one.
type Comprobante struct {
	ID                  string          `json:"id" csv:"-"`
	ClaveAcceso         string          `json:"claveAcceso" csv:"ClaveAcceso"`
	CodDoc              DocumentType    `json:"codDoc" csv:"CodDoc"`
	Tipo                string          `json:"tipo" csv:"Tipo"`
	RucEmisor           string          `json:"rucEmisor" csv:"RucEmisor"`
	RazonSocialEmisor   string          `json:"razonSocialEmisor" csv:"RazonSocialEmisor"`
	RucReceptor         string          `json:"rucReceptor" csv:"RucReceptor"`
	RazonSocialReceptor string          `json:"razonSocialReceptor" csv:"RazonSocialReceptor"`
	Fecha               string          `json:"fecha" csv:"Fecha"`
	ImporteTotal        decimal.Decimal `json:"importeTotal" csv:"ImporteTotal"`
	TotalIVA            decimal.Decimal `json:"totalIVA" csv:"TotalIVA"`
	ClienteID           string          `json:"clienteId" csv:"-"`
	ClienteNombre       string          `json:"clienteNombre" csv:"Cliente"`
	XMLURL              string          `json:"xmlUrl" csv:"-"`
	CreatedAt           time.Time       `json:"createdAt" csv:"-"`
}

// Year returns the four-digit year of the issue date, or "" when the
// date could not be normalized during parsing.
func (c Comprobante) Year() string {
	if len(c.Fecha) < 4 {
		return ""
	}
	return c.Fecha[:4]
}
