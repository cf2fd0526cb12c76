// Package sri provides functionality to parse SRI electronic receipt XML
// documents (facturas, liquidaciones de compra, notas de crédito y débito,
// guías de remisión and comprobantes de retención).
package sri

import (
	"bytes"
	"strings"

	"fcastillo/sri-comprobantes/internal/currencyutils"
	"fcastillo/sri-comprobantes/internal/dateutils"
	"fcastillo/sri-comprobantes/internal/models"
	"fcastillo/sri-comprobantes/internal/parsererror"

	"github.com/shopspring/decimal"
	"gopkg.in/xmlpath.v2"
)

// codigoIVA is the tax code that marks value-added tax within the
// totalImpuesto lines of a factura, liquidación or nota de crédito.
const codigoIVA = "2"

// Absolute paths locating the per-type detail blocks.
var (
	pathRootElement     = xmlpath.MustCompile("/*")
	pathInfoTributaria  = xmlpath.MustCompile("//infoTributaria")
	pathInfoFactura     = xmlpath.MustCompile("//infoFactura")
	pathInfoLiquidacion = xmlpath.MustCompile("//infoLiquidacionCompra")
	pathInfoNotaCredito = xmlpath.MustCompile("//infoNotaCredito")
	pathInfoNotaDebito  = xmlpath.MustCompile("//infoNotaDebito")
	pathInfoRetencion   = xmlpath.MustCompile("//infoCompRetencion")
	pathInfoGuia        = xmlpath.MustCompile("//infoGuiaRemision")
	pathTotalImpuesto   = xmlpath.MustCompile("//totalImpuesto")
	pathImpuesto        = xmlpath.MustCompile("//impuesto")
)

// Relative paths evaluated against a located block node.
var (
	relCodDoc              = xmlpath.MustCompile("codDoc")
	relClaveAcceso         = xmlpath.MustCompile("claveAcceso")
	relRuc                 = xmlpath.MustCompile("ruc")
	relRazonSocial         = xmlpath.MustCompile("razonSocial")
	relIdentComprador      = xmlpath.MustCompile("identificacionComprador")
	relRazonComprador      = xmlpath.MustCompile("razonSocialComprador")
	relIdentSujetoRetenido = xmlpath.MustCompile("identificacionSujetoRetenido")
	relRazonSujetoRetenido = xmlpath.MustCompile("razonSocialSujetoRetenido")
	relFechaEmision        = xmlpath.MustCompile("fechaEmision")
	relFechaIniTransporte  = xmlpath.MustCompile("fechaIniTransporte")
	relImporteTotal        = xmlpath.MustCompile("importeTotal")
	relValorModificacion   = xmlpath.MustCompile("valorModificacion")
	relValorTotal          = xmlpath.MustCompile("valorTotal")
	relCodigo              = xmlpath.MustCompile("codigo")
	relValor               = xmlpath.MustCompile("valor")
	relValorRetenido       = xmlpath.MustCompile("valorRetenido")
)

// Parse extracts a normalized Comprobante from raw SRI XML. It fails only
// when the input is not XML, the infoTributaria block is missing, or the
// clave de acceso is empty; every other irregularity (absent date, absent
// amounts, unknown document-type code) degrades to empty or zero fields.
// Parse has no side effects.
func Parse(xmlData []byte) (*models.Comprobante, error) {
	root, err := xmlpath.Parse(bytes.NewReader(xmlData))
	if err != nil {
		return nil, &parsererror.InvalidXMLError{Err: err}
	}
	// encoding/xml tolerates bare top-level character data, so plain
	// text (or empty input) parses without error but has no root
	// element.
	if _, ok := firstNode(pathRootElement, root); !ok {
		return nil, &parsererror.InvalidXMLError{}
	}

	infoTrib, ok := firstNode(pathInfoTributaria, root)
	if !ok {
		return nil, &parsererror.NotComprobanteError{}
	}

	claveAcceso := value(infoTrib, relClaveAcceso)
	if claveAcceso == "" {
		return nil, &parsererror.MissingAccessKeyError{}
	}

	codDoc := models.DocumentType(value(infoTrib, relCodDoc))
	c := &models.Comprobante{
		ClaveAcceso:       claveAcceso,
		CodDoc:            codDoc,
		Tipo:              codDoc.Label(),
		RucEmisor:         value(infoTrib, relRuc),
		RazonSocialEmisor: value(infoTrib, relRazonSocial),
		ImporteTotal:      decimal.Zero,
		TotalIVA:          decimal.Zero,
	}

	var fechaRaw string

	switch codDoc {
	case models.TipoFactura, models.TipoLiquidacionCompra:
		info, ok := firstNode(pathInfoFactura, root)
		if !ok {
			info, _ = firstNode(pathInfoLiquidacion, root)
		}
		c.RucReceptor = value(info, relIdentComprador)
		c.RazonSocialReceptor = value(info, relRazonComprador)
		fechaRaw = value(info, relFechaEmision)
		c.ImporteTotal = currencyutils.AmountOrZero(value(info, relImporteTotal))
		c.TotalIVA = sumTaxLines(root, pathTotalImpuesto, relValor, codigoIVA)

	case models.TipoNotaCredito:
		info, _ := firstNode(pathInfoNotaCredito, root)
		c.RucReceptor = value(info, relIdentComprador)
		c.RazonSocialReceptor = value(info, relRazonComprador)
		fechaRaw = value(info, relFechaEmision)
		c.ImporteTotal = currencyutils.AmountOrZero(value(info, relValorModificacion))
		c.TotalIVA = sumTaxLines(root, pathTotalImpuesto, relValor, codigoIVA)

	case models.TipoNotaDebito:
		info, _ := firstNode(pathInfoNotaDebito, root)
		c.RucReceptor = value(info, relIdentComprador)
		c.RazonSocialReceptor = value(info, relRazonComprador)
		fechaRaw = value(info, relFechaEmision)
		c.ImporteTotal = currencyutils.AmountOrZero(value(info, relValorTotal))

	case models.TipoRetencion:
		info, _ := firstNode(pathInfoRetencion, root)
		c.RucReceptor = value(info, relIdentSujetoRetenido)
		c.RazonSocialReceptor = value(info, relRazonSujetoRetenido)
		fechaRaw = value(info, relFechaEmision)
		c.ImporteTotal = sumTaxLines(root, pathImpuesto, relValorRetenido, "")

	case models.TipoGuiaRemision:
		info, _ := firstNode(pathInfoGuia, root)
		fechaRaw = value(info, relFechaIniTransporte)

	default:
		// Unknown codDoc: keep the issuer identity, leave the rest empty.
	}

	c.Fecha = dateutils.NormalizeSRIDate(fechaRaw)
	c.ImporteTotal = currencyutils.RoundCents(c.ImporteTotal)
	c.TotalIVA = currencyutils.RoundCents(c.TotalIVA)

	return c, nil
}

// firstNode returns the first node matched by path, if any.
func firstNode(path *xmlpath.Path, context *xmlpath.Node) (*xmlpath.Node, bool) {
	iter := path.Iter(context)
	if !iter.Next() {
		return nil, false
	}
	return iter.Node(), true
}

// value evaluates a relative path against a node and returns the trimmed
// text content, or "" when the node or the element is absent.
func value(node *xmlpath.Node, path *xmlpath.Path) string {
	if node == nil {
		return ""
	}
	s, ok := path.String(node)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// sumTaxLines adds up the amount element of every tax line in the
// document. When codigo is non-empty only lines whose codigo child
// matches are counted.
func sumTaxLines(root *xmlpath.Node, lines, amount *xmlpath.Path, codigo string) decimal.Decimal {
	total := decimal.Zero
	iter := lines.Iter(root)
	for iter.Next() {
		node := iter.Node()
		if codigo != "" && value(node, relCodigo) != codigo {
			continue
		}
		total = total.Add(currencyutils.AmountOrZero(value(node, amount)))
	}
	return total
}
