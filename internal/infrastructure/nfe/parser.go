// Package nfe interpreta el XML de la NF-e (leiaute 4.00 y anteriores) y lo convierte en entity.NFe.
// Solo lee el subconjunto que usa el motor de consignación: cabecera, líneas y rastreo de lote.
package nfe

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/opme-consignado/internal/domain"
	"github.com/jhoicas/opme-consignado/internal/domain/entity"
	pkgnfe "github.com/jhoicas/opme-consignado/pkg/nfe"
)

// Parser convierte bytes XML en una NF-e estructurada. No tiene estado; es seguro para uso concurrente.
type Parser struct{}

// NewParser crea el parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodifica un documento nfeProc o NFe. Devuelve *domain.MalformedInputError si el XML
// no es válido, falta un campo obligatorio de cabecera o alguna línea está incompleta.
// Nunca devuelve una NF-e parcial.
func (p *Parser) Parse(raw []byte) (*entity.NFe, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, domain.NewMalformedInputError("", "documento vacío", nil)
	}

	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, domain.NewMalformedInputError("", "XML no interpretable", err)
	}
	if doc.Root() == nil {
		return nil, domain.NewMalformedInputError("", "XML sin elemento raíz", nil)
	}

	// nfeProc/NFe/infNFe o NFe/infNFe: se busca infNFe en cualquier nivel.
	inf := doc.FindElement("//infNFe")
	if inf == nil {
		return nil, domain.NewMalformedInputError("infNFe", "elemento no encontrado", nil)
	}

	out := &entity.NFe{}
	var err error

	if out.Number, err = requiredText(inf, "ide/nNF"); err != nil {
		return nil, err
	}
	if out.IssueDate, err = issueDate(inf); err != nil {
		return nil, err
	}
	if out.IssuerTaxID, err = requiredTaxID(inf, "emit"); err != nil {
		return nil, err
	}
	if out.IssuerName, err = requiredText(inf, "emit/xNome"); err != nil {
		return nil, err
	}
	if out.RecipientTaxID, err = requiredTaxID(inf, "dest"); err != nil {
		return nil, err
	}
	if out.RecipientName, err = requiredText(inf, "dest/xNome"); err != nil {
		return nil, err
	}
	out.AccessKey = accessKey(doc, inf)

	dets := inf.SelectElements("det")
	if len(dets) == 0 {
		return nil, domain.NewMalformedInputError("det", "la NF-e no tiene líneas", nil)
	}
	out.Items = make([]entity.NFeItem, 0, len(dets))
	for i, det := range dets {
		item, err := parseItem(det, i+1)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, item)
	}

	out.XMLDigest = digest(raw)
	return out, nil
}

// parseItem lee det/prod. pos es la posición 1-based para el mensaje de error.
func parseItem(det *etree.Element, pos int) (entity.NFeItem, error) {
	prefix := fmt.Sprintf("det[%d]/prod", pos)
	prod := det.SelectElement("prod")
	if prod == nil {
		return entity.NFeItem{}, domain.NewMalformedInputError(prefix, "elemento no encontrado", nil)
	}

	var item entity.NFeItem
	var err error
	if item.ProductCode, err = requiredChild(prod, "cProd", prefix); err != nil {
		return entity.NFeItem{}, err
	}
	item.ProductDescription = text(prod, "xProd")
	if item.CFOP, err = requiredChild(prod, "CFOP", prefix); err != nil {
		return entity.NFeItem{}, err
	}
	if !pkgnfe.IsCFOP(item.CFOP) {
		return entity.NFeItem{}, domain.NewMalformedInputError(prefix+"/CFOP", fmt.Sprintf("CFOP %q debe tener 4 dígitos", item.CFOP), nil)
	}
	item.Unit = text(prod, "uCom")
	if item.Quantity, err = requiredDecimal(prod, "qCom", prefix); err != nil {
		return entity.NFeItem{}, err
	}
	if item.UnitValue, err = requiredDecimal(prod, "vUnCom", prefix); err != nil {
		return entity.NFeItem{}, err
	}

	// Rastreo de lote: prod/rastro (4.00) o prod/med (leiautes antiguos). Ausente = "" y cero.
	item.LotQuantity = decimal.Zero
	lot := prod.SelectElement("rastro")
	if lot == nil {
		lot = prod.SelectElement("med")
	}
	if lot != nil {
		item.LotID = text(lot, "nLote")
		if q := text(lot, "qLote"); q != "" {
			d, err := decimal.NewFromString(q)
			if err != nil {
				return entity.NFeItem{}, domain.NewMalformedInputError(prefix+"/"+lot.Tag+"/qLote", "cantidad de lote no decimal", err)
			}
			if d.IsNegative() {
				return entity.NFeItem{}, domain.NewMalformedInputError(prefix+"/"+lot.Tag+"/qLote", "valor negativo", nil)
			}
			item.LotQuantity = d
		}
	}
	return item, nil
}

func issueDate(inf *etree.Element) (time.Time, error) {
	if v := text(inf, "ide/dhEmi"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, domain.NewMalformedInputError("ide/dhEmi", "fecha inválida", err)
		}
		return t, nil
	}
	if v := text(inf, "ide/dEmi"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, domain.NewMalformedInputError("ide/dEmi", "fecha inválida", err)
		}
		return t, nil
	}
	return time.Time{}, domain.NewMalformedInputError("ide/dhEmi", "campo obligatorio ausente", nil)
}

// requiredTaxID lee CNPJ o, en su defecto, CPF del grupo (emit/dest) y lo normaliza a dígitos.
func requiredTaxID(inf *etree.Element, group string) (string, error) {
	v := text(inf, group+"/CNPJ")
	if v == "" {
		v = text(inf, group+"/CPF")
	}
	v = pkgnfe.OnlyDigits(v)
	if v == "" {
		return "", domain.NewMalformedInputError(group+"/CNPJ", "campo obligatorio ausente", nil)
	}
	return v, nil
}

func accessKey(doc *etree.Document, inf *etree.Element) string {
	if ch := doc.FindElement("//protNFe/infProt/chNFe"); ch != nil {
		if k := pkgnfe.OnlyDigits(ch.Text()); k != "" {
			return k
		}
	}
	return pkgnfe.AccessKeyFromID(inf.SelectAttrValue("Id", ""))
}

func requiredText(parent *etree.Element, path string) (string, error) {
	v := text(parent, path)
	if v == "" {
		return "", domain.NewMalformedInputError(path, "campo obligatorio ausente", nil)
	}
	return v, nil
}

func requiredChild(parent *etree.Element, tag, prefix string) (string, error) {
	v := text(parent, tag)
	if v == "" {
		return "", domain.NewMalformedInputError(prefix+"/"+tag, "campo obligatorio ausente", nil)
	}
	return v, nil
}

// requiredDecimal exige un decimal no negativo.
func requiredDecimal(parent *etree.Element, tag, prefix string) (decimal.Decimal, error) {
	v, err := requiredChild(parent, tag, prefix)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, domain.NewMalformedInputError(prefix+"/"+tag, fmt.Sprintf("%q no es decimal", v), err)
	}
	if d.IsNegative() {
		return decimal.Zero, domain.NewMalformedInputError(prefix+"/"+tag, "valor negativo", nil)
	}
	return d, nil
}

func text(parent *etree.Element, path string) string {
	el := parent.FindElement(path)
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// charsetReader acepta documentos ISO-8859-1 / windows-1252, frecuentes en emisores antiguos.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "iso-8859-1", "iso8859-1", "latin1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	case "utf-8", "utf8", "":
		return input, nil
	}
	return nil, fmt.Errorf("charset no soportado: %s", label)
}

// digest calcula SHA-256 sobre la forma canónica (C14N) del documento; si la canonicalización
// falla se usa el contenido tal cual. Es informativo: la deduplicación es por número.
func digest(raw []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.CharsetReader = charsetReader
	dec.Entity = map[string]string{}
	canonical, err := c14n.Canonicalize(dec)
	if err != nil {
		canonical = raw
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:])
}
