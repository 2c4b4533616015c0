// Package nfe contiene catálogos y utilidades alineados al leiaute da NF-e 4.00 (Brasil)
// usados por el motor de consignación OPME.
package nfe

// =============================================================================
// CFOP - Código Fiscal de Operações e Prestações
// Solo los cuatro códigos que mueven el saldo de consignación. El resto se ignora.
// =============================================================================

const (
	CFOPEntradaEstadual      = "5102" // entrada al consignatario, operación dentro del estado
	CFOPEntradaInterestadual = "6102" // entrada al consignatario, operación interestatal
	CFOPSaidaEstadual        = "5405" // salida del consignatario, dentro del estado
	CFOPSaidaInterestadual   = "6405" // salida del consignatario, interestatal
)

// CFOPLength longitud fija del código CFOP.
const CFOPLength = 4

// =============================================================================
// Documentos fiscales
// =============================================================================

const (
	CNPJLength      = 14
	CPFLength       = 11
	AccessKeyLength = 44 // chave de acesso
)

// Namespace oficial del leiaute NF-e.
const NamespaceNFe = "http://www.portalfiscal.inf.br/nfe"
