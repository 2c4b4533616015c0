package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/opme-consignado/internal/domain/consignment"
	"github.com/jhoicas/opme-consignado/internal/domain/entity"
	"github.com/jhoicas/opme-consignado/internal/infrastructure/nfe"
)

var parseCmd = &cobra.Command{
	Use:   "parse [archivos...]",
	Short: "Interpreta NF-e sin escribir en la base",
	Long: `Interpreta uno o más XML de NF-e y muestra cabecera e ítems con la
dirección de cada CFOP. No requiere base de datos.

Ejemplos:
  opmectl parse nota.xml
  opmectl parse notas/*.xml -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

type parseResult struct {
	File  string     `json:"arquivo"`
	NFe   *parsedNFe `json:"nfe,omitempty"`
	Error string     `json:"erro,omitempty"`
}

type parsedNFe struct {
	Number         string       `json:"numero_nf"`
	AccessKey      string       `json:"chave,omitempty"`
	IssueDate      string       `json:"data_emissao"`
	IssuerTaxID    string       `json:"cnpj_emitente"`
	RecipientTaxID string       `json:"cnpj_cliente"`
	RecipientName  string       `json:"nome_cliente"`
	Digest         string       `json:"digest"`
	Items          []parsedItem `json:"itens"`
}

type parsedItem struct {
	ProductCode string `json:"codigo_produto"`
	CFOP        string `json:"cfop"`
	Direction   string `json:"direcao"`
	Quantity    string `json:"quantidade"`
	LotID       string `json:"lote,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("ningún archivo para interpretar")
	}

	parser := nfe.NewParser()
	results := make([]parseResult, 0, len(files))
	failed := 0
	for _, f := range files {
		res := parseResult{File: f}
		raw, err := os.ReadFile(f)
		if err == nil {
			var n *entity.NFe
			if n, err = parser.Parse(raw); err == nil {
				res.NFe = toParsed(n)
			}
		}
		if err != nil {
			res.Error = err.Error()
			failed++
		}
		results = append(results, res)
	}

	if outputFormat == "table" {
		rows := [][]string{{"ARQUIVO", "NF", "CLIENTE", "PRODUTO", "CFOP", "DIREÇÃO", "QTD", "LOTE"}}
		for _, r := range results {
			if r.NFe == nil {
				rows = append(rows, []string{r.File, "ERRO", r.Error})
				continue
			}
			for _, it := range r.NFe.Items {
				rows = append(rows, []string{r.File, r.NFe.Number, r.NFe.RecipientTaxID, it.ProductCode, it.CFOP, it.Direction, it.Quantity, it.LotID})
			}
		}
		if err := printTable(rows); err != nil {
			return err
		}
	} else if err := printJSON(results); err != nil {
		return err
	}

	if failed > 0 {
		return fmt.Errorf("%d de %d archivos con error", failed, len(files))
	}
	return nil
}

func toParsed(n *entity.NFe) *parsedNFe {
	p := &parsedNFe{
		Number:         n.Number,
		AccessKey:      n.AccessKey,
		IssueDate:      n.IssueDate.Format("2006-01-02"),
		IssuerTaxID:    n.IssuerTaxID,
		RecipientTaxID: n.RecipientTaxID,
		RecipientName:  n.RecipientName,
		Digest:         n.XMLDigest,
		Items:          make([]parsedItem, 0, len(n.Items)),
	}
	for _, it := range n.Items {
		p.Items = append(p.Items, parsedItem{
			ProductCode: it.ProductCode,
			CFOP:        it.CFOP,
			Direction:   consignment.ClassifyCFOP(it.CFOP).String(),
			Quantity:    it.Quantity.String(),
			LotID:       it.LotID,
		})
	}
	return p
}
