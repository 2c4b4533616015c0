package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var ingestTimeout time.Duration

var ingestCmd = &cobra.Command{
	Use:   "ingest [archivos...]",
	Short: "Carga NF-e en la base",
	Long: `Carga uno o más XML de NF-e por el mismo camino que POST /api/upload_xml.
Una NF-e cuyo número ya existe se informa como duplicada y no se escribe.

Ejemplos:
  opmectl ingest nota.xml
  opmectl ingest notas/ -f table`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().DurationVar(&ingestTimeout, "timeout", 30*time.Second, "Timeout por archivo")
}

type ingestResult struct {
	File    string `json:"arquivo"`
	Number  string `json:"numero_nf,omitempty"`
	Created bool   `json:"created"`
	Error   string `json:"erro,omitempty"`
}

func runIngest(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("ningún archivo para cargar")
	}

	deps, err := openDeps(cmd.Context())
	if err != nil {
		return err
	}
	defer deps.Close()

	results := make([]ingestResult, 0, len(files))
	failed := 0
	for _, f := range files {
		r := ingestResult{File: f}
		raw, err := os.ReadFile(f)
		if err == nil {
			ctx, cancel := contextWithTimeout(cmd, ingestTimeout)
			res, ingErr := deps.ingest.UploadXML(ctx, raw)
			cancel()
			r.Number, r.Created, err = res.Number, res.Created, ingErr
		}
		if err != nil {
			r.Error = err.Error()
			failed++
		}
		results = append(results, r)
	}

	if outputFormat == "table" {
		rows := [][]string{{"ARQUIVO", "NF", "STATUS"}}
		for _, r := range results {
			status := "criada"
			switch {
			case r.Error != "":
				status = "erro: " + r.Error
			case !r.Created:
				status = "duplicada"
			}
			rows = append(rows, []string{r.File, r.Number, status})
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
