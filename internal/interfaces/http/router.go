package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/opme-consignado/internal/application/consignment"
	"github.com/jhoicas/opme-consignado/internal/application/nfesync"
	"github.com/jhoicas/opme-consignado/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	IngestUC        *consignment.IngestNFeUseCase
	BalanceUC       *consignment.BalanceUseCase
	ReportUC        *consignment.ReportUseCase
	SyncOrch        *nfesync.Orchestrator // nil = integración Maino desactivada
	SyncDefaultDays int
	Logger          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", RequestLogger(deps.Logger))

	// NF-e
	nfeHandler := NewNFeHandler(deps.IngestUC)
	api.Post("/upload_xml", nfeHandler.Upload)

	// Saldo y movimientos
	balanceHandler := NewBalanceHandler(deps.BalanceUC, deps.ReportUC)
	api.Get("/balance", balanceHandler.Balance)
	api.Get("/movements", balanceHandler.Movements)

	estoque := api.Group("/estoque")
	estoque.Get("/resumo", balanceHandler.Summary)
	estoque.Get("/resumo/pdf", balanceHandler.SummaryPDF)
	estoque.Get("/resumo/xlsx", balanceHandler.SummaryXLSX)
	estoque.Get("/produto/:codigo", balanceHandler.ByProduct)
	estoque.Get("/cliente/:cnpj", balanceHandler.ByClient)
	estoque.Get("/cliente/:cnpj/xlsx", balanceHandler.ClientXLSX)

	// Sincronización con el emisor
	syncHandler := NewSyncHandler(deps.SyncOrch, deps.SyncDefaultDays)
	api.Post("/maino/sync", syncHandler.Sync)
}
