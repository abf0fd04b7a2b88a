package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gestionpro/stock-ledger-api/internal/application/billing"
	"github.com/gestionpro/stock-ledger-api/internal/application/inventory"
	"github.com/gestionpro/stock-ledger-api/internal/application/production"
	"github.com/gestionpro/stock-ledger-api/internal/application/receiving"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger       *inventory.Ledger
	InvoiceUC    *billing.InvoiceUseCase
	ReceiptUC    *receiving.GoodsReceiptUseCase
	ProductionUC *production.ProductionUseCase
	JWTSecret    string
}

// Router registra las rutas de la API. Todas requieren Bearer Token: el motor
// no expone endpoints públicos (el CRUD de catálogo vive en otro servicio).
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Stock Ledger
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger)
	inv.Post("/transfers", inventoryHandler.Transfer)
	inv.Post("/adjustments", RequireRole("admin", "bodeguero"), inventoryHandler.Adjust)
	inv.Get("/stock", inventoryHandler.GetStock)
	inv.Get("/movements", inventoryHandler.GetMovementsByDateRange)
	inv.Get("/movements/product/:id", inventoryHandler.GetProductMovements)
	inv.Get("/movements/document/:id", inventoryHandler.GetDocumentMovements)

	// Facturación
	invoices := api.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Post("/:id/issue", invoiceHandler.Issue)
	invoices.Post("/:id/cancel", invoiceHandler.Cancel)
	invoices.Post("/:id/pay", invoiceHandler.Pay)

	// Notas de entrada
	receipts := api.Group("/goods-receipts")
	receiptHandler := NewGoodsReceiptHandler(deps.ReceiptUC)
	receipts.Post("/", receiptHandler.Create)
	receipts.Get("/:id", receiptHandler.GetByID)

	// Órdenes de producción
	orders := api.Group("/production-orders")
	productionHandler := NewProductionHandler(deps.ProductionUC)
	orders.Post("/", productionHandler.Create)
	orders.Get("/:id", productionHandler.GetByID)
	orders.Post("/:id/process", productionHandler.Process)
	orders.Post("/:id/cancel", productionHandler.Cancel)
}
