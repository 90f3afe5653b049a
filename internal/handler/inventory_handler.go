package handler

import (
	"go-pharmacy-inventory/internal/model"
	"go-pharmacy-inventory/internal/service"
	"go-pharmacy-inventory/internal/stock"
	"go-pharmacy-inventory/pkg/currency"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	service service.InventoryService
}

func NewInventoryHandler(s service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: s}
}

// productListItem adds display-ready Rupiah strings to a listing row.
type productListItem struct {
	stock.ProductRow
	PriceDisplay     string `json:"price_display"`
	ValuationDisplay string `json:"valuation_display"`
}

// GetProducts lists the catalog.
// Query params: search, category (all|medicine|supplement), sort (name|quantity|price)
func (h *InventoryHandler) GetProducts(c *fiber.Ctx) error {
	category, err := stock.ParseCategory(c.Query("category"))
	if err != nil {
		return sendError(c, err)
	}
	sort, err := stock.ParseSort(c.Query("sort"))
	if err != nil {
		return sendError(c, err)
	}

	rows, err := h.service.ListProducts(stock.ProductQuery{
		Search:   c.Query("search"),
		Category: category,
		Sort:     sort,
	})
	if err != nil {
		return sendError(c, err)
	}

	items := make([]productListItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, productListItem{
			ProductRow:       r,
			PriceDisplay:     currency.FormatIDR(r.Price),
			ValuationDisplay: currency.FormatIDR(r.Valuation),
		})
	}
	return c.JSON(fiber.Map{"data": items, "total": len(items)})
}

func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(product)
}

func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	created, err := h.service.CreateProduct(&product)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Product created", "data": created})
}

func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var product model.Product
	if err := c.BodyParser(&product); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	updated, err := h.service.UpdateProduct(id, &product)
	if err != nil {
		return sendError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": updated})
}

func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.Params("id")); err != nil {
		return sendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetTransactions lists the ledger, newest first.
// Query params: type (all|incoming|outgoing), search
func (h *InventoryHandler) GetTransactions(c *fiber.Ctx) error {
	txType, err := stock.ParseTransactionType(c.Query("type"))
	if err != nil {
		return sendError(c, err)
	}

	transactions, err := h.service.ListTransactions(stock.TransactionQuery{
		Type:   txType,
		Search: c.Query("search"),
	})
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(fiber.Map{
		"data":    transactions,
		"total":   len(transactions),
		"summary": stock.Summarize(transactions),
	})
}

func (h *InventoryHandler) GetTransaction(c *fiber.Ctx) error {
	tx, err := h.service.GetTransactionByID(c.Params("id"))
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(tx)
}

func (h *InventoryHandler) CreateTransaction(c *fiber.Ctx) error {
	var req model.TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	tx, err := h.service.RecordTransaction(&req)
	if err != nil {
		return sendError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{"message": "Transaction recorded", "data": tx})
}
