package handler

import (
	"errors"

	"go-icarstok-ws/internal/service"

	"github.com/gofiber/fiber/v2"
)

type LedgerHandler struct {
	service service.LedgerService
}

func NewLedgerHandler(s service.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: s}
}

// SubmitSale records a sale and decrements the product's stock.
// POST /api/v1/sales
func (h *LedgerHandler) SubmitSale(c *fiber.Ctx) error {
	var req service.SubmitSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.service.SubmitSale(getOwnerID(c), &req)
	if err != nil {
		return c.Status(ledgerErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Sale recorded", "data": sale})
}

// SubmitPurchase records a purchase and increments the product's stock.
// POST /api/v1/purchases
func (h *LedgerHandler) SubmitPurchase(c *fiber.Ctx) error {
	var req service.SubmitPurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	purchase, err := h.service.SubmitPurchase(getOwnerID(c), &req)
	if err != nil {
		return c.Status(ledgerErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{"message": "Purchase recorded", "data": purchase})
}

func (h *LedgerHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.service.GetAllSales(getOwnerID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(sales)
}

func (h *LedgerHandler) GetSale(c *fiber.Ctx) error {
	saleID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.service.GetSaleByID(getOwnerID(c), saleID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Sale not found"})
	}
	return c.JSON(sale)
}

func (h *LedgerHandler) GetPurchases(c *fiber.Ctx) error {
	purchases, err := h.service.GetAllPurchases(getOwnerID(c))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(purchases)
}

func (h *LedgerHandler) GetPurchase(c *fiber.Ctx) error {
	purchaseID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid purchase ID"})
	}

	purchase, err := h.service.GetPurchaseByID(getOwnerID(c), purchaseID)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Purchase not found"})
	}
	return c.JSON(purchase)
}

func ledgerErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrProductNotFound):
		return 404
	case errors.Is(err, service.ErrInsufficientStock):
		return 409
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrNegativePrice),
		errors.Is(err, service.ErrInvalidDate):
		return 400
	default:
		// Anything else is a persistence failure, not a bad request
		return 500
	}
}
