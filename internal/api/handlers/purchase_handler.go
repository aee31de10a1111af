package handlers

import (
	"Go-Course-Market/domain"
	"Go-Course-Market/internal/api/presenters"
	"Go-Course-Market/pkg/purchase"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	PurchaseHandler interface {
		RecordPurchase(c *fiber.Ctx) error
	}

	purchaseHandler struct {
		purchaseService purchase.PurchaseService
		validator       *validator.Validate
	}
)

func NewPurchaseHandler(purchaseService purchase.PurchaseService, validator *validator.Validate) PurchaseHandler {
	return &purchaseHandler{
		purchaseService: purchaseService,
		validator:       validator,
	}
}

func (h *purchaseHandler) RecordPurchase(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req := new(domain.RecordPurchaseRequest)
	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedRecordPurchase, err)
	}

	res, err := h.purchaseService.RecordPurchase(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, purchaseErrorStatus(err), domain.MessageFailedRecordPurchase, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessRecordPurchase)
}

// purchaseErrorStatus maps the recorder's failure taxonomy onto HTTP statuses
// so clients can branch on "already owned" vs "payment already used".
func purchaseErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrCourseNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyPurchased), errors.Is(err, domain.ErrDuplicateTransaction):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidTxHash), errors.Is(err, domain.ErrInvalidPaidAmount):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
