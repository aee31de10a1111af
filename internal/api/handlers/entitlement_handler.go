package handlers

import (
	"Go-Course-Market/domain"
	"Go-Course-Market/internal/api/presenters"
	"Go-Course-Market/pkg/entitlement"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type (
	EntitlementHandler interface {
		CheckEntitlement(c *fiber.Ctx) error
	}

	entitlementHandler struct {
		entitlementService entitlement.EntitlementService
	}
)

func NewEntitlementHandler(entitlementService entitlement.EntitlementService) EntitlementHandler {
	return &entitlementHandler{
		entitlementService: entitlementService,
	}
}

func (h *entitlementHandler) CheckEntitlement(c *fiber.Ctx) error {
	viewerID := ""
	if id, ok := c.Locals("user_id").(string); ok {
		viewerID = id
	}

	req := domain.EntitlementRequest{
		CourseID:      c.Params("id"),
		ViewerID:      viewerID,
		ViewerAddress: c.Query("address"),
	}

	res, err := h.entitlementService.CheckAccess(c.Context(), req)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrCourseNotFound) {
			status = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedCheckEntitlement, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessCheckEntitlement)
}
