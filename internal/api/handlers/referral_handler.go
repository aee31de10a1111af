package handlers

import (
	"Go-Course-Market/domain"
	"Go-Course-Market/internal/api/presenters"
	"Go-Course-Market/pkg/referral"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type (
	ReferralHandler interface {
		GetStats(c *fiber.Ctx) error
	}

	referralHandler struct {
		referralService referral.ReferralService
	}
)

func NewReferralHandler(referralService referral.ReferralService) ReferralHandler {
	return &referralHandler{
		referralService: referralService,
	}
}

func (h *referralHandler) GetStats(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReferralStats, domain.ErrParseUUID)
	}

	res, err := h.referralService.GetStats(c.Context(), userUUID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetReferralStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetReferralStats)
}
