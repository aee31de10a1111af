package handlers

import (
	"Go-Course-Market/domain"
	"Go-Course-Market/internal/api/presenters"
	"Go-Course-Market/pkg/leaderboard"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type (
	LeaderboardHandler interface {
		GetLeaderboard(c *fiber.Ctx) error
		RefreshLeaderboard(c *fiber.Ctx) error
	}

	leaderboardHandler struct {
		leaderboardService leaderboard.LeaderboardService
	}
)

func NewLeaderboardHandler(leaderboardService leaderboard.LeaderboardService) LeaderboardHandler {
	return &leaderboardHandler{
		leaderboardService: leaderboardService,
	}
}

func (h *leaderboardHandler) GetLeaderboard(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	res, err := h.leaderboardService.GetLeaderboard(c.Context(), limit, offset)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetLeaderboard, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetLeaderboard)
}

func (h *leaderboardHandler) RefreshLeaderboard(c *fiber.Ctx) error {
	res, err := h.leaderboardService.RefreshAll(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedRefreshLeaderboard, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRefreshLeaderboard)
}
