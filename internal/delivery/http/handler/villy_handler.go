package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"fitwork/internal/delivery/http/dto"
	"fitwork/internal/delivery/http/middleware"
	"fitwork/internal/pkg/response"
	"fitwork/internal/usecase"
)

type VillyHandler struct {
	matches usecase.MatchUsecase
	villies usecase.VillyUsecase
}

func NewVillyHandler(matches usecase.MatchUsecase, villies usecase.VillyUsecase) *VillyHandler {
	return &VillyHandler{matches: matches, villies: villies}
}

func (h *VillyHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	grp := r.Group("/seekers")
	grp.Post("/:seeker_id/villy", h.RequestNewMatch)
	grp.Get("/:seeker_id/villies", h.History)
}

// RequestNewMatch runs the matching cascade on demand for one seeker. Misses
// and the daily cap come back as distinct client errors; a store failure is a
// retryable 500.
func (h *VillyHandler) RequestNewMatch(c fiber.Ctx) error {
	seekerID, err := uuid.Parse(c.Params("seeker_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid seeker id", err)
	}

	found, err := h.matches.RequestNewMatch(c.Context(), seekerID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNoMatch):
			return middleware.NewAppError(fiber.StatusNotFound, "no suitable listing today", err)
		case errors.Is(err, usecase.ErrQuotaExceeded):
			return middleware.NewAppError(fiber.StatusTooManyRequests, "daily match limit reached", err)
		case errors.Is(err, usecase.ErrInvalidInput):
			return middleware.NewAppError(fiber.StatusBadRequest, "invalid seeker id", err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
		}
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromListing(*found))
}

func (h *VillyHandler) History(c fiber.Ctx) error {
	seekerID, err := uuid.Parse(c.Params("seeker_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid seeker id", err)
	}

	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	recs, err := h.villies.History(c.Context(), seekerID, limit, offset)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "invalid paging", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromVillies(recs))
}

func queryInt(c fiber.Ctx, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
