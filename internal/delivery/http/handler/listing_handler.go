package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"fitwork/internal/delivery/http/dto"
	"fitwork/internal/delivery/http/middleware"
	"fitwork/internal/pkg/response"
	"fitwork/internal/usecase"
)

type ListingHandler struct {
	listings usecase.ListingUsecase
}

func NewListingHandler(listings usecase.ListingUsecase) *ListingHandler {
	return &ListingHandler{listings: listings}
}

func (h *ListingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/listings", h.List)
}

func (h *ListingHandler) List(c fiber.Ctx) error {
	limit := queryInt(c, "limit", 20)
	offset := queryInt(c, "offset", 0)

	out, err := h.listings.ListHiring(c.Context(), limit, offset)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			return middleware.NewAppError(fiber.StatusBadRequest, "invalid paging", err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.FromListings(out))
}
