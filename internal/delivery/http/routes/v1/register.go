package v1

import (
	"github.com/gofiber/fiber/v3"

	"fitwork/internal/delivery/http/handler"
	"fitwork/internal/usecase"
)

// Deps carries the usecases the v1 surface exposes.
type Deps struct {
	Matches  usecase.MatchUsecase
	Villies  usecase.VillyUsecase
	Listings usecase.ListingUsecase
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	handler.NewListingHandler(deps.Listings).RegisterRoutes(r)
	handler.NewVillyHandler(deps.Matches, deps.Villies).RegisterRoutes(r)
}
