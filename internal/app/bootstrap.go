package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"fitwork/internal/config"
	"fitwork/internal/delivery/http/middleware"
	"fitwork/internal/delivery/http/routes"
	v1 "fitwork/internal/delivery/http/routes/v1"
	"fitwork/internal/infrastructure/cache"
	"fitwork/internal/notify"
	"fitwork/internal/repository"
	"fitwork/internal/scheduler"
	"fitwork/internal/usecase"
)

// App bundles the HTTP surface and the daily scheduler built from one
// container.
type App struct {
	Fiber     *fiber.App
	Scheduler *scheduler.Scheduler
	Runner    *scheduler.Runner
}

func Bootstrap(c *Container) (*App, error) {
	cfg := c.Config

	loc, err := time.LoadLocation(cfg.Matching.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Matching.Timezone, err)
	}
	hour, minute, err := config.ParseDailyAt(cfg.Matching.DailyAt)
	if err != nil {
		return nil, err
	}

	listings := repository.NewPostgresListingRepository(c.DB)
	profiles := repository.NewPostgresProfileRepository(c.DB)
	villies := repository.NewPostgresVillyRepository(c.DB)

	notifier := notify.NewLogNotifier(c.Log)
	quota := cache.NewMatchQuota(c.Redis, cfg.Matching.ManualDailyCap, loc)

	matchUC := usecase.NewMatchUsecase(listings, profiles, villies, notifier, quota, c.Log)

	runner := scheduler.NewRunner(profiles, matchUC, cfg.Matching.SeekerPageSize, cfg.Matching.Workers, c.Log)
	sched := scheduler.New(runner, c.Redis, loc, hour, minute, c.Log)

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	f.Use(middleware.NewErrorMiddleware(c.Log).Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Log).Middleware())

	routes.NewRegistry(v1.Deps{
		Matches:  matchUC,
		Villies:  usecase.NewVillyUsecase(villies),
		Listings: usecase.NewListingUsecase(listings),
	}).Register(f)

	return &App{Fiber: f, Scheduler: sched, Runner: runner}, nil
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
