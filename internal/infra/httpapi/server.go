package httpapi

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	walog "go.mau.fi/whatsmeow/util/log"

	"github.com/fardannozami/sweat-tracker/internal/domain"
)

type StreakReader interface {
	Execute(ctx context.Context, userID string) (*domain.MemberStreak, error)
}

type StandingsReader interface {
	Standings(ctx context.Context) ([]*domain.MemberStreak, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewApp builds the read-only HTTP API. Streaks are recomputed on every request.
func NewApp(streaks StreakReader, standings StandingsReader, logger walog.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})
	app.Use(loggingMiddleware(logger))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/members/:id/streak", func(c *fiber.Ctx) error {
		ms, err := streaks.Execute(c.UserContext(), c.Params("id"))
		if errors.Is(err, domain.ErrMemberNotFound) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		if err != nil {
			return err
		}
		return c.JSON(ms)
	})

	app.Get("/leaderboard", func(c *fiber.Ctx) error {
		list, err := standings.Standings(c.UserContext())
		if err != nil {
			return err
		}
		if list == nil {
			list = []*domain.MemberStreak{}
		}
		return c.JSON(fiber.Map{"members": list})
	})

	return app
}

func errorHandler(logger walog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		} else {
			logger.Errorf("%s %s failed: %v", c.Method(), c.Path(), err)
		}
		return c.Status(code).JSON(errorResponse{Error: msg})
	}
}

func loggingMiddleware(logger walog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		logger.Debugf("%s %s %s %d %v",
			c.IP(),
			c.Method(),
			c.Path(),
			c.Response().StatusCode(),
			time.Since(start),
		)
		return err
	}
}
