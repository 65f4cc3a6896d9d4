package httpapi

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/api-dashboard/internal/dashboard"
)

type statusMapping struct {
	target error
	status int
}

// statusMapper maps pipeline errors to HTTP statuses. The first matching entry wins.
type statusMapper struct {
	mappings      []statusMapping
	defaultStatus int
}

func newStatusMapper() *statusMapper {
	return &statusMapper{defaultStatus: fiber.StatusInternalServerError}
}

func (m *statusMapper) with(target error, status int) *statusMapper {
	m.mappings = append(m.mappings, statusMapping{target: target, status: status})
	return m
}

func (m *statusMapper) status(err error) int {
	if err == nil {
		return fiber.StatusOK
	}
	for _, mapping := range m.mappings {
		if errors.Is(err, mapping.target) {
			return mapping.status
		}
	}
	return m.defaultStatus
}

// pipelineStatus is checked in order: a deadline wrapped in a network error is a gateway timeout.
var pipelineStatus = newStatusMapper().
	with(context.DeadlineExceeded, fiber.StatusGatewayTimeout).
	with(dashboard.ErrStale, fiber.StatusConflict).
	with(dashboard.ErrInput, fiber.StatusBadRequest).
	with(dashboard.ErrNotFound, fiber.StatusNotFound).
	with(dashboard.ErrProvider, fiber.StatusBadGateway).
	with(dashboard.ErrDecode, fiber.StatusBadGateway).
	with(dashboard.ErrNetwork, fiber.StatusServiceUnavailable)

// ErrorHandler renders errors that escape handlers as JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
