package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Orders-api/internal/application/dto"
	"github.com/jhoicas/Orders-api/internal/domain"
	"github.com/jhoicas/Orders-api/pkg/logger"
)

const genericInternalDetail = "ocurrió un error interno, intente más tarde"

// errorWriter traduce errores de dominio al envelope JSON.
// Con debug=true las respuestas 500 incluyen el mensaje del error.
type errorWriter struct {
	debug bool
	log   *logger.Logger
}

func newErrorWriter(debug bool, log *logger.Logger) errorWriter {
	if log == nil {
		log = logger.Nop()
	}
	return errorWriter{debug: debug, log: log}
}

func (w errorWriter) write(c *fiber.Ctx, err error) error {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:     "datos inválidos",
			ErrorCode: "VALIDATION_ERROR",
			Detail:    vErr.Fields,
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "datos inválidos", ErrorCode: "VALIDATION_ERROR"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "token inválido", ErrorCode: "UNAUTHORIZED"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "acceso denegado al proyecto", ErrorCode: "FORBIDDEN"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "pedido no encontrado", ErrorCode: "NOT_FOUND"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "la solicitud con esta Idempotency-Key sigue en curso", ErrorCode: "CONFLICT"})
	}

	w.log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error interno")
	detail := any(genericInternalDetail)
	if w.debug {
		detail = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "error interno", ErrorCode: "INTERNAL", Detail: detail})
}
