package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Orders-api/internal/application/dto"
	"github.com/jhoicas/Orders-api/internal/application/orders"
	"github.com/jhoicas/Orders-api/internal/domain"
	"github.com/jhoicas/Orders-api/pkg/logger"
)

// HeaderIdempotencyKey cabecera opcional para reintentos seguros de POST /api/orders/.
const HeaderIdempotencyKey = "Idempotency-Key"

// OrderHandler maneja las peticiones HTTP de pedidos (protegido).
type OrderHandler struct {
	create     *orders.CreateOrderUseCase
	query      *orders.QueryOrdersUseCase
	pickTicket *orders.PickTicketUseCase
	errs       errorWriter
}

// NewOrderHandler construye el handler. debug expone el detalle de errores 500.
func NewOrderHandler(
	create *orders.CreateOrderUseCase,
	query *orders.QueryOrdersUseCase,
	pickTicket *orders.PickTicketUseCase,
	debug bool,
	log *logger.Logger,
) *OrderHandler {
	return &OrderHandler{
		create:     create,
		query:      query,
		pickTicket: pickTicket,
		errs:       newErrorWriter(debug, log),
	}
}

// Create registra un pedido con sus líneas.
// @Summary  Crear pedido
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    Idempotency-Key header string false "clave de reintento"
// @Param    body body dto.CreateOrderRequest true "pedido"
// @Success  201 {object} dto.OrderResponse
// @Failure  400 {object} dto.ErrorResponse
// @Failure  401 {object} dto.ErrorResponse
// @Failure  403 {object} dto.ErrorResponse
// @Failure  409 {object} dto.ErrorResponse
// @Router   /api/orders/ [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	userID := GetUserID(c)
	projectID := GetProjectID(c)
	if userID == "" || projectID == "" {
		return h.errs.write(c, domain.ErrUnauthorized)
	}

	var req dto.CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "cuerpo inválido", ErrorCode: "INVALID_BODY"})
	}
	// El proyecto del body debe ser el del usuario antes de cualquier otra validación.
	if req.Project != "" && req.Project != projectID {
		return h.errs.write(c, domain.ErrForbidden)
	}
	if err := validateStruct(&req); err != nil {
		return h.errs.write(c, err)
	}

	res, err := h.create.Create(c.UserContext(), orders.CreateOrderInput{
		UserID:         userID,
		ProjectID:      projectID,
		IdempotencyKey: c.Get(HeaderIdempotencyKey),
		Request:        req,
	})
	if err != nil {
		return h.errs.write(c, err)
	}
	if res.Replayed {
		return c.Status(fiber.StatusOK).JSON(res.Order)
	}
	return c.Status(fiber.StatusCreated).JSON(res.Order)
}

// List lista los pedidos visibles para el cliente del proyecto del usuario.
// @Summary  Listar pedidos
// @Tags     orders
// @Produce  json
// @Success  200 {object} dto.OrderListResponse
// @Router   /api/orders/ [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	projectID := GetProjectID(c)
	if projectID == "" {
		return h.errs.write(c, domain.ErrUnauthorized)
	}
	list, err := h.query.List(c.UserContext(), projectID)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(list)
}

// GetByID obtiene un pedido con sus líneas.
// GET /api/orders/:id
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	projectID := GetProjectID(c)
	if projectID == "" {
		return h.errs.write(c, domain.ErrUnauthorized)
	}
	id, err := orderIDParam(c)
	if err != nil {
		return h.errs.write(c, err)
	}
	o, err := h.query.Get(c.UserContext(), projectID, id)
	if err != nil {
		return h.errs.write(c, err)
	}
	return c.JSON(o)
}

// PickTicket descarga la hoja de alistamiento del pedido en PDF.
// GET /api/orders/:id/pick-ticket
func (h *OrderHandler) PickTicket(c *fiber.Ctx) error {
	projectID := GetProjectID(c)
	if projectID == "" {
		return h.errs.write(c, domain.ErrUnauthorized)
	}
	id, err := orderIDParam(c)
	if err != nil {
		return h.errs.write(c, err)
	}
	pdf, filename, err := h.pickTicket.Download(c.UserContext(), projectID, id)
	if err != nil {
		return h.errs.write(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdf)
}

// orderIDParam devuelve :id; un id que no es UUID no puede existir y se responde 404.
func orderIDParam(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if err := validate.Var(id, "required,uuid"); err != nil {
		return "", domain.ErrNotFound
	}
	return id, nil
}
