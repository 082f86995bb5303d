package http

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fruteria-olga/panel/internal/application/store"
	"github.com/fruteria-olga/panel/internal/domain/entity"
	"github.com/fruteria-olga/panel/internal/domain/tasks"
	"github.com/fruteria-olga/panel/internal/infrastructure/pdf"
)

// MovementHandler ventas y compras. Ninguna se borra: se anulan.
type MovementHandler struct {
	store    *store.Store
	pdf      *pdf.MarotoPDFGenerator
	business string
}

// NewMovementHandler construye el handler. business es el nombre impreso en el reporte PDF.
func NewMovementHandler(s *store.Store, gen *pdf.MarotoPDFGenerator, business string) *MovementHandler {
	return &MovementHandler{store: s, pdf: gen, business: business}
}

func validItems(n int, check func(i int) (entity.ID, int)) string {
	if n == 0 {
		return "items no puede estar vacío"
	}
	for i := range n {
		id, qty := check(i)
		if id.IsZero() {
			return fmt.Sprintf("items[%d]: productId es requerido", i)
		}
		if qty <= 0 {
			return fmt.Sprintf("items[%d]: quantity debe ser mayor a cero", i)
		}
	}
	return ""
}

func validSale(s entity.Sale) string {
	if strings.TrimSpace(s.Date) == "" {
		return "date es requerido"
	}
	return validItems(len(s.Items), func(i int) (entity.ID, int) { return s.Items[i].ProductID, s.Items[i].Quantity })
}

// ListSales ventas, opcionalmente filtradas por ?from=&to= (YYYY-MM-DD).
//
// @Summary      Listar ventas
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to  query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {array}   entity.Sale
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sales [get]
func (h *MovementHandler) ListSales(c *fiber.Ctx) error {
	return c.JSON(h.store.SalesBetween(c.Query("from"), c.Query("to")))
}

// CreateSale registra la venta y descuenta stock.
//
// @Summary      Registrar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Sale  true  "Venta con sus ítems"
// @Success      201  {object}  entity.Sale
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *MovementHandler) CreateSale(c *fiber.Ctx) error {
	var in entity.Sale
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msg := validSale(in); msg != "" {
		return validation(c, msg)
	}
	return c.Status(fiber.StatusCreated).JSON(h.store.AddSale(c.UserContext(), in))
}

// UpdateSale edita datos de la venta; no toca el stock.
//
// @Summary      Actualizar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Param        body  body  entity.Sale  true  "Venta con sus ítems"
// @Success      200  {object}  entity.Sale
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [put]
func (h *MovementHandler) UpdateSale(c *fiber.Ctx) error {
	var in entity.Sale
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msg := validSale(in); msg != "" {
		return validation(c, msg)
	}
	in.ID = pathID(c)
	out, err := h.store.UpdateSale(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// CancelSale anula la venta. El stock descontado no se repone.
//
// @Summary      Anular venta
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Success      200  {object}  entity.Sale
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/cancel [post]
func (h *MovementHandler) CancelSale(c *fiber.Ctx) error {
	out, err := h.store.CancelSale(c.UserContext(), pathID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesReport PDF de las ventas del rango ?from=&to=.
//
// @Summary      Reporte PDF de ventas
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to  query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {file}    binary
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/sales/report.pdf [get]
func (h *MovementHandler) SalesReport(c *fiber.Ctx) error {
	from, to := tasks.NormalizeDate(c.Query("from")), tasks.NormalizeDate(c.Query("to"))
	doc, err := h.pdf.GenerateSalesReport(c.UserContext(), pdf.SalesReport{
		BusinessName: h.business,
		From:         from,
		To:           to,
		Sales:        h.store.SalesBetween(from, to),
	})
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+reportFilename(from, to)+`"`)
	return c.Send(doc)
}

func reportFilename(from, to string) string {
	name := "reporte-ventas"
	if from != "" {
		name += "-" + from
	}
	if to != "" {
		name += "-" + to
	}
	return name + ".pdf"
}

// ListPurchases godoc
// @Summary      Listar compras
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   entity.Purchase
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/purchases [get]
func (h *MovementHandler) ListPurchases(c *fiber.Ctx) error {
	return c.JSON(h.store.Purchases())
}

// CreatePurchase registra la compra y suma stock.
//
// @Summary      Registrar compra
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Purchase  true  "Compra con sus ítems"
// @Success      201  {object}  entity.Purchase
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *MovementHandler) CreatePurchase(c *fiber.Ctx) error {
	var in entity.Purchase
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Date) == "" {
		return validation(c, "date es requerido")
	}
	if msg := validItems(len(in.Items), func(i int) (entity.ID, int) { return in.Items[i].ProductID, in.Items[i].Quantity }); msg != "" {
		return validation(c, msg)
	}
	return c.Status(fiber.StatusCreated).JSON(h.store.AddPurchase(c.UserContext(), in))
}

// CancelPurchase anula la compra sin retirar el stock ingresado.
//
// @Summary      Anular compra
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Success      200  {object}  entity.Purchase
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/cancel [post]
func (h *MovementHandler) CancelPurchase(c *fiber.Ctx) error {
	out, err := h.store.CancelPurchase(c.UserContext(), pathID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
