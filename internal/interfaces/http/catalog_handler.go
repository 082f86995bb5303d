package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/fruteria-olga/panel/internal/application/store"
	"github.com/fruteria-olga/panel/internal/domain/entity"
)

// CatalogHandler productos, clientes y proveedores.
type CatalogHandler struct {
	store *store.Store
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(s *store.Store) *CatalogHandler {
	return &CatalogHandler{store: s}
}

func pathID(c *fiber.Ctx) entity.ID {
	return entity.IDFrom(c.Params("id"))
}

// ── Productos ────────────────────────────────────────────────────────────────

func validProduct(p entity.Product) string {
	if strings.TrimSpace(p.Name) == "" {
		return "name es requerido"
	}
	if p.Unit != "" && !entity.ValidUnit(p.Unit) {
		return "unit debe ser Kilos, Unidad o Caja"
	}
	if p.Price.IsNegative() {
		return "price no puede ser negativo"
	}
	return ""
}

// ListProducts godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   entity.Product
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	return c.JSON(h.store.Products())
}

// SearchProducts busca por nombre o categoría sin distinguir tildes (?q=).
//
// @Summary      Buscar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        q  query  string  false  "Nombre o categoría"
// @Success      200  {array}   entity.Product
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/products/search [get]
func (h *CatalogHandler) SearchProducts(c *fiber.Ctx) error {
	return c.JSON(h.store.FindProducts(c.Query("q")))
}

// CreateProduct godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Product  true  "Datos del producto"
// @Success      201  {object}  entity.Product
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *CatalogHandler) CreateProduct(c *fiber.Ctx) error {
	var in entity.Product
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msg := validProduct(in); msg != "" {
		return validation(c, msg)
	}
	if in.Unit == "" {
		in.Unit = entity.UnitKilos
	}
	return c.Status(fiber.StatusCreated).JSON(h.store.AddProduct(c.UserContext(), in))
}

// UpdateProduct godoc
// @Summary      Actualizar producto
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Param        body  body  entity.Product  true  "Datos del producto"
// @Success      200  {object}  entity.Product
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *CatalogHandler) UpdateProduct(c *fiber.Ctx) error {
	var in entity.Product
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msg := validProduct(in); msg != "" {
		return validation(c, msg)
	}
	in.ID = pathID(c)
	if err := h.store.UpdateProduct(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(in)
}

// DeleteProduct godoc
// @Summary      Eliminar producto
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *CatalogHandler) DeleteProduct(c *fiber.Ctx) error {
	if err := h.store.DeleteProduct(c.UserContext(), pathID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Clientes ─────────────────────────────────────────────────────────────────

func validClient(cl entity.Client) string {
	if strings.TrimSpace(cl.Name) == "" {
		return "name es requerido"
	}
	switch cl.DocType {
	case "", entity.DocTypeDNI, entity.DocTypeRUC:
		return ""
	}
	return "docType debe ser DNI o RUC"
}

// ListClients godoc
// @Summary      Listar clientes
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   entity.Client
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/clients [get]
func (h *CatalogHandler) ListClients(c *fiber.Ctx) error {
	return c.JSON(h.store.Clients())
}

// SuggestClients autocompletado por número de documento (?doc=), máximo cinco.
//
// @Summary      Autocompletar clientes por documento
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        doc  query  string  false  "Prefijo del documento"
// @Success      200  {array}   entity.Client
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/clients/suggest [get]
func (h *CatalogHandler) SuggestClients(c *fiber.Ctx) error {
	return c.JSON(h.store.FindClientsByDoc(c.Query("doc")))
}

// CreateClient godoc
// @Summary      Crear cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Client  true  "Datos del cliente"
// @Success      201  {object}  entity.Client
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/clients [post]
func (h *CatalogHandler) CreateClient(c *fiber.Ctx) error {
	var in entity.Client
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msg := validClient(in); msg != "" {
		return validation(c, msg)
	}
	return c.Status(fiber.StatusCreated).JSON(h.store.AddClient(c.UserContext(), in))
}

// UpdateClient godoc
// @Summary      Actualizar cliente
// @Tags         clients
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Param        body  body  entity.Client  true  "Datos del cliente"
// @Success      200  {object}  entity.Client
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [put]
func (h *CatalogHandler) UpdateClient(c *fiber.Ctx) error {
	var in entity.Client
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msg := validClient(in); msg != "" {
		return validation(c, msg)
	}
	in.ID = pathID(c)
	if err := h.store.UpdateClient(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(in)
}

// DeleteClient godoc
// @Summary      Eliminar cliente
// @Tags         clients
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clients/{id} [delete]
func (h *CatalogHandler) DeleteClient(c *fiber.Ctx) error {
	if err := h.store.DeleteClient(c.UserContext(), pathID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Proveedores ──────────────────────────────────────────────────────────────

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   entity.Supplier
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/suppliers [get]
func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	return c.JSON(h.store.Suppliers())
}

// CreateSupplier godoc
// @Summary      Crear proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.Supplier  true  "Datos del proveedor"
// @Success      201  {object}  entity.Supplier
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/suppliers [post]
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var in entity.Supplier
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Name) == "" {
		return validation(c, "name es requerido")
	}
	return c.Status(fiber.StatusCreated).JSON(h.store.AddSupplier(c.UserContext(), in))
}

// UpdateSupplier godoc
// @Summary      Actualizar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Param        body  body  entity.Supplier  true  "Datos del proveedor"
// @Success      200  {object}  entity.Supplier
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [put]
func (h *CatalogHandler) UpdateSupplier(c *fiber.Ctx) error {
	var in entity.Supplier
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if strings.TrimSpace(in.Name) == "" {
		return validation(c, "name es requerido")
	}
	in.ID = pathID(c)
	if err := h.store.UpdateSupplier(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(in)
}

// DeleteSupplier godoc
// @Summary      Eliminar proveedor
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/suppliers/{id} [delete]
func (h *CatalogHandler) DeleteSupplier(c *fiber.Ctx) error {
	if err := h.store.DeleteSupplier(c.UserContext(), pathID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
