package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/fruteria-olga/panel/internal/application/store"
	"github.com/fruteria-olga/panel/internal/domain/entity"
	"github.com/fruteria-olga/panel/internal/domain/tasks"
)

// TaskHandler calendario operativo.
type TaskHandler struct {
	store *store.Store
	now   func() time.Time
}

// NewTaskHandler construye el handler.
func NewTaskHandler(s *store.Store) *TaskHandler {
	return &TaskHandler{store: s, now: time.Now}
}

func validTask(t entity.OperationalTask) string {
	if strings.TrimSpace(t.Date) == "" || strings.TrimSpace(t.Type) == "" {
		return "date y type son requeridos"
	}
	switch t.Frequency {
	case "", entity.FrequencyUnico, entity.FrequencyConstante:
	default:
		return "frequency debe ser unico o constante"
	}
	switch t.Status {
	case "", entity.TaskStatusPendiente, entity.TaskStatusRealizada:
		return ""
	}
	return "status debe ser pendiente o realizada"
}

// yearMonth lee ?year=&month=; por defecto el mes en curso.
func (h *TaskHandler) yearMonth(c *fiber.Ctx) (int, time.Month, bool) {
	now := h.now()
	year := c.QueryInt("year", now.Year())
	month := c.QueryInt("month", int(now.Month()))
	if month < 1 || month > 12 || year < 1 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}

// List godoc
// @Summary      Listar tareas
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   entity.OperationalTask
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	return c.JSON(h.store.Tasks())
}

// Create godoc
// @Summary      Crear tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  entity.OperationalTask  true  "Datos de la tarea"
// @Success      201  {object}  entity.OperationalTask
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var in entity.OperationalTask
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msg := validTask(in); msg != "" {
		return validation(c, msg)
	}
	return c.Status(fiber.StatusCreated).JSON(h.store.AddTask(c.UserContext(), in))
}

// Update godoc
// @Summary      Actualizar tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Param        body  body  entity.OperationalTask  true  "Datos de la tarea"
// @Success      200  {object}  entity.OperationalTask
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	var in entity.OperationalTask
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if msg := validTask(in); msg != "" {
		return validation(c, msg)
	}
	in.ID = pathID(c)
	out, err := h.store.UpdateTask(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar tarea
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Success      204  "sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	if err := h.store.DeleteTask(c.UserContext(), pathID(c)); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Toggle marca o desmarca la instancia de ?date=. En tareas de único uso la fecha se ignora.
//
// @Summary      Marcar o desmarcar tarea
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del registro"
// @Param        date  query  string  false  "Día (YYYY-MM-DD), hoy por defecto"
// @Success      200  {object}  entity.OperationalTask
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tasks/{id}/toggle [post]
func (h *TaskHandler) Toggle(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		date = h.now().Format("2006-01-02")
	}
	out, err := h.store.ToggleTask(c.UserContext(), pathID(c), date)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Calendar días del mes con sus tareas.
//
// @Summary      Calendario mensual
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Año"
// @Param        month  query  int  false  "Mes 1-12"
// @Success      200  {array}   tasks.Day
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/tasks/calendar [get]
func (h *TaskHandler) Calendar(c *fiber.Ctx) error {
	year, month, ok := h.yearMonth(c)
	if !ok {
		return validation(c, "year o month fuera de rango")
	}
	return c.JSON(h.store.TaskCalendar(year, month))
}

// Pending instancias sin realizar del mes.
//
// @Summary      Tareas pendientes del mes
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        year  query  int  false  "Año"
// @Param        month  query  int  false  "Mes 1-12"
// @Success      200  {array}   tasks.Occurrence
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/tasks/pending [get]
func (h *TaskHandler) Pending(c *fiber.Ctx) error {
	year, month, ok := h.yearMonth(c)
	if !ok {
		return validation(c, "year o month fuera de rango")
	}
	out := h.store.PendingTasks(year, month)
	if out == nil {
		out = []tasks.Occurrence{}
	}
	return c.JSON(out)
}

// On tareas que aplican en ?date= (hoy por defecto).
//
// @Summary      Tareas de un día
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        date  query  string  false  "Día (YYYY-MM-DD), hoy por defecto"
// @Success      200  {array}   entity.OperationalTask
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/tasks/on [get]
func (h *TaskHandler) On(c *fiber.Ctx) error {
	date := c.Query("date")
	if date == "" {
		date = h.now().Format("2006-01-02")
	}
	out := h.store.TasksOn(date)
	if out == nil {
		out = []entity.OperationalTask{}
	}
	return c.JSON(out)
}
