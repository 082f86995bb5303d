package tasks_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fruteria-olga/panel/internal/domain/entity"
	"github.com/fruteria-olga/panel/internal/domain/tasks"
)

func recurring(id, date string) entity.OperationalTask {
	return entity.OperationalTask{
		ID:        entity.ID(id),
		Date:      date,
		Type:      entity.TaskCrearBoletas,
		Status:    entity.TaskStatusPendiente,
		Frequency: entity.FrequencyConstante,
	}
}

func oneOff(id, date string) entity.OperationalTask {
	return entity.OperationalTask{
		ID:        entity.ID(id),
		Date:      date,
		Type:      entity.TaskPagosVencidos,
		Status:    entity.TaskStatusPendiente,
		Frequency: entity.FrequencyUnico,
	}
}

func TestNormalizeDate(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"2025-3-5", "2025-03-05"},
		{"2025-03-05", "2025-03-05"},
		{"2025-1", "2025-01"},
		{"2025-12-31T10:30:00Z", "2025-12-31"},
		{" 2025-7-9 ", "2025-07-09"},
		{"", ""},
		{"hola", "hola"},
		{"2025-13-01", "2025-13-01"},
		{"25-1-5", "25-1-5"},
		{"2025-02-x", "2025-02-x"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := tasks.NormalizeDate(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, got, tasks.NormalizeDate(got), "normalizar debe ser idempotente")
		})
	}
	assert.Equal(t, tasks.NormalizeDate("2025-03-05"), tasks.NormalizeDate("2025-3-5"))
}

func TestTasksForDate_Constante(t *testing.T) {
	list := []entity.OperationalTask{recurring("t1", "2025-01-15")}

	assert.Len(t, tasks.TasksForDate(list, "2025-02-15"), 1)
	assert.Len(t, tasks.TasksForDate(list, "2025-03-15"), 1)
	assert.Len(t, tasks.TasksForDate(list, "2025-01-15"), 1, "aplica el mismo día del ancla")
	assert.Empty(t, tasks.TasksForDate(list, "2024-12-15"), "antes del ancla no aplica")
	assert.Empty(t, tasks.TasksForDate(list, "2025-02-16"), "otro día del mes no aplica")
}

func TestTasksForDate_Unico(t *testing.T) {
	list := []entity.OperationalTask{oneOff("t1", "2025-1-5")}

	assert.Len(t, tasks.TasksForDate(list, "2025-01-05"), 1, "fechas sin relleno se normalizan")
	assert.Empty(t, tasks.TasksForDate(list, "2025-02-05"))
}

func TestTasksForDate_FechasInvalidas(t *testing.T) {
	list := []entity.OperationalTask{
		recurring("bad", "sin-fecha"),
		oneOff("empty", ""),
		recurring("ok", "2025-01-10"),
	}
	got := tasks.TasksForDate(list, "2025-03-10")
	require.Len(t, got, 1)
	assert.Equal(t, entity.ID("ok"), got[0].ID)

	assert.Empty(t, tasks.TasksForDate(list, "2025-03"), "una fecha parcial no coincide con ningún día")
	assert.Empty(t, tasks.TasksForDate(nil, "2025-03-10"))
}

func TestFrecuenciaVaciaEsUnico(t *testing.T) {
	task := oneOff("t1", "2025-04-10")
	task.Frequency = ""
	assert.Len(t, tasks.TasksForDate([]entity.OperationalTask{task}, "2025-04-10"), 1)
	assert.Empty(t, tasks.TasksForDate([]entity.OperationalTask{task}, "2025-05-10"))
}

func TestToggle_UnicoIgnoraFecha(t *testing.T) {
	task := oneOff("t1", "2025-04-10")

	toggled := tasks.ToggleCompletion(task, "2030-01-01")
	assert.Equal(t, entity.TaskStatusRealizada, toggled.Status)
	assert.Equal(t, entity.TaskStatusPendiente, task.Status, "la entrada no se modifica")

	for _, d := range []string{"2025-04-10", "1999-01-01", ""} {
		assert.True(t, tasks.IsCompletedOn(toggled, d), "el estado global se ve desde cualquier fecha")
	}

	back := tasks.ToggleCompletion(toggled, "2025-04-10")
	assert.Equal(t, entity.TaskStatusPendiente, back.Status)
}

func TestToggle_ConstantePorFecha(t *testing.T) {
	task := recurring("t1", "2025-01-15")

	marzo := tasks.ToggleCompletion(task, "2025-3-15")
	assert.Equal(t, []string{"2025-03-15"}, marzo.CompletedDates)
	assert.True(t, tasks.IsCompletedOn(marzo, "2025-03-15"))
	assert.False(t, tasks.IsCompletedOn(marzo, "2025-04-15"), "abril no se ve afectado")
	assert.Equal(t, entity.TaskStatusPendiente, marzo.Status, "status no se usa en constantes")
	assert.Empty(t, task.CompletedDates, "la entrada no se modifica")

	otraVez := tasks.ToggleCompletion(marzo, "2025-03-15")
	assert.Empty(t, otraVez.CompletedDates)
	assert.False(t, tasks.IsCompletedOn(otraVez, "2025-03-15"))
}

func TestToggle_ConstanteFechaInvalida(t *testing.T) {
	task := recurring("t1", "2025-01-15")
	assert.Equal(t, task, tasks.ToggleCompletion(task, "no-es-fecha"))
	assert.False(t, tasks.IsCompletedOn(task, "no-es-fecha"))
}

func TestIsCompletedOn_FechasGuardadasSinRelleno(t *testing.T) {
	task := recurring("t1", "2025-01-05")
	task.CompletedDates = []string{"2025-2-5"}
	assert.True(t, tasks.IsCompletedOn(task, "2025-02-05"))

	untoggled := tasks.ToggleCompletion(task, "2025-02-05")
	assert.Empty(t, untoggled.CompletedDates)
}

func TestMonth_LimitesDeMes(t *testing.T) {
	cases := []struct {
		year  int
		month time.Month
		days  int
	}{
		{2025, time.February, 28},
		{2024, time.February, 29},
		{2025, time.April, 30},
		{2025, time.December, 31},
	}
	for _, tc := range cases {
		days := tasks.Month(nil, tc.year, tc.month)
		require.Len(t, days, tc.days)
		assert.Equal(t, 1, mustDay(t, days[0].Date))
		assert.Equal(t, tc.days, mustDay(t, days[len(days)-1].Date))
	}
	assert.Nil(t, tasks.Month(nil, 2025, 13))
}

func TestMonth_ConstanteDia31(t *testing.T) {
	list := []entity.OperationalTask{recurring("t31", "2025-01-31")}
	var total int
	for _, d := range tasks.Month(list, 2025, time.February) {
		total += len(d.Occurrences)
	}
	assert.Zero(t, total, "febrero no tiene día 31")
	assert.Len(t, tasks.PendingInMonth(list, 2025, time.March), 1)
}

func TestPendingInMonth_OrdenYFiltro(t *testing.T) {
	a := recurring("a", "2025-01-20")
	b := oneOff("b", "2025-03-02")
	c := recurring("c", "2025-01-10")
	c = tasks.ToggleCompletion(c, "2025-03-10")
	d := oneOff("d", "2025-03-02")
	d.Status = entity.TaskStatusRealizada

	got := tasks.PendingInMonth([]entity.OperationalTask{a, b, c, d}, 2025, time.March)
	require.Len(t, got, 2)
	assert.Equal(t, "2025-03-02", got[0].Date)
	assert.Equal(t, entity.ID("b"), got[0].Task.ID)
	assert.Equal(t, "2025-03-20", got[1].Date)
	assert.Equal(t, entity.ID("a"), got[1].Task.ID)
}

// Escenario: tarea constante anclada el 2025-01-10 vista en el calendario de marzo.
func TestEscenario_CalendarioMarzo(t *testing.T) {
	task := recurring("t1", "2025-01-10")
	list := []entity.OperationalTask{task}

	got := tasks.TasksForDate(list, "2025-03-10")
	require.Len(t, got, 1)

	done := tasks.ToggleCompletion(got[0], "2025-03-10")
	assert.Contains(t, done.CompletedDates, "2025-03-10")

	list = []entity.OperationalTask{done}
	abril := tasks.TasksForDate(list, "2025-04-10")
	require.Len(t, abril, 1)
	assert.False(t, tasks.IsCompletedOn(abril[0], "2025-04-10"), "abril sigue pendiente")
}

func mustDay(t *testing.T, date string) int {
	t.Helper()
	d, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	return d.Day()
}
