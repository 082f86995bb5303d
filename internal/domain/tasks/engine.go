// Package tasks implementa el calendario operativo: qué tareas aplican a un día,
// si una instancia está realizada y la agregación mensual que consume la vista de calendario.
//
// Todas las funciones son puras. Cualquier comparación de fechas pasa antes por NormalizeDate:
// "2025-1-5" y "2025-01-05" son el mismo día.
package tasks

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"

	"github.com/fruteria-olga/panel/internal/domain/entity"
)

// Occurrence una tarea en una fecha concreta del calendario.
type Occurrence struct {
	Task      entity.OperationalTask `json:"task"`
	Date      string                 `json:"date"`
	Completed bool                   `json:"completed"`
}

// Day celda del calendario mensual.
type Day struct {
	Date        string       `json:"date"`
	Occurrences []Occurrence `json:"occurrences"`
}

// civil fecha ya normalizada (YYYY-MM-DD) con su día del mes.
type civil struct {
	key string
	day int
}

// NormalizeDate rellena mes y día a dos dígitos: "2025-3-5" → "2025-03-05", "2025-3" → "2025-03".
// Acepta un sufijo de hora ("2025-3-5T10:00"). Si no se puede interpretar devuelve la entrada tal cual.
func NormalizeDate(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[:i]
	}
	parts := strings.Split(s, "-")
	if len(parts) < 2 || len(parts) > 3 || len(parts[0]) != 4 {
		return raw
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil || year <= 0 {
		return raw
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return raw
	}
	if len(parts) == 2 {
		return fmt.Sprintf("%04d-%02d", year, month)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil || day < 1 || day > 31 {
		return raw
	}
	return fmt.Sprintf("%04d-%02d-%02d", year, month, day)
}

// parseFull normaliza y exige fecha completa; fechas parciales o inválidas no coinciden con ningún día.
func parseFull(raw string) (civil, bool) {
	n := NormalizeDate(raw)
	if len(n) != len("2006-01-02") || n[4] != '-' || n[7] != '-' {
		return civil{}, false
	}
	day, err := strconv.Atoi(n[8:])
	if err != nil {
		return civil{}, false
	}
	return civil{key: n, day: day}, true
}

// IsFullDate indica si raw se interpreta como un día completo (YYYY-M-D).
func IsFullDate(raw string) bool {
	_, ok := parseFull(raw)
	return ok
}

// appliesOn regla de calificación de una tarea para un día.
func appliesOn(t entity.OperationalTask, target civil) bool {
	anchor, ok := parseFull(t.Date)
	if !ok {
		return false
	}
	if t.IsRecurring() {
		// una tarea constante nunca aplica antes de su fecha ancla
		return anchor.day == target.day && target.key >= anchor.key
	}
	return anchor.key == target.key
}

// TasksForDate devuelve las tareas que aplican al día date.
//   - unico: la fecha de la tarea es exactamente date.
//   - constante: mismo día del mes y date >= fecha ancla.
func TasksForDate(tasks []entity.OperationalTask, date string) []entity.OperationalTask {
	target, ok := parseFull(date)
	if !ok {
		return nil
	}
	var out []entity.OperationalTask
	for _, t := range tasks {
		if appliesOn(t, target) {
			out = append(out, t)
		}
	}
	return out
}

// IsCompletedOn indica si la instancia de la tarea en date está realizada.
// Para tareas únicas el estado es global y date no se usa.
func IsCompletedOn(t entity.OperationalTask, date string) bool {
	if !t.IsRecurring() {
		return t.Status == entity.TaskStatusRealizada
	}
	target, ok := parseFull(date)
	if !ok {
		return false
	}
	return containsDate(t.CompletedDates, target.key)
}

// ToggleCompletion alterna la instancia de date y devuelve la tarea resultante (no modifica t).
// Constante: agrega o quita date de CompletedDates. Única: alterna Status; date se ignora.
func ToggleCompletion(t entity.OperationalTask, date string) entity.OperationalTask {
	out := t
	out.CompletedDates = append([]string(nil), t.CompletedDates...)

	if !t.IsRecurring() {
		if t.Status == entity.TaskStatusRealizada {
			out.Status = entity.TaskStatusPendiente
		} else {
			out.Status = entity.TaskStatusRealizada
		}
		return out
	}

	target, ok := parseFull(date)
	if !ok {
		return out
	}
	if containsDate(out.CompletedDates, target.key) {
		kept := out.CompletedDates[:0]
		for _, d := range out.CompletedDates {
			if NormalizeDate(d) != target.key {
				kept = append(kept, d)
			}
		}
		out.CompletedDates = kept
		return out
	}
	out.CompletedDates = append(out.CompletedDates, target.key)
	return out
}

func containsDate(dates []string, key string) bool {
	for _, d := range dates {
		if NormalizeDate(d) == key {
			return true
		}
	}
	return false
}

// Month agrega las tareas por cada día del mes visible (28 a 31 días según el mes y año bisiesto).
// Devuelve nil si month no es válido.
func Month(tasks []entity.OperationalTask, year int, month time.Month) []Day {
	if month < time.January || month > time.December {
		return nil
	}
	ref := now.With(time.Date(year, month, 15, 12, 0, 0, 0, time.UTC))
	first := ref.BeginningOfMonth()
	last := ref.EndOfMonth()

	days := make([]Day, 0, 31)
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		day := Day{Date: key, Occurrences: []Occurrence{}}
		for _, t := range TasksForDate(tasks, key) {
			day.Occurrences = append(day.Occurrences, Occurrence{
				Task:      t,
				Date:      key,
				Completed: IsCompletedOn(t, key),
			})
		}
		days = append(days, day)
	}
	return days
}

// PendingInMonth lista plana (task, fecha) de las instancias aún pendientes del mes,
// en orden cronológico; dentro de un mismo día se respeta el orden de la lista de tareas.
func PendingInMonth(tasks []entity.OperationalTask, year int, month time.Month) []Occurrence {
	var out []Occurrence
	for _, day := range Month(tasks, year, month) {
		for _, occ := range day.Occurrences {
			if !occ.Completed {
				out = append(out, occ)
			}
		}
	}
	return out
}
