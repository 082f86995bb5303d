package store

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/fruteria-olga/panel/internal/domain/entity"
	"github.com/fruteria-olga/panel/internal/domain/tasks"
)

// maxClientSuggestions sugerencias del autocompletado por número de documento.
const maxClientSuggestions = 5

// FindProducts filtra productos por nombre o categoría, sin distinguir mayúsculas ni tildes
// ("platano" encuentra "Plátano"). Un término vacío devuelve todos.
func (s *Store) FindProducts(term string) []entity.Product {
	needle := fold(term)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Product, 0)
	for _, p := range s.state.Products {
		if needle == "" || strings.Contains(fold(p.Name), needle) || strings.Contains(fold(p.Category), needle) {
			out = append(out, p)
		}
	}
	return out
}

// FindClientsByDoc clientes cuyo número de documento contiene doc (máximo cinco).
func (s *Store) FindClientsByDoc(doc string) []entity.Client {
	doc = strings.TrimSpace(doc)
	out := make([]entity.Client, 0, maxClientSuggestions)
	if doc == "" {
		return out
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.state.Clients {
		if strings.Contains(c.DocNumber, doc) {
			out = append(out, c)
			if len(out) == maxClientSuggestions {
				break
			}
		}
	}
	return out
}

// SalesBetween ventas con fecha dentro de [from, to] (extremos vacíos = sin límite), en el orden de la lista.
func (s *Store) SalesBetween(from, to string) []entity.Sale {
	from, to = tasks.NormalizeDate(from), tasks.NormalizeDate(to)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Sale, 0)
	for _, sale := range s.state.Sales {
		d := tasks.NormalizeDate(sale.Date)
		if (from == "" || d >= from) && (to == "" || d <= to) {
			out = append(out, sale)
		}
	}
	return out
}

// TasksOn tareas que aplican en date.
func (s *Store) TasksOn(date string) []entity.OperationalTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tasks.TasksForDate(s.state.Tasks, date)
}

// TaskCalendar vista mensual del calendario operativo.
func (s *Store) TaskCalendar(year int, month time.Month) []tasks.Day {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tasks.Month(s.state.Tasks, year, month)
}

// PendingTasks ocurrencias pendientes del mes.
func (s *Store) PendingTasks(year int, month time.Month) []tasks.Occurrence {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return tasks.PendingInMonth(s.state.Tasks, year, month)
}

// fold pasa a minúsculas y quita diacríticos.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}
