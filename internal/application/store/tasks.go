package store

import (
	"context"
	"fmt"

	"github.com/fruteria-olga/panel/internal/domain"
	"github.com/fruteria-olga/panel/internal/domain/entity"
	"github.com/fruteria-olga/panel/internal/domain/tasks"
)

func taskID(t entity.OperationalTask) entity.ID { return t.ID }

// AddTask agrega la tarea al inicio de la lista. Estado vacío equivale a pendiente.
func (s *Store) AddTask(ctx context.Context, t entity.OperationalTask) entity.OperationalTask {
	t.ID = newID(t.ID)
	if t.Status == "" {
		t.Status = entity.TaskStatusPendiente
	}
	t.Date = tasks.NormalizeDate(t.Date)
	t.CompletedDates = append([]string(nil), t.CompletedDates...)

	s.mu.Lock()
	s.state.Tasks = prepend(s.state.Tasks, t)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("tasks.insert", t.ID, func(ctx context.Context) error {
		return s.gw.Tasks.Insert(ctx, t)
	})
	return t
}

// UpdateTask reemplaza la tarea con el mismo id y devuelve el registro guardado.
// Igual que AddTask, estado vacío equivale a pendiente.
func (s *Store) UpdateTask(ctx context.Context, t entity.OperationalTask) (entity.OperationalTask, error) {
	if t.Status == "" {
		t.Status = entity.TaskStatusPendiente
	}
	t.Date = tasks.NormalizeDate(t.Date)
	t.CompletedDates = append([]string(nil), t.CompletedDates...)

	s.mu.Lock()
	i := indexOf(s.state.Tasks, t.ID, taskID)
	if i < 0 {
		s.mu.Unlock()
		return entity.OperationalTask{}, fmt.Errorf("tarea %s: %w", t.ID, domain.ErrNotFound)
	}
	t.ID = s.state.Tasks[i].ID
	s.state.Tasks[i] = t
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("tasks.update", t.ID, func(ctx context.Context) error {
		return s.gw.Tasks.Update(ctx, t.ID, t)
	})
	return t, nil
}

// DeleteTask elimina la tarea.
func (s *Store) DeleteTask(ctx context.Context, id entity.ID) error {
	s.mu.Lock()
	i := indexOf(s.state.Tasks, id, taskID)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("tarea %s: %w", id, domain.ErrNotFound)
	}
	id = s.state.Tasks[i].ID
	s.state.Tasks = removeAt(s.state.Tasks, i)
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("tasks.delete", id, func(ctx context.Context) error {
		return s.gw.Tasks.Delete(ctx, id)
	})
	return nil
}

// ToggleTask alterna el cumplimiento de la tarea en date (ver tasks.ToggleCompletion).
// Una tarea constante exige una fecha completa; con fecha inválida no se toca nada.
func (s *Store) ToggleTask(ctx context.Context, id entity.ID, date string) (entity.OperationalTask, error) {
	s.mu.Lock()
	i := indexOf(s.state.Tasks, id, taskID)
	if i < 0 {
		s.mu.Unlock()
		return entity.OperationalTask{}, fmt.Errorf("tarea %s: %w", id, domain.ErrNotFound)
	}
	if s.state.Tasks[i].IsRecurring() && !tasks.IsFullDate(date) {
		s.mu.Unlock()
		return entity.OperationalTask{}, fmt.Errorf("fecha %q: %w", date, domain.ErrInvalidInput)
	}
	t := tasks.ToggleCompletion(s.state.Tasks[i], date)
	s.state.Tasks[i] = t
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.remote.Go("tasks.toggle", t.ID, func(ctx context.Context) error {
		return s.gw.Tasks.Update(ctx, t.ID, t)
	})
	return t, nil
}
