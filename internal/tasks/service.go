// Package tasks holds the dashboard's open-tasks list. Tasks are a UI-side
// scratchpad: in-memory only, not journaled and not persisted.
package tasks

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type Service struct {
	mu    sync.Mutex
	tasks []Task

	logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	return &Service{
		tasks:  []Task{},
		logger: logger,
	}
}

// Add appends a task. The title is required.
func (s *Service) Add(title, description string) (Task, error) {
	if title == "" {
		return Task{}, fmt.Errorf("%w: task title is required", ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	task := Task{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Date:        time.Now().Format("1/2/2006"),
	}
	s.tasks = append(s.tasks, task)

	s.logger.Info("task added", zap.String("id", task.ID), zap.String("title", title))
	return task, nil
}

// Remove deletes a task by ID.
func (s *Service) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.logger.Info("task removed", zap.String("id", id))
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// List returns all open tasks in insertion order.
func (s *Service) List() []Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}
