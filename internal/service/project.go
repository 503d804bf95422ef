package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/sumire/projectmanager/internal/domain"
)

// ProjectStore defines the project data access interface consumed by ProjectService.
type ProjectStore interface {
	List(ctx context.Context) ([]domain.Project, error)
	Count(ctx context.Context) (int, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	FindByName(ctx context.Context, name string) (*domain.Project, error)
	Create(ctx context.Context, name string) (*domain.Project, error)
	UpdateName(ctx context.Context, id int64, name string) (*domain.Project, error)
	Delete(ctx context.Context, id int64) (*domain.Project, error)
}

// ProjectService implements the project CRUD rules on top of a ProjectStore.
type ProjectService struct {
	store  ProjectStore
	logger *zap.Logger

	// mu serializes mutations so a duplicate check and the write that
	// follows it cannot interleave with another request.
	mu sync.Mutex
}

// NewProjectService creates a new ProjectService.
func NewProjectService(store ProjectStore, logger *zap.Logger) *ProjectService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectService{store: store, logger: logger}
}

// ListProjects returns all projects in insertion order.
func (s *ProjectService) ListProjects(ctx context.Context) ([]domain.Project, error) {
	projects, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// CountProjects returns the current number of projects.
func (s *ProjectService) CountProjects(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

// GetProject returns the project with the given id, or domain.ErrNotFound.
func (s *ProjectService) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	return s.store.FindByID(ctx, id)
}

// CreateProject validates name and appends a new project.
func (s *ProjectService) CreateProject(ctx context.Context, name string) (*domain.Project, error) {
	if err := domain.ValidateProjectName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkNameAvailable(ctx, name, 0); err != nil {
		return nil, err
	}

	project, err := s.store.Create(ctx, name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("project created", zap.Int64("project_id", project.ID), zap.String("name", project.Name))
	return project, nil
}

// UpdateProject renames the project with the given id. The project's own
// current name never counts as a duplicate.
func (s *ProjectService) UpdateProject(ctx context.Context, id int64, name string) (*domain.Project, error) {
	if err := domain.ValidateProjectName(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.store.FindByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.checkNameAvailable(ctx, name, id); err != nil {
		return nil, err
	}

	project, err := s.store.UpdateName(ctx, id, name)
	if err != nil {
		return nil, err
	}

	s.logger.Info("project updated", zap.Int64("project_id", project.ID), zap.String("name", project.Name))
	return project, nil
}

// DeleteProject removes the project with the given id and returns it.
func (s *ProjectService) DeleteProject(ctx context.Context, id int64) (*domain.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	project, err := s.store.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info("project deleted", zap.Int64("project_id", project.ID))
	return project, nil
}

// Seed creates the given projects when the store is empty. A store that
// already holds projects is left untouched.
func (s *ProjectService) Seed(ctx context.Context, names []string) error {
	n, err := s.CountProjects(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		s.logger.Debug("store not empty, skipping seed", zap.Int("count", n))
		return nil
	}

	for _, name := range names {
		if _, err := s.CreateProject(ctx, name); err != nil {
			return fmt.Errorf("seed project %q: %w", name, err)
		}
	}

	s.logger.Info("seeded projects", zap.Int("count", len(names)))
	return nil
}

// checkNameAvailable returns domain.ErrDuplicateName when a project other
// than exceptID already uses name. exceptID 0 checks against every project.
func (s *ProjectService) checkNameAvailable(ctx context.Context, name string, exceptID int64) error {
	existing, err := s.store.FindByName(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("check project name: %w", err)
	}
	if existing.ID == exceptID {
		return nil
	}
	return domain.ErrDuplicateName
}
