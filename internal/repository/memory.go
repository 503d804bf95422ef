package repository

import (
	"context"
	"slices"
	"sync"

	"github.com/sumire/projectmanager/internal/domain"
)

// MemoryProjectRepository keeps projects in process memory, in insertion
// order. Contents are lost on restart.
type MemoryProjectRepository struct {
	mu       sync.RWMutex
	projects []domain.Project
	nextID   int64
}

// NewMemoryProjectRepository creates an empty MemoryProjectRepository.
func NewMemoryProjectRepository() *MemoryProjectRepository {
	return &MemoryProjectRepository{
		projects: []domain.Project{},
		nextID:   1,
	}
}

// List returns a copy of all projects in insertion order.
func (r *MemoryProjectRepository) List(_ context.Context) ([]domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.projects), nil
}

// Count returns the number of stored projects.
func (r *MemoryProjectRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.projects), nil
}

// FindByID retrieves a project by its ID.
func (r *MemoryProjectRepository) FindByID(_ context.Context, id int64) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	p := r.projects[i]
	return &p, nil
}

// FindByName retrieves a project whose name matches case-insensitively.
func (r *MemoryProjectRepository) FindByName(_ context.Context, name string) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.projects {
		if domain.SameName(p.Name, name) {
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

// Create appends a project with the next id. Ids are never reused.
func (r *MemoryProjectRepository) Create(_ context.Context, name string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := domain.Project{ID: r.nextID, Name: name}
	r.nextID++
	r.projects = append(r.projects, p)
	return &p, nil
}

// UpdateName renames a project in place.
func (r *MemoryProjectRepository) UpdateName(_ context.Context, id int64, name string) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	r.projects[i] = r.projects[i].WithName(name)
	p := r.projects[i]
	return &p, nil
}

// Delete removes a project and returns it.
func (r *MemoryProjectRepository) Delete(_ context.Context, id int64) (*domain.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, domain.ErrNotFound
	}
	p := r.projects[i]
	r.projects = slices.Delete(r.projects, i, i+1)
	return &p, nil
}

// indexOf must be called with mu held.
func (r *MemoryProjectRepository) indexOf(id int64) int {
	return slices.IndexFunc(r.projects, func(p domain.Project) bool { return p.ID == id })
}
