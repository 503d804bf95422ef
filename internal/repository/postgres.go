package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/sumire/projectmanager/internal/domain"
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// PostgresProjectRepository handles project data access in PostgreSQL.
type PostgresProjectRepository struct {
	db *sqlx.DB
}

// NewPostgresProjectRepository creates a new PostgresProjectRepository.
func NewPostgresProjectRepository(db *sqlx.DB) *PostgresProjectRepository {
	return &PostgresProjectRepository{db: db}
}

// List returns all projects ordered by id, which is insertion order.
func (r *PostgresProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	projects := []domain.Project{}
	if err := r.db.SelectContext(ctx, &projects,
		`SELECT id, name FROM projects ORDER BY id`); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Count returns the number of projects.
func (r *PostgresProjectRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM projects`); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return n, nil
}

// FindByID retrieves a project by its ID.
func (r *PostgresProjectRepository) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	var project domain.Project
	err := r.db.GetContext(ctx, &project,
		`SELECT id, name FROM projects WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find project by id %d: %w", id, err)
	}
	return &project, nil
}

// FindByName retrieves a project whose name matches case-insensitively.
func (r *PostgresProjectRepository) FindByName(ctx context.Context, name string) (*domain.Project, error) {
	var project domain.Project
	err := r.db.GetContext(ctx, &project,
		`SELECT id, name FROM projects WHERE LOWER(name) = LOWER($1) LIMIT 1`, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find project by name %q: %w", name, err)
	}
	return &project, nil
}

// Create inserts a new project. The id comes from the table's sequence and
// is never reused.
func (r *PostgresProjectRepository) Create(ctx context.Context, name string) (*domain.Project, error) {
	var project domain.Project
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO projects (name) VALUES ($1) RETURNING id, name`, name,
	).StructScan(&project)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateName
		}
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &project, nil
}

// UpdateName renames a project.
func (r *PostgresProjectRepository) UpdateName(ctx context.Context, id int64, name string) (*domain.Project, error) {
	var project domain.Project
	err := r.db.QueryRowxContext(ctx,
		`UPDATE projects SET name = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, name`, id, name,
	).StructScan(&project)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateName
		}
		return nil, fmt.Errorf("update project %d: %w", id, err)
	}
	return &project, nil
}

// Delete removes a project and returns the deleted row.
func (r *PostgresProjectRepository) Delete(ctx context.Context, id int64) (*domain.Project, error) {
	var project domain.Project
	err := r.db.QueryRowxContext(ctx,
		`DELETE FROM projects WHERE id = $1 RETURNING id, name`, id,
	).StructScan(&project)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("delete project %d: %w", id, err)
	}
	return &project, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
