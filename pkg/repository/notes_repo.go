package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/notablyhq/notably/pkg/domain"
)

// NotesRepository handles note persistence. Every read and write carries
// the caller's tenant id in the predicate itself, so rows belonging to
// other tenants are indistinguishable from absent rows.
type NotesRepository struct {
	db *sql.DB
}

// NewNotesRepository creates a new notes repository.
func NewNotesRepository(db *sql.DB) *NotesRepository {
	return &NotesRepository{db: db}
}

// ListByTenant retrieves all notes for a tenant, most recent first,
// with the author's email joined in.
func (r *NotesRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*domain.Note, error) {
	query := `
		SELECT n.id, n.title, n.content, n.user_id, n.tenant_id,
		       n.created_at, n.updated_at, u.email
		FROM notes n
		INNER JOIN users u ON n.user_id = u.id
		WHERE n.tenant_id = $1
		ORDER BY n.created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []*domain.Note{}
	for rows.Next() {
		var note domain.Note
		err := rows.Scan(
			&note.ID,
			&note.Title,
			&note.Content,
			&note.UserID,
			&note.TenantID,
			&note.CreatedAt,
			&note.UpdatedAt,
			&note.AuthorEmail,
		)
		if err != nil {
			return nil, err
		}
		notes = append(notes, &note)
	}

	return notes, rows.Err()
}

// GetByIDAndTenant retrieves a note by id within a tenant.
func (r *NotesRepository) GetByIDAndTenant(ctx context.Context, id, tenantID uuid.UUID) (*domain.Note, error) {
	query := `
		SELECT n.id, n.title, n.content, n.user_id, n.tenant_id,
		       n.created_at, n.updated_at, u.email
		FROM notes n
		INNER JOIN users u ON n.user_id = u.id
		WHERE n.id = $1 AND n.tenant_id = $2
	`

	var note domain.Note
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.UserID,
		&note.TenantID,
		&note.CreatedAt,
		&note.UpdatedAt,
		&note.AuthorEmail,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, err
	}

	return &note, nil
}

// CountByTenant counts a tenant's notes.
func (r *NotesRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM notes WHERE tenant_id = $1`
	var count int
	err := r.db.QueryRowContext(ctx, query, tenantID).Scan(&count)
	return count, err
}

// Create inserts a new note.
func (r *NotesRepository) Create(ctx context.Context, note *domain.Note) error {
	query := `
		INSERT INTO notes (id, title, content, user_id, tenant_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		note.ID,
		note.Title,
		note.Content,
		note.UserID,
		note.TenantID,
		note.CreatedAt,
		note.UpdatedAt,
	)
	return err
}

// Update changes a note's title and content within a tenant. Tenant id
// and author are never part of the SET clause.
func (r *NotesRepository) Update(ctx context.Context, id, tenantID uuid.UUID, title, content string) (*domain.Note, error) {
	query := `
		UPDATE notes n
		SET title = $3, content = $4, updated_at = NOW()
		FROM users u
		WHERE n.id = $1 AND n.tenant_id = $2 AND u.id = n.user_id
		RETURNING n.id, n.title, n.content, n.user_id, n.tenant_id,
		          n.created_at, n.updated_at, u.email
	`

	var note domain.Note
	err := r.db.QueryRowContext(ctx, query, id, tenantID, title, content).Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.UserID,
		&note.TenantID,
		&note.CreatedAt,
		&note.UpdatedAt,
		&note.AuthorEmail,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, err
	}

	return &note, nil
}

// Delete removes a note within a tenant.
func (r *NotesRepository) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	query := `DELETE FROM notes WHERE id = $1 AND tenant_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, tenantID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}
