package repository

import (
	"context"
	"database/sql"
	"errors"

	"gigmatch/internal/database"
	"gigmatch/internal/domain/subject"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type SubjectRepository interface {
	Create(ctx context.Context, s subject.Subject) (subject.Subject, error)
	GetByID(ctx context.Context, id uuid.UUID) (subject.Subject, error)
	ListOpen(ctx context.Context, kind subject.Kind, limit, offset int) ([]subject.Subject, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]subject.Subject, error)
	Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error
}

type PostgresSubjectRepository struct {
	db database.DB
}

func NewPostgresSubjectRepository(db database.DB) *PostgresSubjectRepository {
	return &PostgresSubjectRepository{db: db}
}

const subjectColumns = `id, owner_id, kind, title, description, capacity_mode,
	slots_total, slots_remaining, status, available_until, created_at, updated_at`

func (r *PostgresSubjectRepository) Create(ctx context.Context, s subject.Subject) (subject.Subject, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO subjects (id, owner_id, kind, title, description, capacity_mode, slots_total, slots_remaining, status, available_until)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7, $8, $9)
		 RETURNING `+subjectColumns,
		s.ID, s.OwnerID, s.Kind, s.Title, s.Description, s.CapacityMode, s.SlotsTotal, s.Status, s.AvailableUntil,
	)
	return scanSubject(row)
}

func (r *PostgresSubjectRepository) GetByID(ctx context.Context, id uuid.UUID) (subject.Subject, error) {
	row := r.db.QueryRow(ctx, `SELECT `+subjectColumns+` FROM subjects WHERE id = $1`, id)
	s, err := scanSubject(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return subject.Subject{}, ErrSubjectNotFound
		}
		return subject.Subject{}, err
	}
	return s, nil
}

func (r *PostgresSubjectRepository) ListOpen(ctx context.Context, kind subject.Kind, limit, offset int) ([]subject.Subject, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+subjectColumns+`
		 FROM subjects
		 WHERE kind = $1 AND status <> 'closed' AND (available_until IS NULL OR available_until > now())
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		kind, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubjects(rows)
}

func (r *PostgresSubjectRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]subject.Subject, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+subjectColumns+` FROM subjects WHERE owner_id = $1 ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSubjects(rows)
}

// Delete removes the subject and, through the FK cascade, every application
// submitted against it.
func (r *PostgresSubjectRepository) Delete(ctx context.Context, id uuid.UUID, ownerID uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM subjects WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSubjectNotFound
	}
	return nil
}

func scanSubject(row database.Row) (subject.Subject, error) {
	var s subject.Subject
	err := row.Scan(
		&s.ID, &s.OwnerID, &s.Kind, &s.Title, &s.Description, &s.CapacityMode,
		&s.SlotsTotal, &s.SlotsRemaining, &s.Status, &s.AvailableUntil, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return subject.Subject{}, err
	}
	return s, nil
}

func collectSubjects(rows database.Rows) ([]subject.Subject, error) {
	out := make([]subject.Subject, 0)
	for rows.Next() {
		var s subject.Subject
		if err := rows.Scan(
			&s.ID, &s.OwnerID, &s.Kind, &s.Title, &s.Description, &s.CapacityMode,
			&s.SlotsTotal, &s.SlotsRemaining, &s.Status, &s.AvailableUntil, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
