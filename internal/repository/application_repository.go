package repository

import (
	"context"
	"database/sql"
	"errors"

	"gigmatch/internal/database"
	"gigmatch/internal/domain/application"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a application.Application) (application.Application, error)
	GetByID(ctx context.Context, id uuid.UUID) (application.Application, error)
	ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]application.Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error)

	Approve(ctx context.Context, subjectID, applicationID uuid.UUID, singleSlot bool) (application.Application, error)
	AdvanceStatus(ctx context.Context, id uuid.UUID, from, to application.Status) (application.Application, error)
	Withdraw(ctx context.Context, id uuid.UUID) (application.Application, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, subject_id, applicant_id, status, note,
	pickup_label, pickup_lat, pickup_lng, dropoff_label, dropoff_lat, dropoff_lng,
	created_at, updated_at`

// Create inserts the application and lets the unique constraint on
// (subject_id, applicant_id) arbitrate concurrent duplicate submissions.
func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO applications (id, subject_id, applicant_id, status, note,
			pickup_label, pickup_lat, pickup_lng, dropoff_label, dropoff_lat, dropoff_lng)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+applicationColumns,
		a.ID, a.SubjectID, a.ApplicantID, a.Status, a.Note,
		a.Pickup.Label, a.Pickup.Lat, a.Pickup.Lng,
		a.Dropoff.Label, a.Dropoff.Lat, a.Dropoff.Lng,
	)
	created, err := scanApplication(row)
	if err != nil {
		if isUniqueViolation(err) {
			return application.Application{}, ErrDuplicateApplication
		}
		if isForeignKeyViolation(err) {
			return application.Application{}, ErrSubjectNotFound
		}
		return application.Application{}, err
	}
	return created, nil
}

func (r *PostgresApplicationRepository) GetByID(ctx context.Context, id uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE subject_id = $1 ORDER BY created_at ASC`,
		subjectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

func (r *PostgresApplicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE applicant_id = $1 ORDER BY created_at DESC`,
		applicantID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectApplications(rows)
}

// Approve is the matching coordinator's winner-selection step. The slot
// decrement and the status flip run in one transaction, and the decrement is
// conditional on slots_remaining > 0, so two concurrent approvals on a
// single-slot subject cannot both commit: the loser's UPDATE matches zero
// rows and the transaction rolls back with ErrCapacityExhausted.
func (r *PostgresApplicationRepository) Approve(ctx context.Context, subjectID, applicationID uuid.UUID, singleSlot bool) (application.Application, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return application.Application{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	affected, err := tx.Exec(ctx,
		`UPDATE subjects
		 SET slots_remaining = slots_remaining - 1, status = 'in_progress', updated_at = now()
		 WHERE id = $1 AND status <> 'closed' AND slots_remaining > 0`,
		subjectID,
	)
	if err != nil {
		return application.Application{}, err
	}
	if affected == 0 {
		return application.Application{}, ErrCapacityExhausted
	}

	row := tx.QueryRow(ctx,
		`UPDATE applications
		 SET status = 'accepted', updated_at = now()
		 WHERE id = $1 AND subject_id = $2 AND status = 'pending'
		 RETURNING `+applicationColumns,
		applicationID, subjectID,
	)
	accepted, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, ErrApplicationResolved
		}
		return application.Application{}, err
	}

	if singleSlot {
		// Single-slot subjects reject every sibling in the same atomic step.
		_, err = tx.Exec(ctx,
			`DELETE FROM applications WHERE subject_id = $1 AND status = 'pending' AND id <> $2`,
			subjectID, applicationID,
		)
		if err != nil {
			return application.Application{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return application.Application{}, err
	}
	return accepted, nil
}

// AdvanceStatus flips the status only if the row is still in the expected
// state; a concurrent advance makes the UPDATE match nothing. Reaching done
// closes the subject once the number of done applications covers its
// declared capacity.
func (r *PostgresApplicationRepository) AdvanceStatus(ctx context.Context, id uuid.UUID, from, to application.Status) (application.Application, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return application.Application{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	row := tx.QueryRow(ctx,
		`UPDATE applications
		 SET status = $1, updated_at = now()
		 WHERE id = $2 AND status = $3
		 RETURNING `+applicationColumns,
		to, id, from,
	)
	updated, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, ErrApplicationResolved
		}
		return application.Application{}, err
	}

	if to == application.StatusDone {
		_, err = tx.Exec(ctx,
			`UPDATE subjects s
			 SET status = 'closed', updated_at = now()
			 WHERE s.id = $1
			   AND (SELECT count(*) FROM applications a WHERE a.subject_id = s.id AND a.status = 'done') >= s.slots_total`,
			updated.SubjectID,
		)
		if err != nil {
			return application.Application{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return application.Application{}, err
	}
	return updated, nil
}

// Withdraw deletes the application. If the row was accepted, the subject's
// slot is handed back and a closed subject re-opens for matching.
func (r *PostgresApplicationRepository) Withdraw(ctx context.Context, id uuid.UUID) (application.Application, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return application.Application{}, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	row := tx.QueryRow(ctx,
		`DELETE FROM applications WHERE id = $1 RETURNING `+applicationColumns,
		id,
	)
	deleted, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}

	if deleted.Status == application.StatusAccepted {
		_, err = tx.Exec(ctx,
			`UPDATE subjects
			 SET slots_remaining = slots_remaining + 1,
			     status = CASE WHEN status = 'closed' THEN 'in_progress' ELSE status END,
			     updated_at = now()
			 WHERE id = $1`,
			deleted.SubjectID,
		)
		if err != nil {
			return application.Application{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return application.Application{}, err
	}
	return deleted, nil
}

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	err := row.Scan(
		&a.ID, &a.SubjectID, &a.ApplicantID, &a.Status, &a.Note,
		&a.Pickup.Label, &a.Pickup.Lat, &a.Pickup.Lng,
		&a.Dropoff.Label, &a.Dropoff.Lat, &a.Dropoff.Lng,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return application.Application{}, err
	}
	return a, nil
}

func collectApplications(rows database.Rows) ([]application.Application, error) {
	out := make([]application.Application, 0)
	for rows.Next() {
		var a application.Application
		if err := rows.Scan(
			&a.ID, &a.SubjectID, &a.ApplicantID, &a.Status, &a.Note,
			&a.Pickup.Label, &a.Pickup.Lat, &a.Pickup.Lng,
			&a.Dropoff.Label, &a.Dropoff.Lat, &a.Dropoff.Lng,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
