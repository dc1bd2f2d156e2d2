package consultation

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medibook/medibook/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type consultationRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &consultationRepoPG{pool: pool}
}

func (r *consultationRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const consultationCols = `id, user_id, doctor_name, consultation_type,
	preferred_date, preferred_time, symptoms, status, payment_status,
	amount, bank_account_id, admin_notes, created_at, updated_at`

func (r *consultationRepoPG) scanConsultation(row pgx.Row) (*Consultation, error) {
	var c Consultation
	err := row.Scan(&c.ID, &c.UserID, &c.DoctorName, &c.ConsultationType,
		&c.PreferredDate, &c.PreferredTime, &c.Symptoms, &c.Status, &c.PaymentStatus,
		&c.Amount, &c.BankAccountID, &c.AdminNotes, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoEffect
	}
	return &c, err
}

func (r *consultationRepoPG) Create(ctx context.Context, c *Consultation) error {
	c.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO consultations (id, user_id, doctor_name, consultation_type,
			preferred_date, preferred_time, symptoms, status, payment_status, amount)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING created_at, updated_at`,
		c.ID, c.UserID, c.DoctorName, c.ConsultationType,
		c.PreferredDate, c.PreferredTime, c.Symptoms, c.Status, c.PaymentStatus, c.Amount).
		Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *consultationRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	return r.scanConsultation(r.conn(ctx).QueryRow(ctx,
		`SELECT `+consultationCols+` FROM consultations WHERE id = $1`, id))
}

func (r *consultationRepoPG) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*Consultation, error) {
	return r.scanConsultation(r.conn(ctx).QueryRow(ctx,
		`SELECT `+consultationCols+` FROM consultations WHERE id = $1 FOR UPDATE`, id))
}

func (r *consultationRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Consultation, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM consultations WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+consultationCols+` FROM consultations WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return r.collect(rows, total)
}

func (r *consultationRepoPG) ListAll(ctx context.Context, limit, offset int) ([]*Consultation, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM consultations`).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+consultationCols+` FROM consultations ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return r.collect(rows, total)
}

func (r *consultationRepoPG) ListByStatus(ctx context.Context, status string, limit, offset int) ([]*Consultation, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM consultations WHERE status = $1`, status).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+consultationCols+` FROM consultations WHERE status = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, status, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	return r.collect(rows, total)
}

func (r *consultationRepoPG) collect(rows pgx.Rows, total int) ([]*Consultation, int, error) {
	var items []*Consultation
	for rows.Next() {
		c, err := r.scanConsultation(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}

func (r *consultationRepoPG) Update(ctx context.Context, c *Consultation) error {
	// updated_at refreshes only on accepted updates; a zero-row match leaves
	// the record untouched.
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE consultations
		SET status=$2, payment_status=$3, bank_account_id=$4, admin_notes=$5, updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at`,
		c.ID, c.Status, c.PaymentStatus, c.BankAccountID, c.AdminNotes).
		Scan(&c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNoEffect
	}
	return err
}
