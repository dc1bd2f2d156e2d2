package notification

import (
	"context"

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

type notificationRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &notificationRepoPG{pool: pool}
}

func (r *notificationRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const notificationCols = `id, user_id, consultation_id, title, message, is_read, created_at`

func (r *notificationRepoPG) scanNotification(row pgx.Row) (*Notification, error) {
	var n Notification
	err := row.Scan(&n.ID, &n.UserID, &n.ConsultationID, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt)
	return &n, err
}

func (r *notificationRepoPG) Create(ctx context.Context, n *Notification) error {
	n.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO notifications (id, user_id, consultation_id, title, message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING is_read, created_at`,
		n.ID, n.UserID, n.ConsultationID, n.Title, n.Message).
		Scan(&n.IsRead, &n.CreatedAt)
}

func (r *notificationRepoPG) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*Notification, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx, `SELECT `+notificationCols+` FROM notifications WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Notification
	for rows.Next() {
		n, err := r.scanNotification(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, n)
	}
	return items, total, nil
}

func (r *notificationRepoPG) MarkRead(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE notifications SET is_read = TRUE WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoEffect
	}
	return nil
}

func (r *notificationRepoPG) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = FALSE`, userID).Scan(&count)
	return count, err
}
