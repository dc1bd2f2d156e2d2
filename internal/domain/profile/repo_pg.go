package profile

import (
	"context"
	"errors"
	"strings"
	"time"

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

type profileRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &profileRepoPG{pool: pool}
}

func (r *profileRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const profileCols = `user_id, email, full_name, role, password_hash, created_at, updated_at`

func (r *profileRepoPG) scanProfile(row pgx.Row) (*Profile, error) {
	var p Profile
	err := row.Scan(&p.UserID, &p.Email, &p.FullName, &p.Role, &p.PasswordHash, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoEffect
	}
	return &p, err
}

func (r *profileRepoPG) Create(ctx context.Context, p *Profile) error {
	p.UserID = uuid.New()
	err := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO profiles (user_id, email, full_name, role, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`,
		p.UserID, p.Email, p.FullName, p.Role, p.PasswordHash).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

func (r *profileRepoPG) GetByID(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	return r.scanProfile(r.conn(ctx).QueryRow(ctx,
		`SELECT `+profileCols+` FROM profiles WHERE user_id = $1`, userID))
}

func (r *profileRepoPG) GetByEmail(ctx context.Context, email string) (*Profile, error) {
	return r.scanProfile(r.conn(ctx).QueryRow(ctx,
		`SELECT `+profileCols+` FROM profiles WHERE email = $1`, strings.ToLower(strings.TrimSpace(email))))
}

func (r *profileRepoPG) UpdateName(ctx context.Context, userID uuid.UUID, fullName *string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE profiles SET full_name = $2, updated_at = NOW() WHERE user_id = $1`, userID, fullName)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoEffect
	}
	return nil
}

func (r *profileRepoPG) GrantAdmin(ctx context.Context, email string) error {
	tag, err := r.conn(ctx).Exec(ctx,
		`UPDATE profiles SET role = 'admin', updated_at = NOW() WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoEffect
	}
	return nil
}

type refreshTokenRepoPG struct{ pool *pgxpool.Pool }

func NewRefreshTokenRepoPG(pool *pgxpool.Pool) RefreshTokenRepository {
	return &refreshTokenRepoPG{pool: pool}
}

func (r *refreshTokenRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

func (r *refreshTokenRepoPG) Store(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO refresh_tokens (id, user_id, token_hash, expires_at)
		VALUES ($1, $2, $3, $4)`,
		uuid.New(), userID, tokenHash, expiresAt)
	return err
}

func (r *refreshTokenRepoPG) Consume(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	var userID uuid.UUID
	err := r.conn(ctx).QueryRow(ctx, `
		UPDATE refresh_tokens SET revoked_at = NOW()
		WHERE token_hash = $1 AND revoked_at IS NULL AND expires_at > NOW()
		RETURNING user_id`, tokenHash).Scan(&userID)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, ErrNoEffect
	}
	return userID, err
}

func (r *refreshTokenRepoPG) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = NOW() WHERE user_id = $1 AND revoked_at IS NULL`, userID)
	return err
}
