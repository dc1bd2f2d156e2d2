package bankaccount

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

type bankAccountRepoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository {
	return &bankAccountRepoPG{pool: pool}
}

func (r *bankAccountRepoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const bankAccountCols = `id, bank_name, account_name, account_number, routing_number, is_active, created_at`

func (r *bankAccountRepoPG) scanBankAccount(row pgx.Row) (*BankAccount, error) {
	var a BankAccount
	err := row.Scan(&a.ID, &a.BankName, &a.AccountName, &a.AccountNumber, &a.RoutingNumber, &a.IsActive, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNoEffect
	}
	return &a, err
}

func (r *bankAccountRepoPG) Create(ctx context.Context, a *BankAccount) error {
	a.ID = uuid.New()
	return r.conn(ctx).QueryRow(ctx, `
		INSERT INTO bank_accounts (id, bank_name, account_name, account_number, routing_number, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		a.ID, a.BankName, a.AccountName, a.AccountNumber, a.RoutingNumber, a.IsActive).
		Scan(&a.CreatedAt)
}

func (r *bankAccountRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*BankAccount, error) {
	return r.scanBankAccount(r.conn(ctx).QueryRow(ctx,
		`SELECT `+bankAccountCols+` FROM bank_accounts WHERE id = $1`, id))
}

func (r *bankAccountRepoPG) ListActive(ctx context.Context) ([]*BankAccount, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+bankAccountCols+` FROM bank_accounts WHERE is_active = TRUE ORDER BY bank_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *bankAccountRepoPG) ListAll(ctx context.Context) ([]*BankAccount, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+bankAccountCols+` FROM bank_accounts ORDER BY bank_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return r.collect(rows)
}

func (r *bankAccountRepoPG) collect(rows pgx.Rows) ([]*BankAccount, error) {
	var items []*BankAccount
	for rows.Next() {
		a, err := r.scanBankAccount(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

func (r *bankAccountRepoPG) Update(ctx context.Context, a *BankAccount) error {
	tag, err := r.conn(ctx).Exec(ctx, `
		UPDATE bank_accounts
		SET bank_name=$2, account_name=$3, account_number=$4, routing_number=$5, is_active=$6
		WHERE id = $1`,
		a.ID, a.BankName, a.AccountName, a.AccountNumber, a.RoutingNumber, a.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNoEffect
	}
	return nil
}
