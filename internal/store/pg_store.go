package store

import (
	"context"
	"errors"

	verrors "github.com/Juan-Ayme/ventas/internal/errors"
	"github.com/Juan-Ayme/ventas/internal/store/db"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// pgCore holds the connection pool and queries shared by the PostgreSQL stores.
type pgCore struct {
	db *pgxpool.Pool
	q  *db.Queries
}

// PgProductStore implements ProductStore using PostgreSQL as the data store.
type PgProductStore struct {
	*pgCore
}

// PgSaleStore implements SaleStore using PostgreSQL as the data store.
type PgSaleStore struct {
	*pgCore
}

// PgStore bundles the product and sale stores over one PostgreSQL pool.
type PgStore struct {
	*PgProductStore
	*PgSaleStore
}

// NewPgStore creates a new PgStore using a PostgreSQL connection pool.
func NewPgStore(dbp *pgxpool.Pool) *PgStore {
	core := &pgCore{
		db: dbp,
		q:  db.New(dbp),
	}
	return &PgStore{
		PgProductStore: &PgProductStore{core},
		PgSaleStore:    &PgSaleStore{core},
	}
}

func (p *pgCore) withTransaction(ctx context.Context, fn func(qtx *db.Queries) error) error {
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return verrors.ErrTransactionBegin
	}
	qtx := p.q.WithTx(tx)

	err = fn(qtx)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return verrors.ErrTransactionRollback
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return verrors.ErrTransactionCommit
	}

	return nil
}
