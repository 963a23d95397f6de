package sqlite

import (
	"context"
	"database/sql"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore { return &txStore{tx: tx} }

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // outer DB stays open

// Ping is a no-op inside a transaction; the connection already exists.
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested transactions not supported; SAVEPOINT emulation if ever needed.
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error { return nil } // applied before any tx starts

func (t *txStore) Users() store.Users           { return &usersRepo{db: t.tx} }
func (t *txStore) Posts() store.Posts           { return &postsRepo{db: t.tx} }
func (t *txStore) Categories() store.Categories { return &categoriesRepo{db: t.tx} }
func (t *txStore) Tags() store.Tags             { return &tagsRepo{db: t.tx} }
func (t *txStore) Comments() store.Comments     { return &commentsRepo{db: t.tx} }
func (t *txStore) Likes() store.Likes           { return &likesRepo{db: t.tx} }
