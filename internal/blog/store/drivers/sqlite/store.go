package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/kartikeyan-sudo/BlogXAi/internal/blog/store"

	_ "modernc.org/sqlite"
)

// dbtx is the common surface of *sql.DB and *sql.Tx the repositories run on.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Single connection: sqlite serializes writers anyway, and it keeps
	// the per-connection pragma below in force for every query.
	db.SetMaxOpenConns(1)

	// Enforce FKs; sqlite has them off by default.
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// WithTx executes fn within a transaction, committing on nil and rolling
// back on error or panic.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	tx := newTx(sqlTx)

	defer func() {
		_ = tx.Rollback() // safe after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Users() store.Users           { return &usersRepo{db: s.db} }
func (s *Store) Posts() store.Posts           { return &postsRepo{db: s.db} }
func (s *Store) Categories() store.Categories { return &categoriesRepo{db: s.db} }
func (s *Store) Tags() store.Tags             { return &tagsRepo{db: s.db} }
func (s *Store) Comments() store.Comments     { return &commentsRepo{db: s.db} }
func (s *Store) Likes() store.Likes           { return &likesRepo{db: s.db} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConflict translates sqlite's unique-constraint failure into the store
// sentinel. modernc/sqlite surfaces it only via the error text.
func mapConflict(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return store.ErrAlreadyExists
	}
	return err
}

// requireRow turns a zero-row write into ErrNotFound.
func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func mapStringNull(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
