// Package postgres implements the Postgres-backed variant of the listing
// service. Ordering is done in SQL, and change notifications ride on
// LISTEN/NOTIFY via a statement-level trigger installed at boot.
package postgres

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/backend"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/models"
)

type Store struct {
	pool    *pgxpool.Pool
	table   string
	channel string
}

func New(ctx context.Context, databaseURL, table string) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	s := &Store{
		pool:    pool,
		table:   table,
		channel: table + "_changes",
	}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("Postgres connected: table=%s", table)
	return s, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// migrate applies the schema and the notify trigger. Statements are
// idempotent so every boot can run them.
func (s *Store) migrate(ctx context.Context) error {
	table := pgx.Identifier{s.table}.Sanitize()
	trigger := pgx.Identifier{s.table + "_notify"}.Sanitize()
	fn := pgx.Identifier{s.table + "_notify_change"}.Sanitize()

	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id          uuid PRIMARY KEY,
			title       text NOT NULL,
			category    text NOT NULL,
			price       numeric NOT NULL CHECK (price > 0),
			description text NOT NULL,
			image_url   text NOT NULL DEFAULT '',
			seller_id   text NOT NULL,
			created_at  timestamptz NOT NULL DEFAULT now()
		)`, table),
		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s ON %s (created_at DESC)`,
			pgx.Identifier{s.table + "_created_at_idx"}.Sanitize(), table),
		fmt.Sprintf(`CREATE OR REPLACE FUNCTION %s() RETURNS trigger AS $$
			BEGIN
				PERFORM pg_notify('%s', TG_OP);
				RETURN NULL;
			END
		$$ LANGUAGE plpgsql`, fn, s.channel),
		fmt.Sprintf(`DROP TRIGGER IF EXISTS %s ON %s`, trigger, table),
		fmt.Sprintf(`CREATE TRIGGER %s AFTER INSERT OR UPDATE OR DELETE ON %s
			FOR EACH STATEMENT EXECUTE FUNCTION %s()`, trigger, table, fn),
	}

	for _, stmt := range stmts {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// ListAll returns every listing ordered newest first by the query itself.
func (s *Store) ListAll(ctx context.Context) ([]models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := fmt.Sprintf(`
		SELECT id, title, category, price, description, image_url, seller_id, created_at
		FROM %s
		ORDER BY created_at DESC`, pgx.Identifier{s.table}.Sanitize())

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	listings := make([]models.Listing, 0)
	for rows.Next() {
		var l models.Listing
		if err := rows.Scan(&l.ID, &l.Title, &l.Category, &l.Price,
			&l.Description, &l.ImageURL, &l.SellerID, &l.Timestamp); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

func (s *Store) Insert(ctx context.Context, l *models.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, category, price, description, image_url, seller_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, pgx.Identifier{s.table}.Sanitize())

	_, err := s.pool.Exec(ctx, query,
		l.ID, l.Title, l.Category, l.Price, l.Description, l.ImageURL, l.SellerID, l.Timestamp)
	return err
}

// Subscribe dedicates one pooled connection to LISTEN and reports each
// notification as a bare change event. The payload (TG_OP) is ignored; the
// consumer refetches regardless of what changed.
func (s *Store) Subscribe(ctx context.Context, listener backend.ChangeListener) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{s.channel}.Sanitize()); err != nil {
		conn.Release()
		return err
	}

	go func() {
		defer conn.Release()
		for {
			if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
				if ctx.Err() == nil {
					log.Printf("[postgres] change channel closed: %v", err)
				}
				return
			}
			listener(backend.ChangeEvent{})
		}
	}()

	return nil
}
