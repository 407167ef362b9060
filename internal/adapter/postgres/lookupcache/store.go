// Package lookupcache implements the persistent lookup-cache tier using
// PostgreSQL. It is an alternative to the file store for shared deployments.
package lookupcache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/wordjournal/internal/adapter/postgres"
	"github.com/heartmarshall/wordjournal/internal/cache"
	"github.com/heartmarshall/wordjournal/internal/domain"
)

const table = "lookup_cache"

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Store persists lookup results as JSONB rows keyed by normalized word.
type Store struct {
	pool *pgxpool.Pool
	tx   *postgres.TxManager
	log  *slog.Logger
}

// New creates a Store on pool. Migrations must already be applied.
func New(pool *pgxpool.Pool, logger *slog.Logger) *Store {
	return &Store{
		pool: pool,
		tx:   postgres.NewTxManager(pool),
		log:  logger.With("store", "postgres"),
	}
}

var _ cache.Store = (*Store)(nil)

// Load purges rows holding system dictionary results, then returns the rest.
// Rows whose payload no longer decodes or validates are skipped.
func (s *Store) Load(ctx context.Context) ([]cache.Record, error) {
	var (
		records []cache.Record
		purged  int64
		skipped int
	)

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		q := postgres.QuerierFromCtx(ctx, s.pool)

		del, args, err := psql.Delete(table).Where(squirrel.Eq{"system_dictionary": true}).ToSql()
		if err != nil {
			return fmt.Errorf("build purge query: %w", err)
		}
		tag, err := q.Exec(ctx, del, args...)
		if err != nil {
			return postgres.MapError(err, table, "*")
		}
		purged = tag.RowsAffected()

		sel, args, err := psql.Select("key", "payload").From(table).OrderBy("key").ToSql()
		if err != nil {
			return fmt.Errorf("build load query: %w", err)
		}
		rows, err := q.Query(ctx, sel, args...)
		if err != nil {
			return postgres.MapError(err, table, "*")
		}
		defer rows.Close()

		for rows.Next() {
			var (
				key     string
				payload []byte
			)
			if err := rows.Scan(&key, &payload); err != nil {
				return postgres.MapError(err, table, key)
			}

			var result domain.LookupResult
			if err := json.Unmarshal(payload, &result); err != nil {
				skipped++
				continue
			}
			if result.Validate() != nil || result.IsSystemDictionary() {
				skipped++
				continue
			}
			records = append(records, cache.Record{Key: key, Result: result})
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("lookupcache: load: %w", err)
	}

	s.log.InfoContext(ctx, "persistent cache loaded",
		slog.Int("loaded", len(records)),
		slog.Int64("purged", purged),
		slog.Int("skipped", skipped),
	)
	return records, nil
}

// Save upserts r under key.
func (s *Store) Save(ctx context.Context, key string, r domain.LookupResult) error {
	key = domain.NormalizeText(key)
	if key == "" {
		return domain.NewValidationError("key", "required")
	}

	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("lookupcache: encode %q: %w", key, err)
	}

	query, args, err := psql.Insert(table).
		Columns("key", "word", "payload", "system_dictionary").
		Values(key, r.Word, payload, r.IsSystemDictionary()).
		Suffix(`ON CONFLICT (key) DO UPDATE SET
			word = EXCLUDED.word,
			payload = EXCLUDED.payload,
			system_dictionary = EXCLUDED.system_dictionary,
			updated_at = now()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("lookupcache: build save query: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, s.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, table, key)
	}
	return nil
}

// Delete removes the row for key. A missing row is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	query, args, err := psql.Delete(table).Where(squirrel.Eq{"key": domain.NormalizeText(key)}).ToSql()
	if err != nil {
		return fmt.Errorf("lookupcache: build delete query: %w", err)
	}
	if _, err := postgres.QuerierFromCtx(ctx, s.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, table, key)
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}
