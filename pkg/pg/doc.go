// Package pg bootstraps the PostgreSQL layer on pgx/v5.
//
// Config is read from the environment (DATABASE_URL plus PG_* tuning knobs).
// PoolConfig turns it into a bounded pgxpool configuration: at most 20
// connections, idle connections closed after 30s, a 2s connect timeout and a
// search_path pinned to the portal schema. Connect opens the pool and pings it,
// retrying a few times while the database comes up.
//
// Repositories take the DB interface, which *pgxpool.Pool and pgx.Tx both
// satisfy. WithTx wraps a unit of work in a transaction:
//
//	err := pg.WithTx(ctx, pool, func(tx pgx.Tx) error {
//		_, err := tx.Exec(ctx, "UPDATE users SET last_login_at = now() WHERE id = $1", id)
//		return err
//	})
//
// Migrate applies goose migrations from an embedded file system, and
// Healthcheck adapts a pool ping to a readiness probe. SlowQueryTracer can be
// attached to log statements slower than PG_SLOW_QUERY_THRESHOLD.
package pg
