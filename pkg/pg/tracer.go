package pg

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/zenithfinancial/portal/pkg/logger"
)

type queryStartKey struct{}

type queryStart struct {
	sql string
	at  time.Time
}

// SlowQueryTracer is a pgx.QueryTracer that logs statements exceeding a threshold.
// Arguments are never logged.
type SlowQueryTracer struct {
	log       *slog.Logger
	threshold time.Duration
	now       func() time.Time
}

// NewSlowQueryTracer logs statements slower than threshold at warn level.
func NewSlowQueryTracer(log *slog.Logger, threshold time.Duration) *SlowQueryTracer {
	return &SlowQueryTracer{
		log:       logger.OrDiscard(log).With(logger.Component("pg")),
		threshold: threshold,
		now:       time.Now,
	}
}

func (t *SlowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, at: t.now()})
}

func (t *SlowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}

	elapsed := t.now().Sub(start.at)
	if elapsed < t.threshold {
		return
	}

	t.log.WarnContext(ctx, "slow query",
		slog.String("sql", strings.Join(strings.Fields(start.sql), " ")),
		logger.Duration(elapsed),
		slog.Int64("rows", data.CommandTag.RowsAffected()),
		logger.Error(data.Err),
	)
}
