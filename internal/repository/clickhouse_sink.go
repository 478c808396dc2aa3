package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"RiskFill/internal/domain/models"
	applogger "RiskFill/pkg/logger"

	sq "github.com/Masterminds/squirrel"
)

const chInsertBatch = 500

// SchemaStatements returns the DDL for the history table.
// ReplacingMergeTree keeps the latest computation per date across runs.
func SchemaStatements(database, table string) []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
            run_id      UUID,
            date        Date,
            risk        Float64,
            yield_curve Nullable(Float64),
            computed_at DateTime
        ) ENGINE = ReplacingMergeTree(computed_at)
        ORDER BY date`, database, table),
	}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// CHRiskSink appends each run's history to a ClickHouse table.
type CHRiskSink struct {
	db    execer
	table string
	l     *applogger.Logger
	now   func() time.Time
}

func NewCHRiskSink(db *sql.DB, database, table string, l *applogger.Logger) *CHRiskSink {
	if l == nil {
		l = applogger.Nop()
	}
	return &CHRiskSink{db: db, table: database + "." + table, l: l, now: time.Now}
}

func (s *CHRiskSink) Name() string { return "clickhouse" }

func (s *CHRiskSink) Write(ctx context.Context, runID string, records []models.DailyRisk) error {
	start := time.Now()
	computedAt := s.now().UTC().Truncate(time.Second)

	for from := 0; from < len(records); from += chInsertBatch {
		to := min(from+chInsertBatch, len(records))
		q, args, err := s.insertQuery(runID, computedAt, records[from:to])
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			s.l.Error("clickhouse insert failed",
				applogger.String("table", s.table),
				applogger.Int("offset", from),
				applogger.Error(err),
			)
			return fmt.Errorf("insert risk history: %w", err)
		}
	}

	s.l.Info("clickhouse insert ok",
		applogger.String("table", s.table),
		applogger.String("run_id", runID),
		applogger.Int("rows", len(records)),
		applogger.Duration("duration", time.Since(start)),
	)
	return nil
}

func (s *CHRiskSink) insertQuery(runID string, computedAt time.Time, records []models.DailyRisk) (string, []interface{}, error) {
	b := sq.Insert(s.table).
		Columns("run_id", "date", "risk", "yield_curve", "computed_at").
		PlaceholderFormat(sq.Question)
	for _, r := range records {
		var yc interface{}
		if r.YieldCurve != nil {
			yc = *r.YieldCurve
		}
		b = b.Values(runID, r.Date, r.Risk, yc, computedAt)
	}
	return b.ToSql()
}

func (s *CHRiskSink) Close() error { return nil }
