package usecase

import (
	"context"
	"fmt"
	"time"

	"RiskFill/internal/domain/models"
	drepo "RiskFill/internal/domain/repository"
	"RiskFill/pkg/logger"
	"RiskFill/pkg/util"

	"github.com/google/uuid"
)

// BackfillResult describes one completed run.
type BackfillResult struct {
	RunID   string
	Start   time.Time
	End     time.Time
	Records []models.DailyRisk
}

// Latest returns the most recent record, if any.
func (r *BackfillResult) Latest() (models.DailyRisk, bool) {
	if len(r.Records) == 0 {
		return models.DailyRisk{}, false
	}
	return r.Records[len(r.Records)-1], true
}

// BackfillUseCase builds the history and hands it to every sink.
type BackfillUseCase struct {
	builder *HistoryBuilder
	sinks   []drepo.RiskSink
	metrics drepo.Metrics
	log     *logger.Logger
	newID   func() string
}

func NewBackfillUseCase(builder *HistoryBuilder, sinks []drepo.RiskSink, metrics drepo.Metrics, l *logger.Logger) *BackfillUseCase {
	if l == nil {
		l = logger.Nop()
	}
	return &BackfillUseCase{
		builder: builder,
		sinks:   sinks,
		metrics: metrics,
		log:     l,
		newID:   func() string { return uuid.NewString() },
	}
}

// Run backfills [start, end]. A sink failure fails the run.
func (uc *BackfillUseCase) Run(ctx context.Context, start, end time.Time) (*BackfillResult, error) {
	runID := uc.newID()
	log := uc.log.With(logger.String("run_id", runID))
	log.Info("backfill started",
		logger.String("start", util.FormatDate(start)),
		logger.String("end", util.FormatDate(end)),
	)

	records, err := uc.builder.Build(ctx, start, end)
	if err != nil {
		uc.recordError("build")
		return nil, err
	}

	for _, sink := range uc.sinks {
		began := time.Now()
		if err := sink.Write(ctx, runID, records); err != nil {
			uc.recordError("sink")
			return nil, fmt.Errorf("write %s: %w", sink.Name(), err)
		}
		if uc.metrics != nil {
			uc.metrics.RecordRecords(sink.Name(), len(records))
			uc.metrics.RecordLatency("sink_"+sink.Name(), time.Since(began).Seconds())
		}
		log.Info("wrote history", logger.String("sink", sink.Name()), logger.Int("days", len(records)))
	}

	res := &BackfillResult{RunID: runID, Start: util.TruncateDay(start), End: util.TruncateDay(end), Records: records}
	if last, ok := res.Latest(); ok {
		if uc.metrics != nil {
			uc.metrics.RecordLastRisk(last.Risk)
		}
		log.Info("backfill finished",
			logger.Int("days", len(records)),
			logger.String("latest_date", last.DateString()),
			logger.Float64("latest_risk", last.Risk),
		)
	}
	return res, nil
}

func (uc *BackfillUseCase) recordError(kind string) {
	if uc.metrics != nil {
		uc.metrics.RecordError(kind)
	}
}
