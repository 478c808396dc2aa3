package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"RiskFill/internal/domain/models"
	"RiskFill/pkg/logger"
)

// JSONFileSink writes the history as a pretty-printed JSON array of
// {"date","risk"} objects, replacing the file on every run.
type JSONFileSink struct {
	path string
	l    *logger.Logger
}

func NewJSONFileSink(path string, l *logger.Logger) *JSONFileSink {
	if l == nil {
		l = logger.Nop()
	}
	return &JSONFileSink{path: path, l: l}
}

func (s *JSONFileSink) Name() string { return "json" }

// Path returns the output file location.
func (s *JSONFileSink) Path() string { return s.path }

func (s *JSONFileSink) Write(_ context.Context, runID string, records []models.DailyRisk) error {
	if records == nil {
		records = []models.DailyRisk{}
	}
	b, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	err = writeFileAtomic(s.path, func(w io.Writer) error {
		_, err := w.Write(b)
		return err
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	s.l.Info("history file written",
		logger.String("run_id", runID),
		logger.String("path", s.path),
		logger.Int("days", len(records)),
	)
	return nil
}

func (s *JSONFileSink) Close() error { return nil }
