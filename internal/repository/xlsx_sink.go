package repository

import (
	"context"
	"fmt"
	"io"

	"RiskFill/internal/domain/models"
	"RiskFill/pkg/logger"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "risk_history"

var xlsxHeader = []interface{}{"date", "risk", "yield_curve"}

// XLSXSink writes the history to a single-sheet workbook.
type XLSXSink struct {
	path string
	l    *logger.Logger
}

func NewXLSXSink(path string, l *logger.Logger) *XLSXSink {
	if l == nil {
		l = logger.Nop()
	}
	return &XLSXSink{path: path, l: l}
}

func (s *XLSXSink) Name() string { return "xlsx" }

func (s *XLSXSink) Write(_ context.Context, runID string, records []models.DailyRisk) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", xlsxSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(xlsxSheet, "A1", &xlsxHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{r.DateString(), r.Risk, nil}
		if r.YieldCurve != nil {
			row[2] = *r.YieldCurve
		}
		if err := f.SetSheetRow(xlsxSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	err := writeFileAtomic(s.path, func(w io.Writer) error {
		_, err := f.WriteTo(w)
		return err
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", s.path, err)
	}
	s.l.Info("history workbook written",
		logger.String("run_id", runID),
		logger.String("path", s.path),
		logger.Int("days", len(records)),
	)
	return nil
}

func (s *XLSXSink) Close() error { return nil }
