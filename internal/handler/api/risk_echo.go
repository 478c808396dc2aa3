package api

import (
	"context"
	"errors"
	"time"

	models "RiskFill/internal/domain/models"
	"RiskFill/internal/service/fred"
	"RiskFill/internal/services/risk"
	xhttp "RiskFill/pkg/http"
	xlogger "RiskFill/pkg/logger"
	"RiskFill/pkg/util"

	"github.com/labstack/echo/v4"
)

// maxHistoryDays bounds one on-demand history request.
const maxHistoryDays = 3660

type historyBuilder interface {
	Build(ctx context.Context, start, end time.Time) ([]models.DailyRisk, error)
}

// RiskEchoHandler serves risk history and one-off scoring over Echo.
type RiskEchoHandler struct {
	logger     *xlogger.Logger
	builder    historyBuilder
	windowDays int
	now        func() time.Time
}

func NewRiskEchoHandler(logger *xlogger.Logger, builder historyBuilder, windowDays int) *RiskEchoHandler {
	return &RiskEchoHandler{logger: logger, builder: builder, windowDays: windowDays, now: time.Now}
}

func (h *RiskEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api/risk")
	g.GET("/history", h.History)
	g.POST("/score", h.Score)
}

// History builds the daily risk history for [start, end].
// Missing bounds default to the configured trailing window.
func (h *RiskEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	defStart, defEnd := util.TrailingWindow(h.now(), h.windowDays)
	start := util.ParseDateDefault(req.Start, defStart)
	end := util.ParseDateDefault(req.End, defEnd)
	if util.DaysInclusive(start, end) > maxHistoryDays {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("start", "range must not exceed %d days", maxHistoryDays).
			WithParam("max", maxHistoryDays))
	}

	records, err := h.builder.Build(c.Request().Context(), start, end)
	if err != nil {
		return h.errorResponse(c, "history", err)
	}
	return xhttp.ListResponse(c, records, int64(len(records)))
}

// Score scores a single set of readings.
func (h *RiskEchoHandler) Score(c echo.Context) error {
	req := &models.ScoreRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	return xhttp.SuccessResponse(c, risk.Score(req.ToReadings()))
}

func (h *RiskEchoHandler) errorResponse(c echo.Context, op string, err error) error {
	var re *fred.RetrievalError
	switch {
	case errors.Is(err, risk.ErrInvalidRange):
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError("start", "start must not be after end").WithError(err))
	case errors.As(err, &re):
		h.logger.Warn(op+" upstream error", xlogger.String("series", re.SeriesID), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.UpstreamError("failed to retrieve series").
			WithParam("series", re.SeriesID).WithError(err))
	default:
		h.logger.Error(op+" usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.InternalError("internal error").WithError(err))
	}
}
