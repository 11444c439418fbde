package api

import (
	"context"
	"errors"
	"time"

	"StockPulse/internal/domain/models"
	"StockPulse/internal/service/metrics"
	"StockPulse/internal/usecase"
	xhttp "StockPulse/pkg/http"
	xlogger "StockPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

type Predictor interface {
	Predict(ctx context.Context, p usecase.PredictParams) (*models.PredictionResult, error)
}

type SentimentReader interface {
	Summary(ctx context.Context, symbol string) (*models.SentimentSummary, error)
}

// PredictionHandler serves the prediction and sentiment endpoints.
type PredictionHandler struct {
	logger    *xlogger.Logger
	predictor Predictor
	sentiment SentimentReader
	metrics   *metrics.APIMetrics
}

func NewPredictionHandler(logger *xlogger.Logger, predictor Predictor, sentiment SentimentReader, m *metrics.APIMetrics) *PredictionHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	return &PredictionHandler{logger: logger, predictor: predictor, sentiment: sentiment, metrics: m}
}

func (h *PredictionHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/predict", h.Predict)
	g.GET("/sentiment", h.Sentiment)
}

func (h *PredictionHandler) Predict(c echo.Context) error {
	start := time.Now()
	req := &models.PredictRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		h.metrics.Observe("predict", "ERR_VALIDATION", time.Since(start))
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.predictor.Predict(c.Request().Context(), usecase.PredictParams{Symbol: req.Ticker})
	if err != nil {
		appErr := toAppError(err, req.Ticker)
		h.metrics.Observe("predict", appErr.Code, time.Since(start))
		h.logger.Error("predict usecase error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, appErr)
	}
	h.metrics.Observe("predict", "ok", time.Since(start))
	return xhttp.SuccessResponse(c, res)
}

func (h *PredictionHandler) Sentiment(c echo.Context) error {
	start := time.Now()
	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		h.metrics.Observe("sentiment", "ERR_VALIDATION", time.Since(start))
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.sentiment.Summary(c.Request().Context(), req.Ticker)
	if err != nil {
		appErr := toAppError(err, req.Ticker)
		h.metrics.Observe("sentiment", appErr.Code, time.Since(start))
		h.logger.Error("sentiment usecase error", xlogger.String("ticker", req.Ticker), xlogger.Error(err))
		return xhttp.AppErrorResponse(c, appErr)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=60")
	h.metrics.Observe("sentiment", "ok", time.Since(start))
	return xhttp.SuccessResponse(c, res)
}

func toAppError(err error, ticker string) *xhttp.AppError {
	switch {
	case errors.Is(err, usecase.ErrSymbolRequired):
		return xhttp.BadRequestErrorf("ticker is required").WithError(err)
	case errors.Is(err, usecase.ErrNoPriceData):
		return xhttp.NotFoundErrorf("no price data for %s", ticker).WithError(err)
	case errors.Is(err, usecase.ErrInsufficientHistory):
		return xhttp.UnprocessableErrorf("not enough price history for %s", ticker).WithError(err)
	default:
		return xhttp.BadGatewayErrorf("upstream data unavailable for %s", ticker).WithError(err)
	}
}
