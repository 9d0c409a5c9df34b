package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mtlprog/cexstat/internal/binance"
	"github.com/mtlprog/cexstat/internal/domain"
	"github.com/mtlprog/cexstat/internal/portfolio"
	"github.com/mtlprog/cexstat/internal/tracker"
)

const (
	defaultKlineInterval = "1d"
	defaultKlineLimit    = 500
	maxKlineLimit        = 1000
)

// PortfolioService defines the tracker operations exposed over HTTP.
type PortfolioService interface {
	Portfolio(ctx context.Context) (domain.PortfolioData, time.Time, error)
	Refresh(ctx context.Context) (domain.PortfolioData, time.Time, error)
	Holding(ctx context.Context, asset string) (domain.HoldingDetail, error)
}

// KlineSource provides chart data.
type KlineSource interface {
	Klines(ctx context.Context, symbol, interval string, limit int) ([]domain.Kline, error)
}

// Handler provides HTTP endpoints for the portfolio API.
type Handler struct {
	portfolio PortfolioService
	market    KlineSource
}

// NewHandler creates a new API handler.
func NewHandler(portfolio PortfolioService, market KlineSource) *Handler {
	return &Handler{portfolio: portfolio, market: market}
}

type portfolioResponse struct {
	domain.PortfolioData
	RefreshedAt time.Time `json:"refreshedAt"`
}

type holdingResponse struct {
	domain.HoldingDetail
	Chart []domain.Kline `json:"chart"`
}

// GetPortfolio handles GET /api/v1/portfolio.
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	data, refreshedAt, err := h.portfolio.Portfolio(r.Context())
	if err != nil {
		logger(r).Error("failed to load portfolio", "error", err)
		writeError(w, http.StatusBadGateway, "failed to load portfolio")
		return
	}
	writeJSON(w, http.StatusOK, portfolioResponse{PortfolioData: data, RefreshedAt: refreshedAt})
}

// RefreshPortfolio handles POST /api/v1/portfolio/refresh.
func (h *Handler) RefreshPortfolio(w http.ResponseWriter, r *http.Request) {
	data, refreshedAt, err := h.portfolio.Refresh(r.Context())
	if err != nil {
		logger(r).Error("failed to refresh portfolio", "error", err)
		writeError(w, http.StatusBadGateway, "failed to refresh portfolio")
		return
	}
	writeJSON(w, http.StatusOK, portfolioResponse{PortfolioData: data, RefreshedAt: refreshedAt})
}

// GetHolding handles GET /api/v1/holdings/{asset}.
func (h *Handler) GetHolding(w http.ResponseWriter, r *http.Request) {
	asset := strings.ToUpper(r.PathValue("asset"))
	detail, err := h.portfolio.Holding(r.Context(), asset)
	if err != nil {
		if errors.Is(err, tracker.ErrHoldingNotFound) {
			writeError(w, http.StatusNotFound, "asset not held: "+asset)
			return
		}
		logger(r).Error("failed to load holding", "asset", asset, "error", err)
		writeError(w, http.StatusBadGateway, "failed to load holding")
		return
	}
	writeJSON(w, http.StatusOK, holdingResponse{
		HoldingDetail: detail,
		Chart:         portfolio.ChartPoints(detail.Timeline),
	})
}

// GetKlines handles GET /api/v1/klines.
func (h *Handler) GetKlines(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	symbol := strings.ToUpper(q.Get("symbol"))
	if symbol == "" {
		writeError(w, http.StatusBadRequest, "symbol query parameter is required")
		return
	}

	interval := q.Get("interval")
	if interval == "" {
		interval = defaultKlineInterval
	}

	limit := defaultKlineLimit
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxKlineLimit)
	}

	klines, err := h.market.Klines(r.Context(), symbol, interval, limit)
	if err != nil {
		if errors.Is(err, binance.ErrInvalidInterval) {
			writeError(w, http.StatusBadRequest, "invalid interval: "+interval)
			return
		}
		logger(r).Error("failed to fetch klines", "symbol", symbol, "interval", interval, "error", err)
		writeError(w, http.StatusBadGateway, "failed to fetch klines")
		return
	}
	writeJSON(w, http.StatusOK, klines)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
