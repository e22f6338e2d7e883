package handlers

import (
	"net/http"

	apperrors "github.com/cryptolio/backend/internal/errors"
	"github.com/cryptolio/backend/internal/services"
)

type MarketDataHandler struct {
	service services.MarketDataService
}

func NewMarketDataHandler(service services.MarketDataService) *MarketDataHandler {
	return &MarketDataHandler{service: service}
}

// HandleCurrentPrice handles GET /api/v1/market/price/current?symbol=BTC.
func (h *MarketDataHandler) HandleCurrentPrice(w http.ResponseWriter, r *http.Request) {
	symbol, ok := requireSymbol(w, r)
	if !ok {
		return
	}

	price, err := h.service.GetCurrentPrice(r.Context(), symbol)
	if err != nil {
		writeError(w, err)
		return
	}
	if price == nil {
		writeError(w, apperrors.NewNotFound("current price for "+symbol))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"symbol": symbol, "price": price})
}

// HandleOpeningAverage handles GET /api/v1/market/price/opening?symbol=BTC.
func (h *MarketDataHandler) HandleOpeningAverage(w http.ResponseWriter, r *http.Request) {
	symbol, ok := requireSymbol(w, r)
	if !ok {
		return
	}

	average, err := h.service.GetOpeningAverage(r.Context(), symbol)
	if err != nil {
		writeError(w, err)
		return
	}
	if average == nil {
		writeError(w, apperrors.NewNotFound("opening average for "+symbol))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"symbol": symbol, "average": average})
}

// HandlePriceHistory handles GET /api/v1/market/price/history?symbol=BTC&limit=50.
func (h *MarketDataHandler) HandlePriceHistory(w http.ResponseWriter, r *http.Request) {
	symbol, ok := requireSymbol(w, r)
	if !ok {
		return
	}

	prices, err := h.service.GetPriceHistory(r.Context(), symbol, queryLimit(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prices)
}

func requireSymbol(w http.ResponseWriter, r *http.Request) (string, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return "", false
	}
	symbol := r.URL.Query().Get("symbol")
	if symbol == "" {
		writeError(w, apperrors.NewValidation("symbol", "is required"))
		return "", false
	}
	return symbol, true
}
