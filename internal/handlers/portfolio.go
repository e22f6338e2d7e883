package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	apperrors "github.com/cryptolio/backend/internal/errors"
	"github.com/cryptolio/backend/internal/services"
)

type PortfolioHandler struct {
	service services.PortfolioService
}

func NewPortfolioHandler(service services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{service: service}
}

type processRequestBody struct {
	Symbol     string `json:"symbol"`
	Investment string `json:"investment"`
}

// HandleProcess handles GET and POST /api/v1/portfolio/process.
// GET is kept for backwards compatibility with old clients that pass
// symbol and investment as query parameters.
func (h *PortfolioHandler) HandleProcess(w http.ResponseWriter, r *http.Request) {
	var symbol, rawInvestment string

	switch r.Method {
	case http.MethodGet:
		symbol = r.URL.Query().Get("symbol")
		rawInvestment = r.URL.Query().Get("investment")
	case http.MethodPost:
		var body processRequestBody
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, apperrors.NewValidation("body", "invalid JSON payload"))
			return
		}
		symbol = body.Symbol
		rawInvestment = body.Investment
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if symbol == "" {
		writeError(w, apperrors.NewValidation("symbol", "is required"))
		return
	}
	investment, err := decimal.NewFromString(rawInvestment)
	if err != nil {
		writeError(w, apperrors.NewValidation("investment", "must be a decimal number"))
		return
	}

	result, err := h.service.ProcessRequest(r.Context(), symbol, investment)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleResults handles GET /api/v1/portfolio/results.
func (h *PortfolioHandler) HandleResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	results, err := h.service.GetResults(r.Context(), r.URL.Query().Get("symbol"), queryLimit(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// HandleResult handles GET /api/v1/portfolio/results/{id}.
func (h *PortfolioHandler) HandleResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeError(w, apperrors.NewValidation("id", "must be a positive integer"))
		return
	}

	result, err := h.service.GetResult(r.Context(), uint(id))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleLogs handles GET /api/v1/portfolio/logs.
func (h *PortfolioHandler) HandleLogs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	logs, err := h.service.GetLogs(r.Context(), r.URL.Query().Get("symbol"), queryLimit(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func queryLimit(r *http.Request) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			return limit
		}
	}
	return 100
}
