package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/cryptolio/backend/internal/models"
)

const (
	krakenBaseURL = "https://api.kraken.com/0/public"
	krakenTimeout = 30 * time.Second

	// DefaultOHLCDays is the lookback window for historical fetches.
	DefaultOHLCDays = 30
	// DefaultOHLCInterval is the candle interval in seconds (6 hours).
	DefaultOHLCInterval = 21600
)

// KrakenClient is a thin wrapper over the Kraken public OHLC endpoint.
// "Symbol doesn't exist" and "no data" are indistinguishable to callers:
// both come back as nil without an error.
type KrakenClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

var _ ExchangeClient = (*KrakenClient)(nil)

// NewKrakenClient creates an exchange client against the public Kraken API.
func NewKrakenClient(logger *zap.Logger) *KrakenClient {
	return &KrakenClient{
		baseURL:    krakenBaseURL,
		httpClient: &http.Client{Timeout: krakenTimeout},
		logger:     logger,
	}
}

// krakenOHLCResponse mirrors the provider's response envelope. The result
// object is keyed by pair name plus a "last" cursor, and candle rows mix
// numeric and string fields, so both stay raw until parsed.
type krakenOHLCResponse struct {
	Error  []string                   `json:"error"`
	Result map[string]json.RawMessage `json:"result"`
}

// GetHistoricalOHLC fetches candles for the trailing number of days at the
// given interval (seconds). Returns nil with a nil error when the provider
// reports an error, the symbol is unknown, or the request fails.
func (c *KrakenClient) GetHistoricalOHLC(ctx context.Context, symbol string, days, interval int) ([]models.Candle, error) {
	if symbol == "" {
		return nil, nil
	}
	if days <= 0 {
		days = DefaultOHLCDays
	}
	if interval <= 0 {
		interval = DefaultOHLCInterval
	}

	since := time.Now().AddDate(0, 0, -days).Unix()

	params := url.Values{}
	params.Set("pair", fmt.Sprintf("%sUSD", symbol))
	params.Set("interval", strconv.Itoa(interval))
	params.Set("since", strconv.FormatInt(since, 10))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/OHLC?"+params.Encode(), nil)
	if err != nil {
		c.logger.Error("failed to build OHLC request", zap.String("symbol", symbol), zap.Error(err))
		return nil, nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("exchange request failed", zap.String("symbol", symbol), zap.Error(err))
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("exchange returned non-OK status",
			zap.String("symbol", symbol), zap.Int("status", resp.StatusCode))
		return nil, nil
	}

	var payload krakenOHLCResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Error("failed to decode exchange response", zap.String("symbol", symbol), zap.Error(err))
		return nil, nil
	}

	if len(payload.Error) > 0 {
		c.logger.Warn("exchange reported error",
			zap.String("symbol", symbol), zap.Strings("errors", payload.Error))
		return nil, nil
	}
	if payload.Result == nil {
		return nil, nil
	}

	// The result object holds one array per pair key plus a "last" cursor.
	var raw json.RawMessage
	for key, value := range payload.Result {
		if strings.HasPrefix(key, "last") {
			continue
		}
		raw = value
		break
	}
	if raw == nil {
		return nil, nil
	}

	candles, err := parseCandles(raw)
	if err != nil {
		c.logger.Error("failed to parse candle data", zap.String("symbol", symbol), zap.Error(err))
		return nil, nil
	}
	return candles, nil
}

// GetCurrentPrice returns the close of the most recent 1-day candle, or nil
// when no data is available.
func (c *KrakenClient) GetCurrentPrice(ctx context.Context, symbol string) (*decimal.Decimal, error) {
	candles, err := c.GetHistoricalOHLC(ctx, symbol, 1, DefaultOHLCInterval)
	if err != nil {
		return nil, err
	}
	if len(candles) == 0 {
		return nil, nil
	}

	price := decimal.NewFromFloat(candles[len(candles)-1].Close)
	return &price, nil
}

// SymbolExists reports whether the exchange has any recent data for symbol.
func (c *KrakenClient) SymbolExists(ctx context.Context, symbol string) bool {
	candles, err := c.GetHistoricalOHLC(ctx, symbol, 1, DefaultOHLCInterval)
	return err == nil && len(candles) > 0
}

// parseCandles decodes the provider's candle rows:
// [timestamp, open, high, low, close, vwap, volume, count]
// where prices and volume arrive as strings.
func parseCandles(raw json.RawMessage) ([]models.Candle, error) {
	var rows [][]any
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, err
	}

	candles := make([]models.Candle, 0, len(rows))
	for _, row := range rows {
		if len(row) < 7 {
			return nil, fmt.Errorf("candle row has %d fields, want at least 7", len(row))
		}

		ts, err := toInt64(row[0])
		if err != nil {
			return nil, fmt.Errorf("bad candle timestamp: %w", err)
		}

		values := make([]float64, 4)
		for i, idx := range []int{1, 2, 3, 4} {
			v, err := toFloat64(row[idx])
			if err != nil {
				return nil, fmt.Errorf("bad candle price at index %d: %w", idx, err)
			}
			values[i] = v
		}

		volume, err := toFloat64(row[6])
		if err != nil {
			return nil, fmt.Errorf("bad candle volume: %w", err)
		}

		candles = append(candles, models.Candle{
			Timestamp: ts,
			Open:      values[0],
			High:      values[1],
			Low:       values[2],
			Close:     values[3],
			Volume:    volume,
		})
	}
	return candles, nil
}

func toFloat64(v any) (float64, error) {
	switch value := v.(type) {
	case float64:
		return value, nil
	case string:
		return strconv.ParseFloat(value, 64)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

func toInt64(v any) (int64, error) {
	switch value := v.(type) {
	case float64:
		return int64(value), nil
	case string:
		return strconv.ParseInt(value, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}
