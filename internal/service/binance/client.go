package binance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"CandlePull/internal/domain/models"
	xhttp "CandlePull/pkg/http"
	applogger "CandlePull/pkg/logger"
)

const klinesPath = "/api/v3/klines"

// Client fetches kline bars from the Binance spot REST API.
// https://binance-docs.github.io/apidocs/spot/en/#kline-candlestick-data
type Client struct {
	baseURL string
	httpc   *xhttp.Client
	l       *applogger.Logger
}

// New creates a Binance candle source.
func New(baseURL string, httpc *xhttp.Client, l *applogger.Logger) *Client {
	return &Client{baseURL: baseURL, httpc: httpc, l: l}
}

// apiError is the error payload Binance returns instead of a kline array,
// e.g. {"code":-1121,"msg":"Invalid symbol."}.
type apiError struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// FetchCandles performs one GET against the klines endpoint and decodes
// the response into candles in exchange-reported chronological order.
// No limit is requested; the exchange default page size applies.
//
// Failures are classified: transport errors and non-2xx statuses are
// network failures, anything wrong with the payload shape is a parse
// failure. An unknown symbol produces an exchange error object, which is
// detected here rather than decoded into bogus candles.
func (c *Client) FetchCandles(ctx context.Context, symbol string, interval string) ([]models.Candle, error) {
	var body []byte
	err := c.httpc.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: "GET",
		URL:    c.baseURL + klinesPath,
		QueryParams: map[string]string{
			"symbol":   symbol,
			"interval": interval,
		},
	}, &body)
	if err != nil {
		var se *xhttp.StatusError
		if errors.As(err, &se) {
			// The exchange signals a bad symbol with a 4xx plus an
			// error object; surface that as a parse failure so the
			// caller can tell it apart from connectivity problems.
			if ae, ok := decodeAPIError([]byte(se.Body)); ok {
				return nil, models.NewPairError(models.FailureParse, symbol,
					fmt.Errorf("exchange error %d: %s", ae.Code, ae.Msg))
			}
			return nil, models.NewPairError(models.FailureNetwork, symbol, se)
		}
		return nil, models.NewPairError(models.FailureNetwork, symbol, err)
	}

	candles, err := decodeKlines(body)
	if err != nil {
		return nil, models.NewPairError(models.FailureParse, symbol, err)
	}

	c.l.Debug("klines fetched",
		applogger.String("symbol", symbol),
		applogger.String("interval", interval),
		applogger.Int("candles", len(candles)),
	)
	return candles, nil
}

// decodeKlines validates the array-of-arrays shape before extracting the
// open time (index 0) and close price (index 4) of each row.
func decodeKlines(body []byte) ([]models.Candle, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response body")
	}
	if trimmed[0] == '{' {
		if ae, ok := decodeAPIError(trimmed); ok {
			return nil, fmt.Errorf("exchange error %d: %s", ae.Code, ae.Msg)
		}
		return nil, fmt.Errorf("expected kline array, got JSON object")
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return nil, fmt.Errorf("decode kline array: %w", err)
	}

	candles := make([]models.Candle, 0, len(rows))
	for i, row := range rows {
		var cells []json.RawMessage
		if err := json.Unmarshal(row, &cells); err != nil {
			return nil, fmt.Errorf("kline row %d is not an array: %w", i, err)
		}
		if len(cells) < 5 {
			return nil, fmt.Errorf("kline row %d has %d elements, want at least 5", i, len(cells))
		}

		var openTime int64
		if err := json.Unmarshal(cells[0], &openTime); err != nil {
			return nil, fmt.Errorf("kline row %d open time: %w", i, err)
		}

		// Prices come as decimal strings.
		var closeStr string
		if err := json.Unmarshal(cells[4], &closeStr); err != nil {
			return nil, fmt.Errorf("kline row %d close: %w", i, err)
		}
		closePrice, err := strconv.ParseFloat(closeStr, 64)
		if err != nil {
			return nil, fmt.Errorf("kline row %d close %q: %w", i, closeStr, err)
		}

		candles = append(candles, models.Candle{OpenTime: openTime, Close: closePrice})
	}
	return candles, nil
}

func decodeAPIError(b []byte) (*apiError, bool) {
	var ae apiError
	if err := json.Unmarshal(b, &ae); err != nil {
		return nil, false
	}
	if ae.Msg == "" && ae.Code == 0 {
		return nil, false
	}
	return &ae, true
}
