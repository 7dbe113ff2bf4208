package market

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"cryptoherald/pkg/logger"
)

const (
	binanceBaseURL = "https://api.binance.com"

	// HistoryPoints is how many hourly candles are kept per symbol.
	HistoryPoints = 48
)

// tickerResponse represents the Binance 24hr ticker statistics payload.
type tickerResponse struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	PriceChangePercent string `json:"priceChangePercent"`
	QuoteVolume        string `json:"quoteVolume"`
}

// BinanceProvider fetches market data from the Binance public REST API.
// Prices are requested against EUR pairs first, with a USDT fallback for
// symbols that have no EUR market.
type BinanceProvider struct {
	logger *logger.Logger

	baseURL string
	client  *http.Client
}

func NewBinanceProvider(logger *logger.Logger) *BinanceProvider {
	return &BinanceProvider{
		logger:  logger,
		baseURL: binanceBaseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// FetchMarketData returns the current market snapshot for a symbol.
func (b *BinanceProvider) FetchMarketData(symbol string) (*MarketData, error) {
	ticker, pair, err := b.fetchTicker(symbol)
	if err != nil {
		return nil, err
	}

	price, err := strconv.ParseFloat(ticker.LastPrice, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse last price %q: %s", ticker.LastPrice, err)
	}

	current := &CryptoPrice{
		Symbol:    symbol,
		PriceEUR:  price,
		Timestamp: time.Now(),
	}
	data := &MarketData{
		Symbol:       symbol,
		CurrentPrice: current,
	}
	if change, err := strconv.ParseFloat(ticker.PriceChangePercent, 64); err == nil {
		data.PriceChange24h = &change
		current.Change24h = change
	}
	if volume, err := strconv.ParseFloat(ticker.QuoteVolume, 64); err == nil {
		data.Volume24h = &volume
		current.Volume24h = volume
	}

	history, err := b.fetchHistory(pair)
	if err != nil {
		// History is optional, blocks that need it are skipped without it.
		b.logger.Warn("Failed to fetch price history", "symbol", symbol, "error", err)
	} else {
		data.PriceHistory = history
	}

	return data, nil
}

// fetchTicker tries the EUR pair first, then falls back to USDT.
func (b *BinanceProvider) fetchTicker(symbol string) (*tickerResponse, string, error) {
	for _, quote := range []string{"EUR", "USDT"} {
		pair := symbol + quote
		url := fmt.Sprintf("%s/api/v3/ticker/24hr?symbol=%s", b.baseURL, pair)

		resp, err := b.client.Get(url)
		if err != nil {
			return nil, "", fmt.Errorf("failed to fetch ticker: %s", err)
		}

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			resp.Body.Close()
			if resp.StatusCode == http.StatusBadRequest {
				// Unknown pair, try the next quote currency.
				continue
			}
			return nil, "", fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
		}

		var ticker tickerResponse
		if err := json.NewDecoder(resp.Body).Decode(&ticker); err != nil {
			resp.Body.Close()
			return nil, "", fmt.Errorf("failed to decode ticker response: %s", err)
		}
		resp.Body.Close()

		return &ticker, pair, nil
	}

	return nil, "", fmt.Errorf("no EUR or USDT market for symbol %s", symbol)
}

// fetchHistory returns the last HistoryPoints hourly closes for a pair.
func (b *BinanceProvider) fetchHistory(pair string) ([]CryptoPrice, error) {
	url := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=1h&limit=%d", b.baseURL, pair, HistoryPoints)

	resp, err := b.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch klines: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	// Each kline is a mixed-type array, close price is at index 4.
	var klines [][]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&klines); err != nil {
		return nil, fmt.Errorf("failed to decode klines response: %s", err)
	}

	history := make([]CryptoPrice, 0, len(klines))
	for _, k := range klines {
		if len(k) < 5 {
			continue
		}
		openTime, ok := k[0].(float64)
		if !ok {
			continue
		}
		closeStr, ok := k[4].(string)
		if !ok {
			continue
		}
		closePrice, err := strconv.ParseFloat(closeStr, 64)
		if err != nil {
			continue
		}
		history = append(history, CryptoPrice{
			Symbol:    pair,
			PriceEUR:  closePrice,
			Timestamp: time.UnixMilli(int64(openTime)),
		})
	}

	return history, nil
}
