package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"cryptoherald/pkg/logger"
)

const fearGreedURL = "https://api.alternative.me/fng/?limit=1"

// fngResponse represents the alternative.me fear and greed payload.
type fngResponse struct {
	Data []struct {
		Value               string `json:"value"`
		ValueClassification string `json:"value_classification"`
		Timestamp           string `json:"timestamp"`
	} `json:"data"`
}

// FearGreedService fetches and caches the crypto fear and greed index.
// The index is market-wide, so one cached value serves every symbol.
type FearGreedService struct {
	logger *logger.Logger
	client *http.Client

	// In-memory cache
	value      *int
	cacheMutex sync.RWMutex

	// Lifecycle management
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewFearGreedService(logger *logger.Logger) *FearGreedService {
	ctx, cancel := context.WithCancel(context.Background())
	return &FearGreedService{
		logger: logger,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
		ctx:    ctx,
		cancel: cancel,
	}
}

// Current returns the cached index, or nil when no fetch has succeeded yet.
func (f *FearGreedService) Current() *int {
	f.cacheMutex.RLock()
	defer f.cacheMutex.RUnlock()
	if f.value == nil {
		return nil
	}
	v := *f.value
	return &v
}

// Refresh fetches the index once and updates the cache.
func (f *FearGreedService) Refresh() error {
	resp, err := f.client.Get(fearGreedURL)
	if err != nil {
		return fmt.Errorf("failed to fetch fear and greed index: %s", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, string(body))
	}

	var payload fngResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fmt.Errorf("failed to decode fear and greed response: %s", err)
	}
	if len(payload.Data) == 0 {
		return fmt.Errorf("fear and greed response contained no data")
	}

	value, err := strconv.Atoi(payload.Data[0].Value)
	if err != nil {
		return fmt.Errorf("failed to parse fear and greed value %q: %s", payload.Data[0].Value, err)
	}

	f.cacheMutex.Lock()
	f.value = &value
	f.cacheMutex.Unlock()

	f.logger.Debug("Fear and greed index updated", "value", value, "classification", payload.Data[0].ValueClassification)
	return nil
}

// StartPeriodicUpdate refreshes the cache hourly until Stop is called.
func (f *FearGreedService) StartPeriodicUpdate() {
	f.wg.Add(1)
	go func() {
		defer f.wg.Done()

		if err := f.Refresh(); err != nil {
			f.logger.Error("Failed to fetch fear and greed index on startup", "error", err)
		}

		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := f.Refresh(); err != nil {
					f.logger.Error("Failed to refresh fear and greed index", "error", err)
				}
			case <-f.ctx.Done():
				f.logger.Info("Fear and greed service stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the background refresh.
func (f *FearGreedService) Stop() {
	f.cancel()
	f.wg.Wait()
}
