package pricecache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"cryptoherald/internal/market"
	"cryptoherald/pkg/logger"
)

const (
	latestKeyPrefix  = "price:latest:"
	historyKeyPrefix = "price:history:"

	// historyLimit bounds the per-symbol history list.
	historyLimit = 200

	entryTTL = 48 * time.Hour
)

// Cache keeps the latest price and a bounded history per symbol in Redis, so
// restarts do not lose the data the chart and suggestion blocks feed on.
type Cache struct {
	logger *logger.Logger
	client *redis.Client
}

func NewCache(addr, password string, db int, logger *logger.Logger) (*Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %s", err)
	}
	logger.Info("Successfully connected to Redis!")

	return &Cache{logger: logger, client: client}, nil
}

func (c *Cache) Close() error {
	return c.client.Close()
}

// StorePrice records a price point as the latest value and appends it to the
// symbol's history.
func (c *Cache) StorePrice(ctx context.Context, price *market.CryptoPrice) error {
	payload, err := json.Marshal(price)
	if err != nil {
		return fmt.Errorf("failed to marshal price: %s", err)
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, latestKeyPrefix+price.Symbol, payload, entryTTL)
	pipe.LPush(ctx, historyKeyPrefix+price.Symbol, payload)
	pipe.LTrim(ctx, historyKeyPrefix+price.Symbol, 0, historyLimit-1)
	pipe.Expire(ctx, historyKeyPrefix+price.Symbol, entryTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store price in Redis: %s", err)
	}
	return nil
}

// LatestPrice returns the most recent price for a symbol, or nil when the
// cache has nothing.
func (c *Cache) LatestPrice(ctx context.Context, symbol string) (*market.CryptoPrice, error) {
	payload, err := c.client.Get(ctx, latestKeyPrefix+symbol).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest price: %s", err)
	}

	var price market.CryptoPrice
	if err := json.Unmarshal(payload, &price); err != nil {
		return nil, fmt.Errorf("failed to unmarshal price: %s", err)
	}
	return &price, nil
}

// PriceHistory returns up to limit price points for a symbol, oldest first.
func (c *Cache) PriceHistory(ctx context.Context, symbol string, limit int) ([]market.CryptoPrice, error) {
	if limit <= 0 || limit > historyLimit {
		limit = historyLimit
	}

	entries, err := c.client.LRange(ctx, historyKeyPrefix+symbol, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get price history: %s", err)
	}

	// LPUSH stores newest first, callers expect chronological order.
	history := make([]market.CryptoPrice, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		var price market.CryptoPrice
		if err := json.Unmarshal([]byte(entries[i]), &price); err != nil {
			c.logger.Warn("Skipping unreadable history entry", "symbol", symbol, "error", err)
			continue
		}
		history = append(history, price)
	}
	return history, nil
}
