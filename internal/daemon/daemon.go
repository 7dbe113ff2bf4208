package daemon

import (
	"context"
	"sync"
	"time"

	"cryptoherald/internal/analysis"
	"cryptoherald/internal/config"
	"cryptoherald/internal/market"
	"cryptoherald/internal/models"
	"cryptoherald/internal/notify"
	"cryptoherald/internal/pricecache"
	"cryptoherald/pkg/logger"
)

const (
	// retentionPeriod is how long notification records and market snapshots
	// are kept before pruning.
	retentionPeriod = 90 * 24 * time.Hour

	pruneInterval = 6 * time.Hour
)

// Herald is the main struct for the application. It runs the polling loop,
// evaluates every tracked symbol against the notification settings and
// dispatches the rendered messages.
type Herald struct {
	logger *logger.Logger
	config *config.Config

	repo        models.Repository
	notificator models.NotificationService
	cache       *pricecache.Cache
	provider    *market.BinanceProvider
	fearGreed   *market.FearGreedService

	settings  *notify.Settings
	generator *notify.Generator

	// lastSentSlot guards against double sends when several polling cycles
	// land in the same hour. Keyed by symbol, value is the day-hour slot.
	lastSentSlot map[string]string
	sentMutex    sync.Mutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewHerald creates a new Herald instance
func NewHerald(
	repo models.Repository,
	notificator models.NotificationService,
	cache *pricecache.Cache,
	provider *market.BinanceProvider,
	fearGreed *market.FearGreedService,
	settings *notify.Settings,
	logger *logger.Logger,
	config *config.Config,
) models.HeraldI {
	ctx, cancel := context.WithCancel(context.Background())
	return &Herald{
		repo:         repo,
		notificator:  notificator,
		cache:        cache,
		provider:     provider,
		fearGreed:    fearGreed,
		settings:     settings,
		generator:    notify.NewGenerator(settings, logger),
		logger:       logger,
		config:       config,
		lastSentSlot: map[string]string{},
		ctx:          ctx,
		cancel:       cancel,
	}
}

// Start starts the polling loop and the background pruning goroutine.
// It blocks until Shutdown is called.
func (h *Herald) Start() {
	if h.fearGreed != nil {
		h.fearGreed.StartPeriodicUpdate()
	}

	// Start a goroutine to prune old records
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		ticker := time.NewTicker(pruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				h.logger.Debug("Pruning old records")
				cutoff := time.Now().Add(-retentionPeriod)
				if err := h.repo.PruneNotifications(cutoff); err != nil {
					h.logger.Error("Failed to prune notification records", "error", err)
				}
				if err := h.repo.PruneSnapshots(cutoff); err != nil {
					h.logger.Error("Failed to prune market snapshots", "error", err)
				}
			case <-h.ctx.Done():
				return
			}
		}
	}()

	h.logger.Info("Starting polling loop", "interval", h.config.PollInterval, "symbols", h.config.Symbols)

	// Evaluate once at startup, then on every tick.
	h.runCycle()

	ticker := time.NewTicker(h.config.PollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			h.runCycle()
		case <-h.ctx.Done():
			h.logger.Info("Polling loop stopped")
			return
		}
	}
}

// Shutdown stops the polling loop and releases resources.
func (h *Herald) Shutdown() {
	h.logger.Info("Shutting down...")
	h.cancel()
	if h.fearGreed != nil {
		h.fearGreed.Stop()
	}
	h.wg.Wait()
}

// TrackedSymbols returns the symbols evaluated each cycle.
func (h *Herald) TrackedSymbols() []string {
	symbols := make([]string, len(h.config.Symbols))
	copy(symbols, h.config.Symbols)
	return symbols
}

// NotificationSettings returns the loaded configuration snapshot.
func (h *Herald) NotificationSettings() *notify.Settings {
	return h.settings
}

// NotificationHistory lists recently sent notifications for a symbol.
func (h *Herald) NotificationHistory(symbol string, limit int) ([]*models.NotificationRecord, error) {
	return h.repo.ListNotifications(symbol, limit)
}

// PreviewNotification renders the notification a symbol would receive at the
// given hour and day of week, without sending or recording anything.
func (h *Herald) PreviewNotification(symbol string, hour, dayOfWeek int) (string, bool, error) {
	snapshot, err := h.collect()
	if err != nil {
		return "", false, err
	}

	in := h.buildInput(symbol, snapshot, hour, dayOfWeek)
	message, ok := h.generator.Generate(in)
	return message, ok, nil
}

// cycleData is everything one polling cycle collected across symbols.
type cycleData struct {
	markets       map[string]*market.MarketData
	predictions   map[string]*market.Prediction
	opportunities map[string]*market.OpportunityScore
}

// runCycle fetches data for every symbol, then evaluates notifications once
// all cross-coin maps are complete.
func (h *Herald) runCycle() {
	snapshot, err := h.collect()
	if err != nil {
		h.logger.Error("Polling cycle failed", "error", err)
		return
	}

	now := time.Now()
	hour := now.Hour()
	// time.Weekday starts on Sunday, schedules count from Monday.
	dayOfWeek := (int(now.Weekday()) + 6) % 7
	slot := now.Format("2006-01-02-15")

	for _, symbol := range h.config.Symbols {
		if h.alreadySent(symbol, slot) {
			continue
		}

		in := h.buildInput(symbol, snapshot, hour, dayOfWeek)
		message, ok := h.generator.Generate(in)
		if !ok {
			continue
		}

		h.logger.Info("Sending notification", "symbol", symbol, "hour", hour)
		h.notificator.SendNotification(symbol, message)
		h.markSent(symbol, slot)
	}
}

// collect fetches market data for every tracked symbol and derives the
// analysis maps. A symbol that fails to fetch is skipped for this cycle.
func (h *Herald) collect() (*cycleData, error) {
	data := &cycleData{
		markets:       map[string]*market.MarketData{},
		predictions:   map[string]*market.Prediction{},
		opportunities: map[string]*market.OpportunityScore{},
	}

	var fearGreed *int
	if h.fearGreed != nil {
		fearGreed = h.fearGreed.Current()
	}

	for _, symbol := range h.config.Symbols {
		md, err := h.provider.FetchMarketData(symbol)
		if err != nil {
			h.logger.Error("Failed to fetch market data", "symbol", symbol, "error", err)
			md = h.fromCache(symbol)
			if md == nil {
				continue
			}
		}
		md.FearGreedIndex = fearGreed

		h.storeCycleData(symbol, md)

		data.markets[symbol] = md
		pred := analysis.Predict(md)
		data.predictions[symbol] = pred
		data.opportunities[symbol] = analysis.ScoreOpportunity(md, pred)
	}

	if len(data.markets) == 0 {
		h.logger.Warn("No market data available this cycle")
	}

	return data, nil
}

// fromCache rebuilds a market snapshot from the price cache when the live
// fetch failed.
func (h *Herald) fromCache(symbol string) *market.MarketData {
	if h.cache == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(h.ctx, 5*time.Second)
	defer cancel()

	latest, err := h.cache.LatestPrice(ctx, symbol)
	if err != nil || latest == nil {
		return nil
	}
	history, err := h.cache.PriceHistory(ctx, symbol, 0)
	if err != nil {
		history = nil
	}

	h.logger.Info("Using cached market data", "symbol", symbol, "age", time.Since(latest.Timestamp))
	md := &market.MarketData{
		Symbol:       symbol,
		CurrentPrice: latest,
		PriceHistory: history,
	}
	if latest.Change24h != 0 {
		change := latest.Change24h
		md.PriceChange24h = &change
	}
	if latest.Volume24h != 0 {
		volume := latest.Volume24h
		md.Volume24h = &volume
	}
	return md
}

// storeCycleData persists the fetched price to the cache and the database.
func (h *Herald) storeCycleData(symbol string, md *market.MarketData) {
	if md.CurrentPrice == nil {
		return
	}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(h.ctx, 5*time.Second)
		if err := h.cache.StorePrice(ctx, md.CurrentPrice); err != nil {
			h.logger.Error("Failed to cache price", "symbol", symbol, "error", err)
		}
		cancel()
	}

	snapshot := &models.MarketSnapshot{
		Symbol:    symbol,
		PriceEUR:  md.CurrentPrice.PriceEUR,
		PriceUSD:  md.CurrentPrice.PriceUSD,
		Timestamp: time.Now(),
	}
	if md.PriceChange24h != nil {
		snapshot.Change24h = *md.PriceChange24h
	}
	if md.Volume24h != nil {
		snapshot.Volume24h = *md.Volume24h
	}
	if err := h.repo.SaveSnapshot(snapshot); err != nil {
		h.logger.Error("Failed to save market snapshot", "symbol", symbol, "error", err)
	}
}

func (h *Herald) buildInput(symbol string, data *cycleData, hour, dayOfWeek int) notify.Input {
	in := notify.Input{
		Symbol:           symbol,
		Market:           data.markets[symbol],
		Prediction:       data.predictions[symbol],
		Opportunity:      data.opportunities[symbol],
		AllMarkets:       data.markets,
		AllPredictions:   data.predictions,
		AllOpportunities: data.opportunities,
		Hour:             hour,
		DayOfWeek:        dayOfWeek,
	}
	if md := in.Market; md != nil && md.CurrentPrice != nil {
		in.Brokers = market.BrokerQuotes(md.CurrentPrice.PriceEUR)
	}
	return in
}

func (h *Herald) alreadySent(symbol, slot string) bool {
	h.sentMutex.Lock()
	defer h.sentMutex.Unlock()
	return h.lastSentSlot[symbol] == slot
}

func (h *Herald) markSent(symbol, slot string) {
	h.sentMutex.Lock()
	defer h.sentMutex.Unlock()
	h.lastSentSlot[symbol] = slot
}
