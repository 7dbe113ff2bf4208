package market

// knownBrokers is the comparison table of retail brokers with their typical
// spread over the exchange price. Quotes are derived from the reference
// price, real per-broker feeds are out of scope for now.
var knownBrokers = []struct {
	Name   string
	FeePct float64
}{
	{"Binance", 0.10},
	{"Kraken", 0.26},
	{"Coinbase", 1.49},
	{"Bitpanda", 1.49},
	{"Revolut", 1.99},
}

// BrokerQuotes derives per-broker quotes from a reference EUR price.
func BrokerQuotes(referencePrice float64) []BrokerQuote {
	if referencePrice <= 0 {
		return nil
	}
	quotes := make([]BrokerQuote, 0, len(knownBrokers))
	for _, b := range knownBrokers {
		quotes = append(quotes, BrokerQuote{
			Broker:   b.Name,
			PriceEUR: referencePrice * (1 + b.FeePct/100),
			FeePct:   b.FeePct,
		})
	}
	return quotes
}
