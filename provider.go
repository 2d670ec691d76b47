package foliotrack

// Quote holds the data returned by a market-data provider for a single
// security: the current price in the security's own currency, and the
// currency and display name the provider declares for it (both optional,
// empty when the provider does not know them).
type Quote struct {
	Price    float64
	Currency string
	Name     string
}

// MarketData is the market-data provider collaborator. Implementations
// may fail or return stale data; the engine treats every failure as a
// soft, per-security condition.
type MarketData interface {
	Quote(ticker string) (Quote, error)
}
