package kalshi

const (
	ProdHost = "api.elections.kalshi.com"
	DemoHost = "demo-api.kalshi.co"

	ProdEndpoint = "https://" + ProdHost
	DemoEndpoint = "https://" + DemoHost

	APIPrefix = "/trade-api/v2"
	WSPath    = "/trade-api/ws/v2"
)

const (
	MarketsEndpoint = "/markets"
	OrdersEndpoint  = "/portfolio/orders"
	BalanceEndpoint = "/portfolio/balance"
)

const (
	MinPriceCents = 1
	MaxPriceCents = 99
)

const (
	AuthUnavailable  = "kalshi: API key id and private key are needed to interact with this endpoint"
	DefaultUserAgent = "kalshibot"
	MarketStatusOpen = "open"
	FillChannel      = "fill"
)
