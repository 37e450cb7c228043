package main

import (
	"context"
	"fmt"
	"time"

	"Kalshibot/kalshi"

	"github.com/rs/zerolog"
)

// LiveExecution is what the quick trade sends with every order. It ignores
// Config.DryRun: the quick trade is a live round trip.
var LiveExecution = ExecutionOptions{DryRun: false}

// QuickTrade buys on the first open market of a series, waits SellDelay and
// sells the same contracts back.
type QuickTrade struct {
	cfg      Config
	exchange Exchange
	log      zerolog.Logger

	Execution ExecutionOptions
	Delay     time.Duration
	Sleep     func(ctx context.Context, d time.Duration)
}

func NewQuickTrade(cfg Config, exchange Exchange, log zerolog.Logger) *QuickTrade {
	return &QuickTrade{
		cfg:       cfg,
		exchange:  exchange,
		log:       log,
		Execution: LiveExecution,
		Delay:     SellDelay,
		Sleep:     sleep,
	}
}

// Run returns the process exit code.
func (q *QuickTrade) Run(ctx context.Context) (code int) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Error().Str("panic", fmt.Sprint(r)).Msg("Quick trade failed")
			code = ExitFailure
		}
	}()

	if q.cfg.DryRun && !q.Execution.DryRun {
		q.log.Warn().Msg("DRY_RUN is set but the quick trade places live orders")
	}

	markets, err := q.exchange.FetchOpenMarkets(ctx, q.cfg.SeriesTicker, q.cfg.MaxMarkets)
	if err != nil {
		q.log.Error().Err(err).Str("series", q.cfg.SeriesTicker).Msg("Quick trade failed")
		return ExitFailure
	}
	if len(markets) == 0 {
		q.log.Error().Str("series", q.cfg.SeriesTicker).Msg("No open markets found")
		return ExitFailure
	}

	ticker := markets[0].Ticker
	side := q.cfg.Side
	count := ClampCount(q.cfg.Contracts)
	price := ClampPrice(q.cfg.PriceCents)

	q.log.Info().
		Str("ticker", ticker).
		Str("side", string(side)).
		Int("count", count).
		Int("price_cents", price).
		Str("max_cost", kalshi.OrderCost(count, price).StringFixed(2)).
		Msg("Placing buy order")

	buy := q.exchange.PlaceBuyOrder(ctx, ticker, side, count, price, q.Execution)
	if !buy.OK() {
		q.log.Error().Err(buy.Err).Str("ticker", ticker).Msg("Buy failed")
		return ExitFailure
	}
	q.log.Info().Str("order_id", buy.OrderID).Msgf("Buy placed: %s", buy.OrderID)

	q.log.Info().Dur("delay", q.Delay).Msg("Waiting before sell")
	q.Sleep(ctx, q.Delay)

	sell := q.exchange.PlaceSellOrder(ctx, ticker, side, count, q.Execution)
	if !sell.OK() {
		q.log.Error().Err(sell.Err).Str("ticker", ticker).Msg("Sell failed")
		return ExitFailure
	}
	q.log.Info().Str("order_id", sell.OrderID).Msgf("Sell placed: %s", sell.OrderID)
	return ExitOK
}

func ClampCount(count int) int {
	return max(count, 1)
}

func ClampPrice(priceCents int) int {
	return min(max(priceCents, kalshi.MinPriceCents), kalshi.MaxPriceCents)
}

// sleep waits for d. A cancelled ctx ends the wait early.
func sleep(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
