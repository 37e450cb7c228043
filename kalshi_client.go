package main

import (
	"context"

	"Kalshibot/kalshi"

	"github.com/rs/zerolog"
)

func NewKalshiClient(cfg Config) (*kalshi.Client, error) {
	endpoint, err := cfg.Endpoint()
	if err != nil {
		return nil, err
	}
	signer, err := kalshi.LoadSigner(cfg.APIKeyID, cfg.PrivateKeyPath)
	if err != nil {
		return nil, err
	}
	return kalshi.NewClient(endpoint, signer, cfg.Timeout), nil
}

type BalanceReader interface {
	GetBalance(ctx context.Context) (*kalshi.Balance, error)
}

// logBalance reports the cash available before the quick trade. A failed read
// is only a warning; the order calls surface real auth problems.
func logBalance(ctx context.Context, client BalanceReader, log zerolog.Logger) {
	balance, err := client.GetBalance(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("balance unavailable")
		return
	}
	log.Info().
		Str("balance", kalshi.CentsToDollars(balance.Balance).StringFixed(2)).
		Str("portfolio_value", kalshi.CentsToDollars(balance.PortfolioValue).StringFixed(2)).
		Msg("Account balance")
}
