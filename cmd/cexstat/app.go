package main

import (
	"fmt"

	"github.com/mtlprog/cexstat/internal/binance"
	"github.com/mtlprog/cexstat/internal/config"
	"github.com/mtlprog/cexstat/internal/portfolio"
	"github.com/mtlprog/cexstat/internal/price"
	"github.com/mtlprog/cexstat/internal/tracker"
)

// deps are the services shared by every command.
type deps struct {
	cfg     config.Config
	client  *binance.Client
	calc    *portfolio.Calculator
	tracker *tracker.Service
}

func newDeps() (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	setupLogger(cfg.LogLevel)

	client := binance.NewClient(cfg.BinanceURL, cfg.BinanceAPIKey, cfg.BinanceAPISecret,
		cfg.BinanceRetryMax, cfg.BinanceRetryBaseDelay)
	priceSvc := price.NewService(client, cfg.PriceCacheTTL)
	calc := portfolio.NewCalculator(cfg.QuoteAsset, cfg.DustThreshold)

	trackerSvc := tracker.NewService(client, priceSvc, calc, tracker.Options{
		StableAssets: cfg.StableAssets,
		Concurrency:  cfg.FetchConcurrency,
	})

	return &deps{
		cfg:     cfg,
		client:  client,
		calc:    calc,
		tracker: trackerSvc,
	}, nil
}
