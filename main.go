package main

import (
	"flag"
	"os"
	"time"

	"github.com/ammcap/Ammlytics/cache"
	"github.com/ammcap/Ammlytics/loader"
	"github.com/ammcap/Ammlytics/model"
	"github.com/ammcap/Ammlytics/server"
	"github.com/ammcap/Ammlytics/store"
	"github.com/ammcap/Ammlytics/utils"
	"github.com/ammcap/Ammlytics/views"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	var chainCfgPath = flag.String("chainCfg", "./config/sonic.json", "Chain configuration file")
	var listenAddr = flag.String("listen", ":8080", "HTTP listen address")
	var staticDir = flag.String("staticDir", "./static", "Dashboard asset directory (empty to disable)")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg := loader.LoadChainConfig(*chainCfgPath)
	onChain := loader.NewOnChainLoader(cfg)

	memCache := cache.New(cfg.PriceCacheTTL())
	tokens := model.NewTokenDirectory(onChain, memCache)

	var feed *loader.PriceFeed
	if cfg.PriceFeedURL != "" {
		feed = loader.NewPriceFeed(cfg.PriceFeedURL)
	}
	oracle := model.NewPriceOracle(onChain, feed, tokens, memCache)

	if addr := utils.GoDotEnvVariable("LISTEN_ADDR"); addr != "" {
		*listenAddr = addr
	}

	databaseURL := utils.GoDotEnvVariable("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}
	baselines, err := store.Open(databaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open baseline database")
	}
	defer baselines.Close()
	if err := baselines.EnsureSchema(); err != nil {
		log.Fatal().Err(err).Msg("Failed to ensure baseline schema")
	}

	v := views.New(onChain, oracle, tokens, baselines)

	apiServer := &server.APIWebServer{Views: v, StaticDir: *staticDir}
	apiServer.Serve(*listenAddr)
}
