package main

import (
	"bufio"
	"log"
	"os"

	"github.com/go-redis/redis/v8"

	"stock-portfolio/config"
	"stock-portfolio/engine"
	"stock-portfolio/menu"
	"stock-portfolio/oracle"
)

func main() {
	cfg := config.Load()

	in := bufio.NewReader(os.Stdin)
	store, err := menu.Login(in, os.Stdout, cfg.DataDir)
	if err != nil {
		log.Fatal("Failed to open portfolio store: ", err)
	}
	defer store.Close()

	var source oracle.PriceSource = oracle.NewQuoteScraper(cfg.QuoteBaseURL)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		source = oracle.NewCachedSource(source, rdb, cfg.CacheTTL)
	}

	menu.Run(in, os.Stdout, engine.New(store, source))
}
