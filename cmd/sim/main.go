package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"EquitySim/internal/analysis"
	"EquitySim/internal/config"
	"EquitySim/internal/market"
	"EquitySim/internal/notifier"
	"EquitySim/internal/scheduler"
	"EquitySim/internal/simulation"

	"github.com/joho/godotenv"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	var (
		watch   = flag.Bool("watch", false, "keep running and re-simulate on the configured cron schedule")
		compare = flag.Bool("compare", false, "also run the multi-asset comparison from compare.symbols")
		list    = flag.Bool("list", false, "print the suggested symbols per asset class and exit")
	)
	flag.Parse()

	if *list {
		for _, class := range config.AssetClasses() {
			fmt.Printf("%-10s %s\n", class, strings.Join(config.Suggestions[class], " "))
		}
		return
	}

	// .env first, so it can feed the env overrides below.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] load .env: %v", err)
	}

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Provider: Yahoo, wrapped in the sqlite cache when configured.
	var provider market.Provider = market.NewYahooProvider(cfg.Proxy)
	if cfg.Database.SQLitePath != "" {
		store, err := market.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] open market cache failed, fetching uncached: %v", err)
		} else {
			defer store.Close()
			provider = market.NewCachingProvider(provider, store)
		}
	}
	log.Printf("[INFO] data source: %s", provider.Name())

	engine := simulation.NewEngine(provider)

	var sink notifier.Notifier = notifier.NewLogNotifier()
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != "" {
		sink = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	}
	log.Printf("[INFO] report sink: %s", sink.Name())

	if *watch {
		runWatch(cfg, engine, provider, sink)
		return
	}
	runOnce(cfg, engine, provider, sink, *compare)
}

// runOnce simulates the configured symbol a single time and delivers the
// report.
func runOnce(cfg *config.Config, engine *simulation.Engine, provider market.Provider, sink notifier.Notifier, compare bool) {
	simCfg, err := cfg.SimulationConfig()
	if err != nil {
		log.Fatalf("[FATAL] simulation config: %v", err)
	}

	res, err := engine.Simulate(cfg.Simulation.Symbol, cfg.Simulation.Period, simCfg)
	if err != nil {
		log.Fatalf("[FATAL] simulate %s: %v", cfg.Simulation.Symbol, err)
	}

	report := notifier.FormatSimulationReport(res)

	if compare && len(cfg.Compare.Symbols) > 1 {
		assets, failed := analysis.FetchAll(provider, cfg.Compare.Symbols, cfg.Simulation.Period)
		report += "\n" + notifier.FormatComparisonReport(assets, failed)
	}

	if err := sink.Send(report); err != nil {
		log.Fatalf("[FATAL] deliver report: %v", err)
	}
}

// runWatch schedules the simulation on the configured cron and blocks until
// a shutdown signal arrives.
func runWatch(cfg *config.Config, engine *simulation.Engine, provider market.Provider, sink notifier.Notifier) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, engine, provider, sink, cfg)
	if err := sched.RegisterAll(); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, simulating now")
		go sched.RunNow()
	}

	log.Println("[INFO] EquitySim is watching. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
}
