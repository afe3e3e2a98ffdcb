package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"sysagent/internal/format"
)

func main() {
	setupLogger()
	defer closeLogger()

	configPath := flag.String("config", "config.json", "path to the JSON configuration file")
	flag.Usage = usage
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}

	mode := flag.Arg(0)
	if mode == "" {
		mode = "monitor"
	}

	switch mode {
	case "monitor":
		os.Exit(runMonitor(cfg))
	case "info":
		os.Exit(runInfo(cfg))
	case "mem":
		os.Exit(runMem())
	case "price":
		os.Exit(runPrice(cfg))
	default:
		fmt.Fprintf(os.Stderr, "unknown mode %q\n\n", mode)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: sysagent [-config config.json] [mode]

Modes:
  monitor   run the CPU monitoring loop (default)
  info      print a one-shot system snapshot
  mem       print current memory status
  price     print the current Bitcoin USD price
`)
}

func runMonitor(cfg *Config) int {
	if snap, err := querySystemSnapshot(cfg.Paths.Disk); err != nil {
		slog.Warn("System snapshot unavailable", "err", err)
	} else {
		fmt.Println(renderSnapshot(snap))
	}

	sink := EventSink(logSink{})
	if cfg.Telegram.Enabled {
		bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
		if err != nil {
			slog.Error("Telegram bot init failed", "err", err)
			return 1
		}
		slog.Info("Telegram alerts enabled", "bot", bot.Self.UserName, "cooldown_min", cfg.Telegram.CooldownMinutes)
		sink = combineSinks(logSink{}, newTelegramNotifier(bot, cfg.Telegram))
	}

	mon, err := NewMonitor(cfg.Monitor, newSampler(), sink)
	if err != nil {
		slog.Error("Invalid monitor configuration", "err", err)
		return 1
	}

	slog.Info("Monitor configured",
		"threshold", format.FormatPercent(cfg.Monitor.CPUThresholdPercent),
		"interval", format.FormatPeriod(cfg.Monitor.CheckIntervalSeconds))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		s := <-sig
		slog.Info("Interrupt received, stopping after current cycle", "signal", s.String())
		mon.Stop()
	}()

	if err := mon.Run(); err != nil {
		return 1
	}
	if graph := format.MiniGraph(mon.TrendValues(), 12); graph != "" {
		slog.Info("CPU trend", "graph", graph)
	}
	return 0
}

func runInfo(cfg *Config) int {
	snap, err := querySystemSnapshot(cfg.Paths.Disk)
	if err != nil {
		slog.Error("System snapshot failed", "err", err)
		return 1
	}
	fmt.Println(renderSnapshot(snap))
	return 0
}

func runMem() int {
	m, err := queryMemoryStatus()
	if err != nil {
		slog.Error("Memory status failed", "err", err)
		return 1
	}
	fmt.Println(renderMemoryStatus(m))
	return 0
}

func runPrice(cfg *Config) int {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Price.TimeoutSeconds)*time.Second)
	defer cancel()

	price, err := newPriceClient(cfg.Price).FetchUSD(ctx)
	if err != nil {
		slog.Error("Bitcoin price fetch failed", "err", err)
		return 1
	}
	fmt.Printf("Current Bitcoin Price (USD): $%.2f\n", price)
	return 0
}
