package main

import (
	"bufio"
	"context"
	"log"
	"os"

	"parts-desk/internal/adapters/cli"
	"parts-desk/internal/adapters/repl"
	"parts-desk/internal/app"
	"parts-desk/internal/config"
	"parts-desk/internal/core"
	"parts-desk/internal/logger"
	"parts-desk/internal/notify"
	"parts-desk/internal/store"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logg := logger.New(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()
	st, err := store.Open(cfg.DataDir)
	if err != nil {
		log.Fatalf("Unable to open data directory: %v", err)
	}

	users := store.NewUsers(st)
	session := store.NewSession(st)
	locations := store.NewLocations(st)
	inventories := store.NewInventories(st)
	orders := store.NewOrders(st)
	settings := store.NewSettings(st)

	notifier := notify.NewLogNotifier(logg, settings, cfg.NotificationsGranted)

	svc := app.NewAppService(
		core.NewAuthService(users, session),
		core.NewInventoryService(inventories, locations),
		core.NewOrderService(orders, inventories, notifier),
		core.NewLocationService(locations, inventories),
		core.NewUserService(users),
		core.NewSettingsService(settings),
		st,
		logg,
	)

	if len(os.Args) > 1 {
		cli.Run(ctx, svc, os.Args[1:], cfg.ExportDir)
		return
	}
	repl.Run(ctx, svc, bufio.NewReader(os.Stdin), cfg.ExportDir)
}
