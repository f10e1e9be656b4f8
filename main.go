package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/angas/esios-go/config"
	"github.com/angas/esios-go/database"
	"github.com/angas/esios-go/esios"
	"github.com/angas/esios-go/hours"
	"github.com/angas/esios-go/logging"
	"github.com/angas/esios-go/task"
	"github.com/angas/esios-go/www"
	"github.com/lmittmann/tint"
)

var Version = "?.?.?"

func main() {
	defer func() {
		if err := recover(); err != nil {
			exitWithError(slog.Default(), fmt.Errorf("application panicked: %v", err))
		} else {
			slog.Default().Info("application is shutting down...")
		}
	}()

	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cnfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	if err := hours.SetGuiTimezone(cnfg.Gui.GetTimezone()); err != nil {
		panic(fmt.Sprintf("failed to set GUI timezone: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	consoleHandler := tint.NewHandler(os.Stdout, &tint.Options{
		Level:      cnfg.Logging.GetConsoleLevel(),
		TimeFormat: time.RFC3339,
	})
	slog.New(consoleHandler).Debug("esios dashboard is starting...", slog.String("version", Version))

	db, err := database.New(ctx, cnfg.Database.Path)
	if err != nil {
		panic(fmt.Sprintf("failed to open database: %v", err))
	}
	defer db.Close()

	logger := slog.New(logging.NewMultiHandler(
		consoleHandler,
		logging.NewSQLiteHandler(db, cnfg.Logging.GetDbLevel(), cnfg.Logging.GetDbAttrsFormat())))
	slog.SetDefault(logger)

	// Now we can use the logger to log database operations into the database itself
	db.SetLogger(logger.With("module", "database"))

	client, err := esios.New(cnfg.Esios.Token, esios.Options{
		BaseUrl: cnfg.Esios.GetBaseUrl(),
		Timeout: cnfg.Esios.GetTimeout(),
	})
	if err != nil {
		if errors.Is(err, esios.ErrMissingCredential) {
			logger.Error("no API token configured, request a personal token " +
				"from https://www.esios.ree.es/ and set ESIOS_API_TOKEN")
		}
		panic(fmt.Sprintf("failed to create esios client: %v", err))
	}

	live := task.NewLiveData()
	tasks := task.NewTasks(db, client, live, cnfg)
	tasks.Run()
	defer tasks.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-ctx.Done():
			logger.Info("main context done")
		case sig := <-sigCh:
			logger.Info("received signal", slog.Any("signal", sig))
			cancel()
		}
	}()

	server := www.StartServer(db, client, live, cnfg.Api)
	server.Run(ctx)
}

func exitWithError(logger *slog.Logger, err error) {
	if err != nil {
		logger.Error("application shutting down with error", slog.Any("error", err))
	}
	time.Sleep(2 * time.Second)
	os.Exit(1)
}
