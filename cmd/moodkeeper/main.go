package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/moodkeeper/internal/client/cli"
	"github.com/dmitrijs2005/moodkeeper/internal/client/config"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
)

func main() {

	cfg, args := config.LoadConfig()

	log, closer := logging.NewFileLogger(logging.FileOptions{Path: cfg.LogFile, Level: cfg.LogLevel})
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := cli.NewApp(ctx, cfg, log, os.Stdin, os.Stdout)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = app.Execute(ctx, args)
	_ = app.Close()
	if err != nil {
		stop()
		_ = closer.Close()
		os.Exit(1)
	}
}
