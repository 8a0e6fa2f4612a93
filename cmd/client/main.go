package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"employee-directory/internal/client"
	"employee-directory/internal/client/cli"
	"employee-directory/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}

	sessionFile := cfg.Client.SessionFile
	if !filepath.IsAbs(sessionFile) {
		if home, err := os.UserHomeDir(); err == nil {
			sessionFile = filepath.Join(home, sessionFile)
		}
	}

	c, err := client.New(cfg.Client.BaseURL, client.NewFileStorage(sessionFile))
	if err != nil {
		fmt.Fprintln(os.Stderr, "restore session:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli.NewApp(c, os.Stdin, os.Stdout, cfg.Client.PageSize).Run(ctx)
}
