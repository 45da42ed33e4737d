package main

import (
	"context"
	"time"

	"github.com/bazaarline/importer/config"
	"github.com/bazaarline/importer/internal/app"
	"github.com/bazaarline/importer/pkg/sigctx"
)

const closeTimeout = 10 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext()
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	importer := app.New(sigCtx, cfg)

	importer.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	importer.Close(ctx)
}
