package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"

	"github.com/bazaarline/importer/config"
	"github.com/bazaarline/importer/internal/adapter/httphandler"
	"github.com/bazaarline/importer/internal/adapter/kafka"
	"github.com/bazaarline/importer/internal/adapter/storage"
	"github.com/bazaarline/importer/internal/adapter/telegram"
	"github.com/bazaarline/importer/internal/core/service"
	"github.com/bazaarline/importer/pkg/schema"
	"github.com/bazaarline/importer/pkg/stats"
)

type App struct {
	ctx context.Context
	cfg config.Config

	importedSerde schema.Serde

	sqldb    storage.SQLDB
	producer kafka.ImportedProductsProducer
	service  *service.ImportService
	stats    *stats.Importer

	countsProc *kafka.CategoryCountsProcessor
	countsView *kafka.CategoryCountsView

	httpServer httphandler.HTTPServer
	bot        *telegram.Bot

	wg sync.WaitGroup
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg, stats: stats.NewImporter()}

	app.initLogger()
	app.initSerdes()
	app.initStorage()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initStreamProcessors()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerdes() {
	const op = "App.initSerdes"

	schemaCreater, err := schema.NewSchemaCreater(
		app.cfg.Broker.SchemaRegistryURLs...,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	subject := app.cfg.Broker.Topics.ImportedProducts + "-value"
	importedSerde, err := schema.NewSerdeImportedProductV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaCreater),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.importedSerde = importedSerde
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.sqldb = sqldb
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	producer, err := kafka.NewImportedProductsProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.ImportedProducts,
		),
		kafka.ProducerEncoderOpt(app.importedSerde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.producer = producer
}

func (app *App) initCoreService() {
	catalog := storage.NewProductsRepository(app.sqldb)
	runs := storage.NewImportRunsRepository(app.sqldb)
	app.service = service.New(catalog, runs, app.producer)
}

func (app *App) initStreamProcessors() {
	const op = "App.initStreamProcessors"

	proc, err := kafka.NewCategoryCountsProc(
		app.cfg.Broker.SeedBrokers,
		app.cfg.Broker.Topics.ImportedProducts,
		app.cfg.Broker.Topics.CategoryCountGroup,
		app.importedSerde,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	view, err := kafka.NewCategoryCountsView(
		app.cfg.Broker.SeedBrokers,
		app.cfg.Broker.Topics.CategoryCountGroup,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.countsProc = proc
	app.countsView = view
}

func (app *App) initInboundAdapters() {
	const op = "App.initInboundAdapters"

	mux := http.NewServeMux()
	httphandler.RegisterImport(
		mux, app.service, app.service, app.cfg.Import.MaxUploadBytes,
	)
	httphandler.RegisterStats(mux, app.stats, app.countsView)

	handler := httphandler.AllowJSON(mux)
	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, handler)

	if app.cfg.Telegram.Enabled {
		bot, err := telegram.NewBot(
			app.cfg.Telegram.BotToken,
			app.cfg.Telegram.AdminChatIDs,
			app.service,
			app.stats,
		)
		if err != nil {
			app.fallDown(op, err)
		}
		app.bot = bot
	}
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	app.wg.Add(1)
	app.countsProc.Run(app.ctx, stopFn, &app.wg)

	go app.countsView.Run(app.ctx)

	if app.bot != nil {
		app.wg.Add(1)
		go app.bot.Run(app.ctx, stopFn, &app.wg)
	}

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.bot != nil {
		app.bot.Close()
	}
	app.countsProc.Close()
	app.producer.Close()
	app.sqldb.Close()
	app.wg.Wait()

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
