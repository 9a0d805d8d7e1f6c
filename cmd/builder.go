package cmd

import (
	"net/http"
	"os"

	"bookstore/api"
	apicatalog "bookstore/api/catalog"
	"bookstore/api/health"
	apiorder "bookstore/api/order"
	apiupload "bookstore/api/upload"
	apiuser "bookstore/api/user"
	catalogapp "bookstore/application/catalog"
	orderapp "bookstore/application/order"
	uploadapp "bookstore/application/upload"
	userapp "bookstore/application/user"
	"bookstore/config"
	catalogdomain "bookstore/domain/catalog"
	orderdomain "bookstore/domain/order"
	"bookstore/domain/shared"
	uploaddomain "bookstore/domain/upload"
	userdomain "bookstore/domain/user"
	"bookstore/infrastructure/messaging/rabbit"
	"bookstore/infrastructure/persistence/memory"
	"bookstore/infrastructure/persistence/mysql"
	"bookstore/infrastructure/persistence/retry"
	"bookstore/pkg/auth"
	"bookstore/pkg/clock"
	"bookstore/pkg/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// repositories groups every repository behind the configured backend.
type repositories struct {
	books      catalogdomain.BookRepository
	authors    catalogdomain.AuthorRepository
	orders     orderdomain.Repository
	recipients orderdomain.RecipientRepository
	users      userdomain.Repository
	uploads    uploaddomain.Repository
	uow        shared.UnitOfWork
}

// Build wires the whole application from configuration: logger, storage
// backend, services, controllers, HTTP server, and the abandonment job.
func Build(cfg *config.Config) *App {
	if err := logger.Init(&cfg.Log, cfg.App.Env); err != nil {
		os.Exit(1)
	}

	logger.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.String("env", cfg.App.Env))

	db, repos := buildRepositories(cfg)
	clk := clock.System()
	tokens := auth.NewTokenService(&cfg.JWT)

	publisher, closer := buildPublisher(cfg)

	uploadService := uploadapp.NewService(repos.uploads, clk)
	catalogService := catalogapp.NewService(repos.books, repos.authors, uploadService, repos.uow, clk)
	priceService := orderapp.NewPriceService(repos.books)
	manipulateService := orderapp.NewManipulateService(repos.orders, repos.recipients, repos.books, repos.uow, clk)
	queryService := orderapp.NewQueryService(repos.orders, repos.recipients, priceService)
	userService := userapp.NewApplicationService(repos.users, tokens, publisher, repos.uow, clk)

	abandonJob := orderapp.NewAbandonedOrdersJob(repos.orders, manipulateService, cfg.Orders.PaymentPeriod, clk)
	scheduler := cron.New(cron.WithSeconds())
	if err := abandonJob.Schedule(scheduler, cfg.Orders.AbandonCron); err != nil {
		logger.Fatal("Invalid abandonment schedule",
			zap.String("cron", cfg.Orders.AbandonCron),
			zap.Error(err))
	}

	router := api.NewRouter(cfg, tokens, api.Controllers{
		Health:  health.NewController(db, cfg.App.Name, cfg.App.Version),
		User:    apiuser.NewController(userService),
		Catalog: apicatalog.NewController(catalogService),
		Order:   apiorder.NewController(manipulateService, queryService),
		Upload:  apiupload.NewController(uploadService),
	})
	router.SetupRoutes()

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.GetEngine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return &App{
		config:          cfg,
		server:          server,
		db:              db,
		scheduler:       scheduler,
		userService:     userService,
		publisherCloser: closer,
	}
}

// buildRepositories selects the storage backend. db is nil for memory.
func buildRepositories(cfg *config.Config) (*gorm.DB, repositories) {
	if cfg.Database.Type == "memory" {
		logger.Info("Using in-memory persistence layer")
		store := memory.NewStore()
		return nil, repositories{
			books:      memory.NewBookRepository(store),
			authors:    memory.NewAuthorRepository(store),
			orders:     memory.NewOrderRepository(store),
			recipients: memory.NewRecipientRepository(store),
			users:      memory.NewUserRepository(store),
			uploads:    memory.NewUploadRepository(store),
			uow:        memory.NewUnitOfWork(store),
		}
	}

	logger.Info("Using MySQL persistence layer")
	mysqlConfig := &mysql.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        cfg.Log.Level,
	}

	db, err := mysqlConfig.Connect()
	if err != nil {
		logger.Fatal("Failed to connect to MySQL", zap.Error(err))
	}

	if err := mysql.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate schema", zap.Error(err))
	}

	return db, repositories{
		books:      mysql.NewBookRepository(db),
		authors:    mysql.NewAuthorRepository(db),
		orders:     mysql.NewOrderRepository(db),
		recipients: mysql.NewRecipientRepository(db),
		users:      mysql.NewUserRepository(db),
		uploads:    mysql.NewUploadRepository(db),
		uow:        mysql.NewUnitOfWork(db, retry.FromAppConfig(cfg)),
	}
}

// buildPublisher connects to RabbitMQ when enabled; otherwise events are
// dropped. The returned closer is nil when there is nothing to close.
func buildPublisher(cfg *config.Config) (userapp.EventPublisher, func() error) {
	if !cfg.AMQP.Enabled {
		return userapp.NoopPublisher{}, nil
	}
	publisher, err := rabbit.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
	if err != nil {
		logger.Fatal("Failed to connect to message broker", zap.Error(err))
	}
	return publisher, publisher.Close
}
