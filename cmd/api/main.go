package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/actions"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/application"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/domain"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/history"
	mongoRepo "github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/infrastructure/mongodb"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/infrastructure/pooling"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/notifications"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/auth"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/config"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/kafka"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/logging"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/metrics"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/middleware"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/outbox"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/pkg/translation"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/reconcile"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/triggers"
	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/validation"

	"github.com/Muradin-Botashev/tms-lite-roust-sub002/internal/fielddiff"
)

const serviceName = "tms-backoffice"

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	logConfig := logging.DefaultConfig(serviceName)
	logConfig.Level = logging.LogLevel(cfg.LogLevel)
	logger := logging.New(logConfig)
	logger.SetDefault()

	logger.Info("Starting tms-backoffice API")

	ctx := context.Background()

	metricsConfig := metrics.DefaultConfig(serviceName)
	m := metrics.New(metricsConfig)

	// MongoDB
	mongoClient, err := mongoRepo.Connect(ctx, cfg.MongoDB)
	if err != nil {
		logger.WithError(err).Error("Failed to connect to MongoDB")
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			logger.WithError(err).Error("Failed to disconnect MongoDB")
		}
	}()
	db := mongoClient.Database(cfg.MongoDB.Database)
	logger.Info("Connected to MongoDB", "database", cfg.MongoDB.Database)

	shippingRepo := mongoRepo.NewShippingRepository(db)
	orderRepo := mongoRepo.NewOrderRepository(db)
	carrierRepo := mongoRepo.NewCarrierRepository(db)
	historyRepo := mongoRepo.NewHistoryRepository(db)
	statRepo := mongoRepo.NewCarrierRequestStatRepository(db)
	outboxRepo := mongoRepo.NewOutboxRepository(db)
	uow := mongoRepo.NewUnitOfWork(mongoClient)

	// Kafka producer and the outbox publisher draining staged events
	producer := kafka.NewProducer(&kafka.Config{
		Brokers:      cfg.Kafka.Brokers,
		ClientID:     cfg.Kafka.ClientID,
		BatchSize:    cfg.Kafka.BatchSize,
		BatchTimeout: cfg.Kafka.BatchTimeout,
		RequiredAcks: cfg.Kafka.RequiredAcks,
	})
	defer producer.Close()
	logger.Info("Kafka producer initialized", "brokers", cfg.Kafka.Brokers)

	outboxPublisher := outbox.NewPublisher(outboxRepo, producer, logger, m, nil)
	if err := outboxPublisher.Start(ctx); err != nil {
		logger.WithError(err).Error("Failed to start outbox publisher")
		os.Exit(1)
	}
	defer outboxPublisher.Stop()
	logger.Info("Outbox publisher started")

	// External pooling API client
	poolingClient := pooling.NewClient(cfg.Pooling, logger, m)

	// Localization
	translator := translation.New()
	translator.AddCatalog(translation.DefaultLanguage, translation.EnglishCatalog)

	calculator := domain.NewDeliveryCostCalculator()

	triggerEngine := triggers.NewEngine(logger, m,
		[]triggers.Trigger{
			triggers.NewStatusCascade(),
			triggers.NewBacklightReset(),
			triggers.NewCarrierFieldsSync(),
			triggers.NewTotalCostCalculation(calculator),
			triggers.NewOrderCostDistribution(calculator),
			triggers.NewRequestDataChanged(),
			triggers.NewPoolingSlotUpdate(poolingClient, logger),
		},
		[]triggers.ValidationTrigger{
			triggers.NewCarrierChangeGuard(),
		},
	)

	ruleEngine := validation.NewRuleEngine(
		validation.NewReadonlyFieldsRule(fielddiff.ShippingSchema),
		validation.NewCarrierExistsRule(carrierRepo),
		validation.NewUniqueShippingNumberRule(shippingRepo),
	)

	registry := actions.NewRegistry(
		actions.NewSendShippingRequest(),
		actions.NewConfirmShipping(),
		actions.NewRejectShippingRequest(),
		actions.NewCompleteShipping(),
		actions.NewSendShippingBill(),
		actions.NewArchiveShipping(),
		actions.NewCancelShipping(calculator),
		actions.NewRollbackShipping(),
		actions.NewSendToPooling(poolingClient, cfg.Company.PoolingRequiresConfirmedOrders),
		actions.NewCancelPoolingSlot(poolingClient),
	)

	shippingService := application.NewShippingService(
		shippingRepo,
		orderRepo,
		statRepo,
		historyRepo,
		outboxRepo,
		uow,
		ruleEngine,
		triggerEngine,
		registry,
		notifications.NewService(),
		translator,
		logger,
		m,
	)
	dictionaryService := application.NewDictionaryService(carrierRepo, logger)
	historyService := history.NewService(historyRepo, translator)

	// Background reconciliation of pooling slots that failed to sync
	if cfg.Reconciliation.Enabled {
		poller := reconcile.NewPoller(shippingRepo, orderRepo, historyRepo, poolingClient, cfg.Reconciliation, logger, m)
		poller.Start(ctx)
		defer poller.Stop()
		logger.Info("Pooling reconciliation started", "interval", cfg.Reconciliation.PollInterval)
	}

	// HTTP wiring
	middleware.InitValidator()
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
	router.Use(middleware.Metrics(m))
	router.Use(middleware.ErrorHandler(logger))

	router.GET("/health", middleware.HealthCheck(serviceName))
	router.GET("/ready", middleware.ReadyCheck(serviceName, map[string]func(ctx context.Context) error{
		"mongodb": func(ctx context.Context) error {
			return mongoClient.Ping(ctx, nil)
		},
	}))
	router.GET("/metrics", gin.WrapH(m.Handler()))

	v1 := router.Group("/api/v1")
	v1.Use(auth.Middleware(cfg.Auth, logger))
	{
		shippings := v1.Group("/shippings")
		{
			shippings.POST("/saveOrCreate", saveOrCreateHandler(shippingService, logger))
			shippings.POST("/update", bulkUpdateHandler(shippingService, logger))
			shippings.POST("/invokeAction/:name", invokeActionHandler(shippingService, logger))
			shippings.GET("/:id", getShippingHandler(shippingService, logger))
			shippings.GET("/:id/actions", availableActionsHandler(shippingService, logger))
			shippings.GET("/:id/orders", shippingOrdersHandler(shippingService, logger))
			shippings.GET("/:id/history", shippingHistoryHandler(historyService, logger))
		}

		carriers := v1.Group("/carriers")
		{
			carriers.GET("", listCarriersHandler(dictionaryService, logger))
			carriers.GET("/:id", getCarrierHandler(dictionaryService, logger))
			carriers.POST("/saveOrCreate", saveCarrierHandler(dictionaryService, logger))
			carriers.DELETE("/:id", deleteCarrierHandler(dictionaryService, logger))
		}
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Error("Server error")
		}
	}()
	logger.Info("Server started", "addr", cfg.Server.Addr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Server stopped")
}

// InvokeActionRequest is the request body for invoking an action over a
// selection of shippings
type InvokeActionRequest struct {
	IDs []string `json:"ids" binding:"required,min=1"`
}

func saveOrCreateHandler(service *application.ShippingService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var dto application.ShippingSaveDto
		if appErr := middleware.BindAndValidate(c, &dto); appErr != nil {
			middleware.RespondError(c, logger, appErr)
			return
		}

		result, err := service.SaveOrCreate(c.Request.Context(), application.SaveOrCreateCommand{
			Dto:  dto,
			User: auth.UserFrom(c),
		})
		if err != nil {
			middleware.RespondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func bulkUpdateHandler(service *application.ShippingService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var dtos []application.ShippingSaveDto
		if err := c.ShouldBindJSON(&dtos); err != nil {
			middleware.RespondError(c, logger, err)
			return
		}

		result, err := service.UpdateShippings(c.Request.Context(), application.BulkUpdateCommand{
			Dtos: dtos,
			User: auth.UserFrom(c),
		})
		if err != nil {
			middleware.RespondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func invokeActionHandler(service *application.ShippingService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req InvokeActionRequest
		if appErr := middleware.BindAndValidate(c, &req); appErr != nil {
			middleware.RespondError(c, logger, appErr)
			return
		}

		results, err := service.InvokeAction(c.Request.Context(), application.InvokeActionCommand{
			ActionName:  c.Param("name"),
			ShippingIDs: req.IDs,
			User:        auth.UserFrom(c),
		})
		if err != nil {
			middleware.RespondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, results)
	}
}

func getShippingHandler(service *application.ShippingService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		dto, err := service.GetShipping(c.Request.Context(), application.GetShippingQuery{
			ShippingID: c.Param("id"),
		})
		if err != nil {
			middleware.RespondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, dto)
	}
}

func availableActionsHandler(service *application.ShippingService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := service.GetAvailableActions(c.Request.Context(), application.GetAvailableActionsQuery{
			ShippingID: c.Param("id"),
			User:       auth.UserFrom(c),
		})
		if err != nil {
			middleware.RespondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func shippingOrdersHandler(service *application.ShippingService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := service.GetShippingOrders(c.Request.Context(), c.Param("id"))
		if err != nil {
			middleware.RespondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, orders)
	}
}

func shippingHistoryHandler(service *history.Service, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		records, err := service.ForEntity(c.Request.Context(), c.Param("id"), auth.UserFrom(c).Language)
		if err != nil {
			middleware.RespondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, records)
	}
}

func listCarriersHandler(service *application.DictionaryService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		carriers, err := service.ListCarriers(c.Request.Context())
		if err != nil {
			middleware.RespondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, carriers)
	}
}

func getCarrierHandler(service *application.DictionaryService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		carrier, err := service.GetCarrier(c.Request.Context(), c.Param("id"))
		if err != nil {
			middleware.RespondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, carrier)
	}
}

func saveCarrierHandler(service *application.DictionaryService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var dto application.CarrierSaveDto
		if appErr := middleware.BindAndValidate(c, &dto); appErr != nil {
			middleware.RespondError(c, logger, appErr)
			return
		}

		result, err := service.SaveCarrier(c.Request.Context(), dto)
		if err != nil {
			middleware.RespondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

func deleteCarrierHandler(service *application.DictionaryService, logger *logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.DeleteCarrier(c.Request.Context(), c.Param("id")); err != nil {
			middleware.RespondError(c, logger, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"isError": false})
	}
}
