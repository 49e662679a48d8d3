package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"travelhub/config"
	"travelhub/cron"
	"travelhub/database"
	bookingRepo "travelhub/database/repository/booking"
	insuranceRepo "travelhub/database/repository/insurance"
	inventoryRepo "travelhub/database/repository/inventory"
	managerRepo "travelhub/database/repository/manager"
	outboxRepo "travelhub/database/repository/outbox"
	ratingRepo "travelhub/database/repository/rating"
	"travelhub/handlers"
	"travelhub/middleware"
	"travelhub/models"
	"travelhub/obs"
	"travelhub/routes"
	"travelhub/services/booking"
	"travelhub/services/insurance"
	"travelhub/services/inventory"
	"travelhub/services/manager"
	"travelhub/services/notification"
	"travelhub/services/rating"
	"travelhub/services/search"
	"travelhub/services/searchcache"
	"travelhub/services/storage"
	"travelhub/services/supplier"
	"travelhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// indexed is implemented by every repository.
type indexed interface {
	EnsureIndexes(ctx context.Context) error
}

func main() {
	cfg := config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	connectCtx, cancel := context.WithTimeout(rootCtx, 10*time.Second)
	mongoClient, err := database.Connect(connectCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	db := mongoClient.Database(cfg.DatabaseName)

	cacheClient, err := utils.NewRedisClient(cfg, cfg.RedisCacheDB)
	if err != nil {
		logger.Fatal("main: failed to connect to Redis", zap.Error(err))
	}

	cld, err := utils.NewCloudinary(cfg)
	if err != nil {
		logger.Fatal("main: failed to initialize cloudinary", zap.Error(err))
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics := obs.NewMetrics(registry)

	// repositories.
	hotelBookings := bookingRepo.NewMongoBookingRepo(db, "hotel_bookings")
	activityBookings := bookingRepo.NewMongoBookingRepo(db, "activity_bookings")
	cruiseBookings := bookingRepo.NewMongoBookingRepo(db, "cruise_bookings")
	holidayBookings := bookingRepo.NewMongoBookingRepo(db, "holiday_bookings")
	insuranceBookings := bookingRepo.NewMongoBookingRepo(db, "insurance_bookings")

	cruises := inventoryRepo.NewMongoInventoryRepo[models.CruisePackage](db, "cruise_packages", "name", "destination")
	holidays := inventoryRepo.NewMongoInventoryRepo[models.HolidayPackage](db, "holiday_packages", "name", "destination")
	plans := inventoryRepo.NewMongoInventoryRepo[models.InsurancePlan](db, "insurance_plans", "name")

	hotelRatings := ratingRepo.NewMongoRatingRepo(db, "hotel_ratings")
	activityRatings := ratingRepo.NewMongoRatingRepo(db, "activity_ratings")
	structures := ratingRepo.NewMongoStructureRepo(db)
	managers := managerRepo.NewMongoManagerRepo(db)
	insuranceConfigs := insuranceRepo.NewMongoConfigRepo(db)
	outbox := outboxRepo.NewMongoOutboxRepo(db)

	ensureIndexes(rootCtx, logger, hotelBookings, activityBookings, cruiseBookings, holidayBookings, insuranceBookings,
		cruises, holidays, plans, hotelRatings, activityRatings, structures, managers, insuranceConfigs, outbox)

	// suppliers.
	hotelClient := supplier.NewClient("hotel", cfg.HotelAPIBaseURL,
		supplier.BasicAuth{Username: cfg.HotelAPIUsername, Password: cfg.HotelAPIPassword},
		cfg.SupplierTimeout, metrics, logger)
	signed := supplier.SignatureAuth{APIKey: cfg.ActivityAPIKey, Secret: cfg.ActivityAPISecret}
	activityClient := supplier.NewClient("activity", cfg.ActivityAPIBaseURL, signed, cfg.SupplierTimeout, metrics, logger)
	transferClient := supplier.NewClient("transfer", cfg.TransferAPIBaseURL, signed, cfg.SupplierTimeout, metrics, logger)
	// Activity and transfer share one API key quota.
	signedLimiter := rate.NewLimiter(rate.Every(time.Second/8), 8)
	activityClient.Limiter = signedLimiter
	transferClient.Limiter = signedLimiter

	hotelSupplier := supplier.NewHotelSupplier(hotelClient)
	activitySupplier := supplier.NewActivitySupplier(activityClient)
	transferSupplier := supplier.NewTransferSupplier(transferClient)

	// services.
	ratingService := rating.NewService(map[string]ratingRepo.RatingRepository{
		models.VerticalHotel:    hotelRatings,
		models.VerticalActivity: activityRatings,
	}, structures, logger)

	searchService := search.NewService(search.Options{
		Hotels:        hotelSupplier,
		Activities:    activitySupplier,
		Transfers:     transferSupplier,
		Ratings:       ratingService,
		HotelCache:    searchcache.New[models.HotelResult](cacheClient, models.VerticalHotel, cfg.SearchCacheTTL, metrics, logger),
		ActivityCache: searchcache.New[models.ActivityResult](cacheClient, models.VerticalActivity, cfg.SearchCacheTTL, metrics, logger),
		TransferCache: searchcache.New[models.TransferResult](cacheClient, models.VerticalTransfer, cfg.SearchCacheTTL, metrics, logger),
		Logger:        logger,
	})

	images := storage.NewCloudinaryStorage(cld, logger)
	configService := insurance.NewConfigService(insuranceConfigs, database.NewMongoTxManager(mongoClient), logger)
	cruiseService := inventory.NewService[models.CruisePackage, *models.CruisePackage](models.VerticalCruise, cruises, images, logger)
	holidayService := inventory.NewService[models.HolidayPackage, *models.HolidayPackage](models.VerticalHoliday, holidays, images, logger)
	planService := inventory.NewService[models.InsurancePlan, *models.InsurancePlan]("insurance_plan", plans, images, logger).
		WithCheck(configService.CheckPlan)
	managerService := manager.NewService(managers, logger)

	queueOpt := asynq.RedisClientOpt{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisQueueDB}
	queue := asynq.NewClient(queueOpt)
	defer queue.Close()
	dispatcher := notification.NewDispatcher(queue, outbox, logger)

	deps := func(bookings bookingRepo.BookingRepository) booking.Deps {
		return booking.Deps{
			Bookings:  bookings,
			Outbox:    outbox,
			Tx:        database.NewMongoTxManager(mongoClient),
			Publisher: dispatcher,
			Metrics:   metrics,
			Logger:    logger,
		}
	}
	hotelPipeline := booking.NewPipeline(booking.HotelVertical(hotelSupplier), deps(hotelBookings))
	activityPipeline := booking.NewPipeline(booking.ActivityVertical(activitySupplier), deps(activityBookings))
	cruisePipeline := booking.NewPipeline(booking.CruiseVertical(cruises), deps(cruiseBookings))
	holidayPipeline := booking.NewPipeline(booking.HolidayVertical(holidays), deps(holidayBookings))
	insurancePipeline := booking.NewPipeline(booking.InsuranceVertical(plans, insuranceConfigs), deps(insuranceBookings))

	worker := cron.NewWorker(queueOpt, dispatcher, managers, time.Minute, logger)
	worker.Start(rootCtx)

	health := utils.NewHealthMonitor(mongoClient, cacheClient)
	health.Start(rootCtx, 30*time.Second)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Issuer: utils.NewTokenIssuer(cfg.JWTSecret),

		Search:          handlers.NewSearchHandler(searchService),
		HotelRatings:    handlers.NewRatingHandler(ratingService, models.VerticalHotel),
		ActivityRatings: handlers.NewRatingHandler(ratingService, models.VerticalActivity),

		HotelBookings: handlers.NewBookingHandler[models.HotelBookingRequest](hotelPipeline,
			func(c *gin.Context, req *models.HotelBookingRequest) { req.UserIP = middleware.ClientIP(c) }),
		ActivityBookings:  handlers.NewBookingHandler[models.ActivityBookingRequest](activityPipeline, nil),
		CruiseBookings:    handlers.NewBookingHandler[models.CruiseBookingRequest](cruisePipeline, nil),
		HolidayBookings:   handlers.NewBookingHandler[models.HolidayBookingRequest](holidayPipeline, nil),
		InsuranceBookings: handlers.NewBookingHandler[models.InsuranceBookingRequest](insurancePipeline, nil),

		Cruises:         handlers.NewInventoryHandler[models.CruisePackage]("Cruise", cruiseService),
		Holidays:        handlers.NewInventoryHandler[models.HolidayPackage]("Holiday", holidayService),
		InsurancePlans:  handlers.NewInventoryHandler[models.InsurancePlan]("Insurance plan", planService),
		InsuranceConfig: handlers.NewInsuranceConfigHandler(configService),
		Managers:        handlers.NewManagerHandler(managerService),

		Health:  handlers.Health(health),
		Metrics: metrics.Handler(),
	}

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger, metrics))
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, metrics))
	routes.RegisterRoutes(router, handlerBundle)

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	disconnect(ctx, mongoClient, logger)
	if err := cacheClient.Close(); err != nil {
		logger.Warn("main: redis close failed", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}

func ensureIndexes(ctx context.Context, logger *zap.Logger, repos ...indexed) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	for _, r := range repos {
		if err := r.EnsureIndexes(ctx); err != nil {
			logger.Fatal("main: failed to create indexes", zap.Error(err))
		}
	}
}

func disconnect(ctx context.Context, client *mongo.Client, logger *zap.Logger) {
	if err := client.Disconnect(ctx); err != nil {
		logger.Warn("main: mongo disconnect failed", zap.Error(err))
	}
}
