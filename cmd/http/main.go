package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"tokenbook-service/internal/app/config"
	"tokenbook-service/internal/app/delivery/http/controllers"
	"tokenbook-service/internal/app/delivery/http/middlewares"
	"tokenbook-service/internal/app/delivery/http/routers"
	"tokenbook-service/internal/app/drivers/database"
	"tokenbook-service/internal/app/drivers/logger"
	"tokenbook-service/internal/app/drivers/messaging"
	"tokenbook-service/internal/app/services/core/appointments"
	"tokenbook-service/internal/app/services/core/availability"
	"tokenbook-service/internal/app/services/core/bookings"
	"tokenbook-service/internal/app/services/shared/eventqueue"
	"tokenbook-service/internal/app/services/shared/locker"
	"tokenbook-service/internal/app/services/shared/redis"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	logger.InitLogger(internalConfig)
	log := logger.NewZapLogger(driverConfig, internalConfig)

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		logrus.Fatalf("Error loading location: %v", err)
	}
	time.Local = location

	mongoDB := database.NewMongoDB(driverConfig)
	redisClient := database.NewRedisClient(driverConfig)
	rabbitMQ := messaging.NewRabbitMQ(driverConfig)
	chiRouter := chi.NewRouter()

	bootstrap := config.Bootstrap{
		Router:         chiRouter,
		MongoDB:        mongoDB,
		Redis:          redisClient,
		RabbitMQ:       rabbitMQ,
		Logger:         log,
		DriverConfig:   driverConfig,
		InternalConfig: internalConfig,
	}

	bootstrapingTheApp(bootstrap)

	server := &http.Server{
		Addr:    internalConfig.App.Address + internalConfig.App.Port,
		Handler: chiRouter,
	}

	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Server failed to start: %v", err)
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	logrus.Println("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeout),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		logrus.Printf("Error closing drivers: %v", err)
	}

	logrus.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap config.Bootstrap) {
	// Shared infrastructure
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, bootstrap.Logger)
	eventPublisher, err := eventqueue.NewService(bootstrap.RabbitMQ, bootstrap.Logger, bootstrap.InternalConfig.App.RabbitMQAppointmentQueue)
	if err != nil {
		logrus.Fatalf("Error setting up event queue: %v", err)
	}

	// Middlewares
	middlewares := middlewares.NewMiddlewares(bootstrap.Logger, bootstrap.InternalConfig)

	// Availability
	availabilityMongoRepository := availability.NewAvailabilityMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)
	availabilityUsecase := availability.NewAvailabilityUsecase(
		availabilityMongoRepository,
		redisRepository,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	availabilityController := controllers.NewAvailabilityController(bootstrap.Logger, availabilityUsecase)

	// Appointments
	appointmentMongoRepository := appointments.NewAppointmentMongoRepository(
		bootstrap.MongoDB,
		bootstrap.DriverConfig.MongoDB.DbName,
	)
	appointmentProjection := appointments.NewAppointmentProjection(
		appointmentMongoRepository,
		availabilityUsecase,
		eventPublisher,
		bootstrap.Logger,
	)
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentMongoRepository, bootstrap.Logger)

	// Booking
	bookingUsecase := bookings.NewBookingUsecase(
		availabilityMongoRepository,
		appointmentMongoRepository,
		appointmentProjection,
		lockService,
		bootstrap.InternalConfig,
		bootstrap.Logger,
	)
	appointmentController := controllers.NewAppointmentController(bootstrap.Logger, bookingUsecase, appointmentUsecase)

	routers.SetupRoutes(bootstrap.Router, bootstrap.InternalConfig, middlewares, availabilityController, appointmentController)
}
