// File: clinicportal/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicportal/config"
	"clinicportal/database"
	bookingRepoPkg "clinicportal/database/repository/booking"
	doctorRepoPkg "clinicportal/database/repository/doctor"
	paymentRepoPkg "clinicportal/database/repository/payment"
	serviceRepoPkg "clinicportal/database/repository/service"
	userRepoPkg "clinicportal/database/repository/user"
	"clinicportal/handlers"
	"clinicportal/middleware"
	"clinicportal/routes"
	"clinicportal/services/appointment"
	"clinicportal/services/booking"
	"clinicportal/services/doctor"
	"clinicportal/services/notification"
	"clinicportal/services/payment"
	"clinicportal/services/user"
	"clinicportal/utils"
	"clinicportal/workers"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitQueueClient()
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient(), utils.GetQueueClient()}, database.MongoClient)

	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	conflictScope := bookingRepoPkg.ParseConflictScope(config.AppConfig.BookingConflictScope)
	svcRepo := serviceRepoPkg.NewMongoServiceOptionRepo()
	bkRepo := bookingRepoPkg.NewMongoBookingRepo(conflictScope)
	usrRepo := userRepoPkg.NewMongoUserRepo()
	docRepo := doctorRepoPkg.NewMongoDoctorRepo()
	payRepo := paymentRepoPkg.NewMongoPaymentRepo()

	// notification queue and email worker.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	notificationService := &notification.DefaultNotificationService{Client: asynqClient}
	emailSender := notification.NewSendGridSender(
		config.AppConfig.SendGridAPIKey,
		config.AppConfig.EmailFrom,
		config.AppConfig.EmailFromName,
	)
	if emailSender == nil {
		workers.InitEmailWorker(nil)
		logger.Sugar().Warn("main: no SendGrid key configured, confirmation email disabled")
	} else {
		workers.InitEmailWorker(emailSender)
	}

	// services.
	availabilityCache := appointment.NewCache(
		utils.GetCacheClient(),
		time.Duration(config.AppConfig.AvailabilityCacheTTL)*time.Second,
	)
	availabilityService := &appointment.DefaultAvailabilityService{
		Services: svcRepo,
		Bookings: bkRepo,
		Cache:    availabilityCache,
	}
	bookingService := booking.NewBookingService(bkRepo, conflictScope, availabilityCache, notificationService)
	userService := &user.DefaultUserService{Repo: usrRepo}
	doctorService := &doctor.DefaultDoctorService{Repo: docRepo, Services: svcRepo}
	paymentService := &payment.DefaultPaymentService{Payments: payRepo, Bookings: bkRepo}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:     usrRepo,
		Appointments: handlers.NewAppointmentHandler(availabilityService),
		Bookings:     handlers.NewBookingHandler(bookingService),
		Users:        handlers.NewUserHandler(userService),
		Doctors:      handlers.NewDoctorHandler(doctorService),
		Payments:     handlers.NewPaymentHandler(paymentService),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
