package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gorillaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"corpfinityAPI/handlers"
	"corpfinityAPI/internal/cache"
	"corpfinityAPI/internal/database"
	"corpfinityAPI/internal/notification"
	"corpfinityAPI/middleware"
	"corpfinityAPI/services"

	_ "net/http/pprof"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	dbPool, err := database.Connect(ctx, dbURL)
	if err != nil {
		cancel()
		log.Fatal("Failed to connect to database: ", err)
	}
	defer func() {
		log.Println("Closing database connection pool...")
		dbPool.Close()
	}()

	cacheClient := cache.New(ctx, os.Getenv("REDIS_URL"))
	defer cacheClient.Close()
	cancel()

	notificationService := services.NewNotificationService(dbPool, cacheClient)
	defer notificationService.Stop()

	fcmService, err := notification.NewFCMService("./serviceAccountKey.json")
	if err != nil {
		log.Printf("Warning: Could not initialize FCM: %v", err)
	} else {
		notificationService.SetPushProvider(fcmService)
		log.Println("FCM Push Provider initialized successfully")
	}

	authService := services.NewAuthService(dbPool, cacheClient, jwtSecret)
	userService := services.NewUserService(dbPool, cacheClient)
	streakService := services.NewStreakService(dbPool, cacheClient)
	achievementService := services.NewAchievementService(dbPool, notificationService)
	challengeService := services.NewChallengeService(dbPool, cacheClient, streakService, achievementService, notificationService)
	challengeDBService := services.NewChallengeDBService(dbPool)
	reminderService := services.NewReminderService(dbPool, cacheClient)
	trackingService := services.NewTrackingService(dbPool, cacheClient)
	schedulerService := services.NewSchedulerService(reminderService, notificationService)

	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := achievementService.SeedDefinitions(seedCtx); err != nil {
		seedCancel()
		log.Fatal("Failed to seed achievement definitions: ", err)
	}
	if err := challengeDBService.SeedDefinitions(seedCtx); err != nil {
		seedCancel()
		log.Fatal("Failed to seed challenge definitions: ", err)
	}
	seedCancel()

	middleware.InitPrometheus()
	services.InitDispatcherMetrics()
	services.InitSchedulerMetrics()

	schedulerService.Start()
	defer schedulerService.Stop()

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	challengeHandler := handlers.NewChallengeHandler(challengeService)
	streakHandler := handlers.NewStreakHandler(streakService)
	achievementHandler := handlers.NewAchievementHandler(achievementService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	trackingHandler := handlers.NewTrackingHandler(trackingService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	challengeDBHandler := handlers.NewChallengeDBHandler(challengeDBService)

	r := mux.NewRouter()

	go middleware.CleanupVisitors()

	r.Use(middleware.RateLimitMiddleware)
	r.Use(middleware.MonitorMiddleware)

	r.Handle("/metrics", middleware.BasicAuthMiddleware(promhttp.Handler()))
	r.PathPrefix("/debug/pprof/").Handler(middleware.PprofSecurityMiddleware(http.DefaultServeMux))

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := dbPool.Ping(ctx); err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status": "unhealthy", "error": "database connection failed"}`))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy", "service": "corpfinity-api"}`))
	}).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public auth routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")
	api.HandleFunc("/auth/refresh", authHandler.Refresh).Methods("POST")

	// Challenge library is public; it holds no user data.
	api.HandleFunc("/challenge-db/categories", challengeDBHandler.Categories).Methods("GET")
	api.HandleFunc("/challenge-db/challenges", challengeDBHandler.List).Methods("GET")
	api.HandleFunc("/challenge-db/random", challengeDBHandler.Random).Methods("GET")
	api.HandleFunc("/challenge-db/stats", challengeDBHandler.Stats).Methods("GET")

	// Protected routes
	auth := middleware.NewAuth([]byte(jwtSecret), cacheClient)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Middleware)

	protected.HandleFunc("/auth/logout", authHandler.Logout).Methods("POST")
	protected.HandleFunc("/auth/logout-all", authHandler.LogoutAll).Methods("POST")
	protected.HandleFunc("/auth/me", userHandler.GetProfile).Methods("GET")

	protected.HandleFunc("/user", userHandler.GetProfile).Methods("GET")
	protected.HandleFunc("/user", userHandler.UpdateProfile).Methods("PUT")
	protected.HandleFunc("/user", userHandler.DeleteAccount).Methods("DELETE")
	protected.HandleFunc("/user/stats", userHandler.GetStats).Methods("GET")

	protected.HandleFunc("/challenges/complete", challengeHandler.Complete).Methods("POST")
	protected.HandleFunc("/challenges/history", challengeHandler.History).Methods("GET")
	protected.HandleFunc("/challenges/today", challengeHandler.Today).Methods("GET")
	protected.HandleFunc("/challenges/{id}", challengeHandler.GetByID).Methods("GET")

	protected.HandleFunc("/streaks", streakHandler.GetStreak).Methods("GET")
	protected.HandleFunc("/streaks/validate", streakHandler.Validate).Methods("POST")
	protected.HandleFunc("/streaks/reset", streakHandler.Reset).Methods("POST")

	protected.HandleFunc("/achievements", achievementHandler.GetAchievements).Methods("GET")
	protected.HandleFunc("/achievements/check", achievementHandler.Check).Methods("POST")

	protected.HandleFunc("/reminders", reminderHandler.List).Methods("GET")
	protected.HandleFunc("/reminders", reminderHandler.Create).Methods("POST")
	protected.HandleFunc("/reminders/{id}", reminderHandler.Get).Methods("GET")
	protected.HandleFunc("/reminders/{id}", reminderHandler.Update).Methods("PUT")
	protected.HandleFunc("/reminders/{id}", reminderHandler.Delete).Methods("DELETE")
	protected.HandleFunc("/reminders/{id}/toggle", reminderHandler.Toggle).Methods("POST")

	protected.HandleFunc("/tracking/today", trackingHandler.GetToday).Methods("GET")
	protected.HandleFunc("/tracking/today", trackingHandler.UpdateToday).Methods("PUT")
	protected.HandleFunc("/tracking/water", trackingHandler.AddWater).Methods("POST")
	protected.HandleFunc("/tracking/mood", trackingHandler.SetMood).Methods("POST")
	protected.HandleFunc("/tracking/history", trackingHandler.History).Methods("GET")

	protected.HandleFunc("/notifications/register-device", notificationHandler.RegisterDevice).Methods("POST")
	protected.HandleFunc("/notifications/unregister-device", notificationHandler.UnregisterDevice).Methods("POST")
	protected.HandleFunc("/notifications/test", notificationHandler.TestSend).Methods("POST")

	corsHandler := gorillaHandlers.CORS(
		gorillaHandlers.AllowedOrigins([]string{"*"}),
		gorillaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorillaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", "X-Pprof-Secret"}),
		gorillaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorillaHandlers.AllowCredentials(),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	port = ":" + port

	server := http.Server{
		Addr:         port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Starting server on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server:", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	log.Println("Got signal:", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server shutdown complete")
}
