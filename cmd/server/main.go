package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"quizapp/internal/auth"
	"quizapp/internal/dashboard"
	"quizapp/internal/models"
	"quizapp/internal/quiz"
	"quizapp/internal/result"
	"quizapp/pkg/cache"
	"quizapp/pkg/database"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found")
	}

	// Initialize database
	db, err := database.NewPostgresDB(database.Config{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.Result{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Quiz cache is optional; without REDIS_ADDR every read hits Postgres.
	var quizCache quiz.QuizCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		quizCache = cache.NewRedisCache(addr)
	}

	// Initialize repositories
	authRepo := auth.NewRepository(db)
	quizRepo := quiz.NewRepository(db)
	resultRepo := result.NewRepository(db)

	// Initialize services
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatalf("JWT_SECRET is required")
	}
	authService := auth.NewService(authRepo, jwtSecret)
	quizService := quiz.NewService(quizRepo, resultRepo, quizCache)
	resultService := result.NewService(resultRepo, quizRepo, authRepo)
	dashboardService := dashboard.NewService(resultRepo, quizRepo)

	// Initialize handlers
	authHandler := auth.NewHandler(authService)
	quizHandler := quiz.NewHandler(quizService)
	resultHandler := result.NewHandler(resultService)
	dashboardHandler := dashboard.NewHandler(dashboardService)

	// Setup router
	router := mux.NewRouter()

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("QuizApp backend is running"))
	}).Methods("GET")

	// Auth routes - no JWT required
	router.HandleFunc("/api/auth/signup", authHandler.Signup).Methods("POST", "OPTIONS")
	router.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// Public quiz reads - answer keys stripped
	router.HandleFunc("/api/quiz", quizHandler.ListQuizzes).Methods("GET")
	router.HandleFunc("/api/quiz/{id:[0-9]+}", quizHandler.GetQuiz).Methods("GET")

	// Everything below requires a verified identity
	api := router.PathPrefix("/api").Subrouter()
	api.Use(auth.JWTMiddleware(jwtSecret))

	requireAdmin := auth.RequireRole(models.RoleAdmin)
	requireStudent := auth.RequireRole(models.RoleStudent)

	api.Handle("/auth/all", requireAdmin(http.HandlerFunc(authHandler.ListUsers))).Methods("GET")

	api.Handle("/quiz/create", requireAdmin(http.HandlerFunc(quizHandler.CreateQuiz))).Methods("POST", "OPTIONS")
	api.Handle("/quiz/admin/{id:[0-9]+}", requireAdmin(http.HandlerFunc(quizHandler.GetQuizAdmin))).Methods("GET")
	api.Handle("/quiz/{id:[0-9]+}", requireAdmin(http.HandlerFunc(quizHandler.UpdateQuiz))).Methods("PUT", "OPTIONS")
	api.Handle("/quiz/{id:[0-9]+}", requireAdmin(http.HandlerFunc(quizHandler.DeleteQuiz))).Methods("DELETE", "OPTIONS")

	api.HandleFunc("/quiz/{id:[0-9]+}/submit", quizHandler.Submit).Methods("POST", "OPTIONS")
	api.HandleFunc("/quiz/myresults", resultHandler.Mine).Methods("GET")
	api.HandleFunc("/quiz/performance/stats", dashboardHandler.Performance).Methods("GET")
	api.Handle("/quiz/results/user/{email}", requireAdmin(http.HandlerFunc(resultHandler.ByEmail))).Methods("GET")
	api.HandleFunc("/quiz/results/{resultId:[0-9]+}", resultHandler.Review).Methods("GET")

	api.HandleFunc("/results/mine", resultHandler.Mine).Methods("GET")
	api.HandleFunc("/results/{id:[0-9]+}", resultHandler.GetByID).Methods("GET")

	api.Handle("/dashboard/student", requireStudent(http.HandlerFunc(dashboardHandler.Student))).Methods("GET")

	// CORS middleware configuration
	origins := []string{"http://localhost:3000"}
	if raw := os.Getenv("CORS_ORIGINS"); raw != "" {
		origins = strings.Split(raw, ",")
	}
	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	handler := corsMiddleware.Handler(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown setup
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt)
	<-c

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server shutdown gracefully")
}
