package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"

	"govmadad/client"
	"govmadad/config"
	"govmadad/repository"
	"govmadad/routes"
	"govmadad/schema"
	"govmadad/service"
	"govmadad/worker"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Load configuration
	cfg := config.LoadConfig()

	if cfg.Admin.PasswordHash == "" {
		log.Println("Warning: ADMIN_PASSWORD_HASH not set, admin login disabled")
	}
	if cfg.Admin.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	// Initialize database connection (UTC for consistent timestamps)
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
	)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("Failed to open database connection: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	log.Println("Database connection established")

	// Ensure schema exists and carries the reconciler's derived-field columns
	schema.InitializeDatabase(db)
	schema.ValidateRequiredColumns(db, nil)

	// Initialize repositories
	complaintRepo := repository.NewComplaintRepository(db)

	// External service clients (submission path only)
	classifierClient := client.NewClassifierClient(cfg.Services.ClassifierURL)
	predictorClient := client.NewPredictorClient(cfg.Services.PredictorURL)

	// Initialize services
	complaintService := service.NewComplaintService(complaintRepo, classifierClient, predictorClient)
	reconcilerService := service.NewReconcilerService(complaintRepo)
	adminService := service.NewAdminService(complaintRepo, cfg.Admin)

	// Background reconciliation keeps countdowns fresh between read cycles
	const defaultIntervalSec = 3600
	intervalSeconds := cfg.Reconcile.WorkerIntervalSeconds
	if intervalSeconds <= 0 {
		intervalSeconds = defaultIntervalSec
	}
	reconcileWorker := worker.NewReconcileWorker(
		reconcilerService,
		time.Duration(intervalSeconds)*time.Second,
	)
	log.Printf("Reconcile worker interval: %d seconds", intervalSeconds)
	reconcileWorker.Start()
	defer reconcileWorker.Stop()

	// Setup routes
	router := routes.SetupRoutes(complaintService, reconcilerService, adminService, cfg.Admin)

	// Add CORS middleware
	corsHandler := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Max-Age", "3600")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}

	handler := corsHandler(router)

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
