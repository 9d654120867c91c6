// Command reconcile runs reconciliation passes outside the API server:
// once with -once, or on a cron schedule (RECONCILE_CRON, default hourly).
// Useful when the API server is scaled to zero but countdowns must stay
// fresh, e.g. driven by a platform scheduler.
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"govmadad/config"
	"govmadad/repository"
	"govmadad/service"
)

func main() {
	once := flag.Bool("once", false, "run a single reconciliation pass and exit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}
	cfg := config.LoadConfig()

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

	reconciler := service.NewReconcilerService(repository.NewComplaintRepository(db))

	if *once {
		runPass(context.Background(), reconciler)
		return
	}

	schedule := os.Getenv("RECONCILE_CRON")
	if schedule == "" {
		schedule = "0 * * * *" // hourly
	}

	c := cron.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if _, err := c.AddFunc(schedule, func() { runPass(ctx, reconciler) }); err != nil {
		log.Fatalf("Invalid RECONCILE_CRON %q: %v", schedule, err)
	}
	log.Printf("Reconciliation scheduled (cron: %s)", schedule)
	c.Start()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	// Abandoning an in-flight pass is safe: each record's update is
	// independent and the next pass retries anything unfinished.
	cancel()
	<-c.Stop().Done()
}

func runPass(ctx context.Context, reconciler *service.ReconcilerService) {
	results, err := reconciler.ReconcileAll(ctx)
	if err != nil {
		log.Printf("Reconciliation pass failed: %v", err)
		return
	}
	changed := 0
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else if r.Changed {
			changed++
		}
	}
	log.Printf("Reconciliation pass: %d records, %d updated, %d write failures", len(results), changed, failed)
}
