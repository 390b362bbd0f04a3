package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ovaphlow/pitchfork/service-quest-go/internal/config"
	"github.com/ovaphlow/pitchfork/service-quest-go/internal/router"
	"github.com/ovaphlow/pitchfork/service-quest-go/internal/task"
	taskrepo "github.com/ovaphlow/pitchfork/service-quest-go/internal/task/repo"
	"github.com/ovaphlow/pitchfork/service-quest-go/internal/user"
	userrepo "github.com/ovaphlow/pitchfork/service-quest-go/internal/user/repo"
	"github.com/ovaphlow/pitchfork/service-quest-go/pkg/database"
	"github.com/ovaphlow/pitchfork/service-quest-go/pkg/utilities"
)

func main() {
	// load .env file if present so os.Getenv picks values from it
	// this is best-effort: if no .env exists, continue (use defaults or real env)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// init logger
	lg, err := utilities.Init(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer lg.Sync()

	sugar := lg.Sugar()
	sugar.Info("starting service-quest-go")

	// init db
	db, err := database.Connect(cfg.Database)
	if err != nil {
		sugar.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db.DB, sugar); err != nil {
		sugar.Fatalf("db migrate: %v", err)
	}

	taskSvc := task.NewService(taskrepo.NewTaskRepo(db), sugar)
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = taskSvc.SeedCatalog(seedCtx)
	seedCancel()
	if err != nil {
		sugar.Fatalf("seed task catalog: %v", err)
	}

	userSvc := user.NewUserService(userrepo.NewUserRepo(db), user.BcryptHasher{Cost: cfg.BcryptCost}, sugar)

	// graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := router.RegisterRoutes(sugar,
		user.NewHandler(userSvc, sugar),
		task.NewHandler(taskSvc, sugar),
		router.Options{
			AllowedOrigin: cfg.AllowedOrigin,
			NewRequestID:  utilities.NewIDGenerator(cfg.SnowflakeNode),
		},
	)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalf("http server failed: %v", err)
		}
	}()
	sugar.Infow("service is running; press Ctrl+C to stop", "addr", cfg.HTTPAddr)

	<-ctx.Done()

	sugar.Info("shutting down")

	// give a short grace period for cleanup
	doneCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(doneCtx); err != nil {
		sugar.Warnf("http server shutdown failed: %v", err)
	}

	sugar.Info("goodbye")
}
