package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"linkup/internal/config"
	"linkup/internal/dbmysql"
	"linkup/internal/friend"
	"linkup/internal/logger"
)

// Repair sweep for the relationship store. Run from cron; exits non-zero on
// a failed scan so the scheduler can alert.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system env variables")
	}

	cfg := config.Load("config/config.yaml")
	logger.Init(cfg.Logging)
	defer logger.Sync()

	db, err := dbmysql.NewMySQL(cfg)
	if err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	reconciler := friend.NewReconciler(friend.NewEdgeRepository(db))
	report, err := reconciler.Run(ctx)
	if err != nil {
		logger.Fatal("reconcile sweep failed", zap.Error(err))
	}

	logger.Info("reconcile sweep complete",
		zap.Int("orphans_deleted", report.OrphansDeleted),
		zap.Int("pairs_realigned", report.PairsRealigned),
		zap.Int("pairs_deleted", report.PairsDeleted))
}
