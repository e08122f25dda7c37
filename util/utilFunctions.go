package util

import (
	"database/sql"
	"fmt"

	"github.com/BOVAGE/QuizBank/config"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

var DB *sql.DB
var Log *zap.SugaredLogger

// InitLogger builds the process logger and populates Log.
func InitLogger(env string) (*zap.Logger, error) {
	var logger *zap.Logger
	var err error
	if env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}
	Log = logger.Sugar()
	return logger, nil
}

// DBConnectAndPopulateDBVar opens the postgres pool and populates DB.
func DBConnectAndPopulateDBVar(cfg config.DB) error {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return fmt.Errorf("couldn't open database: %w", err)
	}
	if err = db.Ping(); err != nil {
		return fmt.Errorf("couldn't reach database: %w", err)
	}
	DB = db
	return nil
}
