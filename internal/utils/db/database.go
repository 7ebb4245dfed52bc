package db

import (
	"context"
	"fmt"
	"time"

	"github.com/GaleriaDecor/api-arquiteto/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func dsn(cfg config.DB, c Credentials) string {
	s := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d",
		cfg.Host, c.Username, c.Password, cfg.Nome, cfg.Porta)
	if cfg.SSLDesabilitado {
		s += " sslmode=disable"
	}
	return s
}

// ConnectDataBase abre o postgres com as credenciais do ambiente ou do Secrets Manager.
func ConnectDataBase(ctx context.Context, cfg config.DB) (*gorm.DB, error) {
	creds, err := retrieveCredentials(ctx, cfg, novoClienteSecrets)
	if err != nil {
		return nil, err
	}

	database, err := gorm.Open(postgres.Open(dsn(cfg, creds)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("abrir banco: %w", err)
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return database, nil
}
