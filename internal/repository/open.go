package repository

import (
	"strings"

	"magicgatherer-api/internal/config"
)

// Open connects to the relational store selected by cfg.Type.
func Open(cfg config.DatabaseConfig) (*SQLStore, error) {
	switch strings.ToLower(cfg.Type) {
	case "postgres", "postgresql":
		return NewPostgresStore(cfg.PostgresDSN())
	case "mysql":
		return NewMySQLStore(cfg.MySQLDSN())
	default: // sqlite
		return NewSQLiteStore(cfg.Path)
	}
}
