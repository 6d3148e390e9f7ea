package config

import (
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
)

type StorageBackend string

const (
	BackendSqlite   StorageBackend = "sqlite"
	BackendRedis    StorageBackend = "redis"
	BackendPostgres StorageBackend = "postgres"
	BackendMemory   StorageBackend = "memory"
)

type Storage struct {
	Backend       StorageBackend
	SqlitePath    string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
}

func NewStorage() (*Storage, error) {
	backend, ok := os.LookupEnv("STORAGE_BACKEND")
	if !ok {
		backend = string(BackendSqlite)
	}

	s := &Storage{Backend: StorageBackend(backend)}

	switch s.Backend {
	case BackendSqlite:
		s.SqlitePath, ok = os.LookupEnv("SQLITE_PATH")
		if !ok {
			s.SqlitePath = "minebot.db"
		}
	case BackendRedis:
		s.RedisAddr, ok = os.LookupEnv("REDIS_ADDR")
		if !ok {
			return nil, fmt.Errorf("no REDIS_ADDR env variable set")
		}
		s.RedisPassword = os.Getenv("REDIS_PASSWORD")
		var err error
		if s.RedisDB, err = intEnv("REDIS_DB", 0); err != nil {
			return nil, err
		}
	case BackendPostgres, BackendMemory:
		// postgres reads DATABASE_URL through DbURL; memory needs nothing
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}

	return s, nil
}

func DbURL() (string, error) {
	dbURL, ok := os.LookupEnv("DATABASE_URL")
	if !ok {
		return "", fmt.Errorf("no DATABASE_URL env variable set")
	}
	return dbURL, nil
}

func NewPgxpoolConfig() (*pgxpool.Config, error) {
	dbURL, err := DbURL()
	if err != nil {
		return nil, err
	}
	return pgxpool.ParseConfig(dbURL)
}
