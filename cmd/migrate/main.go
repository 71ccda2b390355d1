package main

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"

	"github.com/laundrycare/lce/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	m, err := migrate.New("file://migrations", migrationURL(cfg.Postgres))
	if err != nil {
		log.Fatalf("failed to initialize migrations: %v", err)
	}
	defer func() {
		if sourceErr, dbErr := m.Close(); sourceErr != nil || dbErr != nil {
			log.Printf("failed to close migration resources: %v, %v", sourceErr, dbErr)
		}
	}()

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("failed to apply migrations: %v", err)
		}
		log.Println("migrations applied")

	case "down":
		if err := m.Steps(-1); err != nil {
			log.Fatalf("failed to roll back last migration: %v", err)
		}
		log.Println("rolled back last migration")

	case "goto":
		if len(os.Args) < 3 {
			log.Fatal("goto requires a version number")
		}
		version, err := strconv.ParseUint(os.Args[2], 10, 64)
		if err != nil {
			log.Fatalf("invalid version number: %v", err)
		}
		if err := m.Migrate(uint(version)); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatalf("failed to migrate to version %d: %v", version, err)
		}
		log.Printf("migrated to version %d", version)

	case "status":
		version, dirty, err := m.Version()
		if err != nil {
			if errors.Is(err, migrate.ErrNilVersion) {
				log.Println("no migrations applied yet")
				return
			}
			log.Fatalf("failed to read migration version: %v", err)
		}
		suffix := ""
		if dirty {
			suffix = " (dirty)"
		}
		log.Printf("current migration version: %d%s", version, suffix)

	default:
		printUsage()
		os.Exit(1)
	}
}

func migrationURL(pg config.PostgresConfig) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(pg.User),
		url.QueryEscape(pg.Password),
		pg.Host,
		pg.Port,
		pg.DBName,
		pg.SSLMode,
	)
}

func printUsage() {
	fmt.Println("usage: go run cmd/migrate/main.go [command]")
	fmt.Println("commands:")
	fmt.Println("  up     - apply all pending migrations")
	fmt.Println("  down   - roll back the last migration")
	fmt.Println("  goto N - migrate to version N")
	fmt.Println("  status - show the current migration version")
}
