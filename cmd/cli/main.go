package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/akeren/consent-intake/config"
	"github.com/akeren/consent-intake/internal/log"
	"github.com/akeren/consent-intake/pkg/migrations"
	"github.com/akeren/consent-intake/pkg/utils"
)

func main() {
	logger := log.NewLoggerWithJSONOutput()

	config.LoadEnvFiles(logger)

	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	switch args[0] {
	case "migrate":
		if err := migrate(logger, args[1:]); err != nil {
			logger.Error("Database migration failed", "error", err.Error())
			os.Exit(1)
		}

		logger.Info("Database migrations completed")
		return

	case "register":
		if err := register(args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return

	case "help", "-h", "--help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

// migrate applies migrations/*.sql to the postgres store, or rolls back with
// "migrate down [n]". Supabase projects run the same files through their own
// migration tooling.
func migrate(logger *log.Logger, args []string) error {
	direction, steps, err := parseMigrateArgs(args)
	if err != nil {
		return err
	}

	db, err := config.NewDatabase(logger, nil)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			logger.Warn("Failed to close SQL DB after migration", "error", err.Error())
		}
	}()

	migrationsDir := utils.GetEnvTrimmedOrDefault("MIGRATIONS_DIR", "migrations")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cfg := migrations.Config{Dir: migrationsDir, Logger: logger}
	if direction == "down" {
		return migrations.Down(ctx, sqlDB, cfg, steps)
	}
	return migrations.Up(ctx, sqlDB, cfg)
}

func parseMigrateArgs(args []string) (string, int, error) {
	if len(args) == 0 || args[0] == "up" {
		return "up", 0, nil
	}
	if args[0] != "down" {
		return "", 0, fmt.Errorf("unknown migrate direction %q (use up or down)", args[0])
	}
	if len(args) == 1 {
		return "down", 1, nil
	}

	steps, err := strconv.Atoi(args[1])
	if err != nil || steps <= 0 {
		return "", 0, fmt.Errorf("invalid step count %q", args[1])
	}
	return "down", steps, nil
}

func printUsage() {
	fmt.Println("Usage: cli <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  migrate    Apply database migrations (migrate down [n] rolls back)")
	fmt.Println("  register   Fill in the registration form in the terminal and submit it")
	fmt.Println()
	fmt.Println("Run 'cli register --help' for register flags.")
}
