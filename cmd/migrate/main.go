package main

import (
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/papana-farm/metdash/internal/config"
	"github.com/papana-farm/metdash/internal/repository"
)

// migrate runs goose commands (up, down, status, version, ...) against the fetch log database.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found: %v", err)
	}

	cfg, err := config.NewDBConfig()
	if err != nil {
		log.Panicf("failed to load configuration: %v", err)
	}

	source := flag.String("db", cfg.Source, "sqlite database file")
	flag.Parse()

	command := "status"
	var args []string
	if flag.NArg() > 0 {
		command = flag.Arg(0)
		args = flag.Args()[1:]
	}

	db, err := repository.CreateSqliteDb(cfg.Dialect, *source)
	if err != nil {
		log.Panic(err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Println("DB close error:", err)
		}
	}()

	if err := repository.RunMigrations(context.Background(), db, cfg.Dialect, command, args...); err != nil {
		log.Panicf("goose %s: %v", command, err)
	}
}
