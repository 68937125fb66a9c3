package main

import (
	"log"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"

	"github.com/fdg312/fitness-tracker/internal/config"
	"github.com/fdg312/fitness-tracker/internal/dbmigrate"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: go run ./cmd/migrate [%s]", strings.Join(dbmigrate.Commands, "|"))
	}
	command := os.Args[1]

	cfg := config.Load()
	target, err := dbmigrate.SelectTarget(cfg, false)
	if err != nil {
		log.Fatal(err)
	}
	if target.Warning != "" {
		log.Printf("WARN migrate: %s", target.Warning)
	}
	log.Printf("migrate: command=%s using=%s", command, target.Source)

	if err := dbmigrate.Run(command, target.URL); err != nil {
		log.Fatal(err)
	}
	log.Printf("migrate: %s completed successfully", command)
}
