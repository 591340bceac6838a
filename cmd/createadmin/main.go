package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"jobportal_backend/database"
	"jobportal_backend/internal/app"
	"jobportal_backend/internal/config"
	"jobportal_backend/internal/logger"
)

func main() {
	name := flag.String("name", "Administrator", "display name of the admin")
	emailAddr := flag.String("email", "", "login email of the admin")
	password := flag.String("password", "", "password of the admin (at least 6 characters)")
	migrate := flag.Bool("migrate", true, "run AutoMigrate before inserting")
	flag.Parse()

	if *emailAddr == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: createadmin -email admin@example.com -password secret [-name Admin]")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}
	logger.Init(cfg.Server.Env)

	db, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if *migrate {
		if err := database.AutoMigrate(db); err != nil {
			logger.Fatal("Failed to migrate database", "error", err)
		}
	}

	admin, err := app.CreateAdmin(db, *name, *emailAddr, *password)
	if errors.Is(err, app.ErrAdminExists) {
		fmt.Fprintf(os.Stderr, "user %s already exists\n", *emailAddr)
		os.Exit(1)
	}
	if err != nil {
		logger.Fatal("Failed to create admin", "error", err)
	}

	fmt.Printf("admin created: %s (%s)\n", admin.Email, admin.ID)
}
