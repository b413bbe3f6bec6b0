package db

import (
	"fmt"
	"log"

	"github.com/evently/marketplace-app/models"
)

// Migrate runs AutoMigrate; only called explicitly.
func Migrate() {
	err := DB.AutoMigrate(
		&models.Account{},
		&models.AdminProfile{},
		&models.EmployeeProfile{},
		&models.CustomerProfile{},
		&models.ProviderProfile{},
		&models.Service{},
		&models.Event{},
		&models.Proposal{},
		&models.Booking{},
		&models.Activity{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	fmt.Println("✅ Migrations applied successfully!")
}
