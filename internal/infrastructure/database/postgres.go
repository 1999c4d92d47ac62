package database

import (
	"fmt"
	"log"

	"github.com/Fouxth/CannabisPOS-sub000/internal/config"
	"github.com/Fouxth/CannabisPOS-sub000/internal/domain/entity"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Tenancy
		&entity.Tenant{},
		&entity.User{},

		// Catalog
		&entity.Category{},
		&entity.Product{},

		// Checkout
		&entity.Bill{},
		&entity.BillItem{},
		&entity.Sale{},
		&entity.SaleItem{},

		// Stock ledger
		&entity.StockMovement{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedDefaultData seeds the default tenant and its admin user so a fresh
// install can sign in and start selling.
func SeedDefaultData(db *gorm.DB, cfg *config.POSConfig) error {
	log.Println("Seeding default data...")

	var tenant entity.Tenant
	if err := db.Where("slug = ?", "default").First(&tenant).Error; err != nil {
		settings := entity.DefaultPricingSettings()
		settings.Currency = cfg.Currency
		settings.TaxRate = cfg.TaxRate
		settings.VATEnabled = cfg.VATEnabled

		tenant = entity.Tenant{
			Name:     "Default Store",
			Slug:     "default",
			Settings: settings,
		}
		if err := db.Create(&tenant).Error; err != nil {
			return fmt.Errorf("failed to create default tenant: %w", err)
		}
		log.Println("Default tenant created")
	}

	// Create admin user if configured via environment variables
	adminEmail := viper.GetString("ADMIN_EMAIL")
	adminPassword := viper.GetString("ADMIN_PASSWORD")
	adminName := viper.GetString("ADMIN_NAME")

	if adminEmail != "" && adminPassword != "" {
		var existingAdmin entity.User
		if err := db.Where("email = ?", adminEmail).First(&existingAdmin).Error; err != nil {
			hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
			if err != nil {
				log.Printf("Warning: failed to hash admin password: %v", err)
			} else {
				if adminName == "" {
					adminName = "Store Admin"
				}
				adminUser := entity.User{
					TenantID: tenant.ID,
					Name:     adminName,
					Email:    adminEmail,
					Password: string(hashedPassword),
					Role:     "admin",
				}
				if err := db.Create(&adminUser).Error; err != nil {
					log.Printf("Warning: failed to create admin user: %v", err)
				} else {
					log.Printf("Admin user created: %s", adminEmail)
				}
			}
		} else {
			log.Printf("Admin user already exists: %s", adminEmail)
		}
	}

	log.Println("Default data seeding completed")
	return nil
}
