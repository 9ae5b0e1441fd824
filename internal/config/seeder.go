package config

import (
	"log"

	"gorm.io/gorm"

	"silc-backoffice/internal/adapters/persistence/models"
	"silc-backoffice/internal/core/domain"
	"silc-backoffice/internal/pkg/password"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedSuperAdmin(); err != nil {
		log.Printf("⚠️ Super admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedSuperAdmin seeds the default super admin account.
// This is for development/testing only.
// In production, create the account through a secure process.
func (s *Seeder) seedSuperAdmin() error {
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", string(domain.RoleSuperAdmin)).Count(&count)
	if count > 0 {
		return nil // Super admin already exists
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	// Super admin carries no branch: it sees all branches by definition
	admin := &models.User{
		Username:    "superadmin",
		Email:       "admin@silc.co.th",
		Password:    hashedPassword,
		DisplayName: "Head Office Admin",
		Role:        string(domain.RoleSuperAdmin),
		BranchID:    nil,
		IsActive:    true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Super admin created: %s", admin.Username)
	return nil
}
