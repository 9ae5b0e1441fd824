package config

import (
	"log"

	"gorm.io/gorm"

	"silc-backoffice/internal/adapters/persistence/models"
)

// SeedMasterData seeds initial master data
func SeedMasterData(db *gorm.DB) error {
	// Seed Branches
	if err := seedBranches(db); err != nil {
		return err
	}

	// Seed Insurance Products
	if err := seedProducts(db); err != nil {
		return err
	}

	log.Println("✅ Master data seeded successfully")
	return nil
}

func seedBranches(db *gorm.DB) error {
	branches := []models.Branch{
		{
			Code:     "HQ",
			Name:     "Head Office",
			Address:  "1 Silom Road, Bangkok",
			IsActive: true,
		},
		{
			Code:     "CNX",
			Name:     "Chiang Mai Branch",
			Address:  "99 Nimman Road, Chiang Mai",
			IsActive: true,
		},
		{
			Code:     "HKT",
			Name:     "Phuket Branch",
			Address:  "45 Thepkrasattri Road, Phuket",
			IsActive: true,
		},
	}

	for _, b := range branches {
		var existing models.Branch
		if err := db.Where("code = ?", b.Code).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&b).Error; err != nil {
					return err
				}
				log.Printf("   Created branch: %s", b.Name)
			}
		}
	}
	return nil
}

func seedProducts(db *gorm.DB) error {
	products := []models.Product{
		{
			Code:        "TERM-LIFE",
			Name:        "Term Life Protection",
			Description: "Pure protection term life cover, renewable yearly",
			BasePremium: 1200.00,
			IsActive:    true,
		},
		{
			Code:        "WHOLE-LIFE",
			Name:        "Whole Life Saver",
			Description: "Whole life cover with cash value accumulation",
			BasePremium: 3500.00,
			IsActive:    true,
		},
		{
			Code:        "ACCIDENT",
			Name:        "Personal Accident Shield",
			Description: "Accidental death and disability cover",
			BasePremium: 650.00,
			IsActive:    true,
		},
		{
			Code:        "HEALTH",
			Name:        "Health Care Plus",
			Description: "Inpatient and outpatient medical expense cover",
			BasePremium: 2800.00,
			IsActive:    true,
		},
	}

	for _, p := range products {
		var existing models.Product
		if err := db.Where("code = ?", p.Code).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				if err := db.Create(&p).Error; err != nil {
					return err
				}
				log.Printf("   Created product: %s", p.Name)
			}
		}
	}
	return nil
}
