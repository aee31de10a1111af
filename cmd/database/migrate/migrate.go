package migration

import (
	entities2 "Go-Course-Market/entities"
	"fmt"
	"log"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities2.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.Course{}); err != nil {
		log.Fatalf("Error migrating course database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.Purchase{}); err != nil {
		log.Fatalf("Error migrating purchase database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.ReferralStats{}); err != nil {
		log.Fatalf("Error migrating referral stats database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.CreatorStats{}); err != nil {
		log.Fatalf("Error migrating creator stats database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities2.Notification{}); err != nil {
		log.Fatalf("Error migrating notification database: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
