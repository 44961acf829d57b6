package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"eventbuddy/internal/config"
	"eventbuddy/internal/db"
	"eventbuddy/internal/model"
	"eventbuddy/internal/repository"
)

// Seeds a default admin account and a handful of sample events so the
// API is usable right after a fresh migration.
func main() {
	log.Println("Starting seed script...")

	_ = godotenv.Load()
	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Event{}, &model.Booking{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	eventRepo := repository.NewEventRepository(gormDB)

	// Admin account
	const adminEmail = "admin@eventbuddy.local"
	if _, err := userRepo.FindByEmail(ctx, adminEmail); err == gorm.ErrRecordNotFound {
		hash, err := bcrypt.GenerateFromPassword([]byte("admin12345"), 10)
		if err != nil {
			log.Fatalf("Failed to hash admin password: %v", err)
		}
		admin := &model.User{
			FullName:     "Event Buddy Admin",
			Email:        adminEmail,
			PasswordHash: string(hash),
			Role:         model.RoleAdmin,
		}
		if err := userRepo.Create(ctx, admin); err != nil {
			log.Fatalf("Failed to create admin: %v", err)
		}
		log.Printf("Created admin account %s", adminEmail)
	} else if err != nil {
		log.Fatalf("Failed to look up admin: %v", err)
	} else {
		log.Printf("Admin account %s already exists, skipping", adminEmail)
	}

	// Sample events dated relative to today
	today := time.Now()
	events := []model.Event{
		{
			EventName:     "Go Meetup",
			Location:      "Community Hall",
			Date:          today.AddDate(0, 0, 7).Format(model.DateLayout),
			Time:          "18:30",
			Description:   "Monthly Go user group meetup.",
			TotalCapacity: 50,
		},
		{
			EventName:     "Tech Conf",
			Location:      "Convention Center",
			Date:          today.AddDate(0, 1, 0).Format(model.DateLayout),
			Time:          "09:00",
			Description:   "Full-day technology conference.",
			TotalCapacity: 300,
		},
		{
			EventName:     "Jazz Night",
			Location:      "Riverside Club",
			Date:          today.AddDate(0, 0, 14).Format(model.DateLayout),
			Time:          "20:00",
			TotalCapacity: 80,
		},
	}

	created := 0
	for _, ev := range events {
		if _, err := eventRepo.FindByName(ctx, ev.EventName); err == nil {
			log.Printf("Event %q already exists, skipping", ev.EventName)
			continue
		} else if err != gorm.ErrRecordNotFound {
			log.Fatalf("Failed to look up event %q: %v", ev.EventName, err)
		}
		if err := eventRepo.Create(ctx, &ev); err != nil {
			log.Fatalf("Failed to create event %q: %v", ev.EventName, err)
		}
		created++
	}

	log.Printf("Seed complete: %d events created", created)
}
