package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/fittrackapp/fittrack-api/internal/config"
	"github.com/fittrackapp/fittrack-api/internal/model"
	"github.com/fittrackapp/fittrack-api/pkg/timezone"
)

func main() {
	// Load config
	cfg := config.Load()

	// Force DB logging off to avoid noise
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	log.Println("✅ Connected to Database")

	// Common password for all users
	password := "password123"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}

	// Create 5 users
	log.Println("🌱 Seeding 5 users...")

	for i := 1; i <= 5; i++ {
		username := fmt.Sprintf("user%d", i)
		email := fmt.Sprintf("user%d@fittrack.local", i)

		// Check if exists
		var existing model.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			continue
		}

		user := model.User{
			ID:           uuid.New(),
			Name:         fmt.Sprintf("User Number %d", i),
			Email:        email,
			Password:     string(hashedPassword),
			AuthProvider: model.AuthProviderEmail,
		}

		if err := db.Create(&user).Error; err != nil {
			log.Printf("❌ Failed to create user %s: %v", username, err)
			continue
		}
		log.Printf("✅ Created user: %s | Email: %s | Pass: %s", username, email, password)

		seedStepHistory(db, user, cfg.Steps.TZOffsetMinutes)
		seedWorkouts(db, user)
	}

	// Create a demo community with members and a few messages
	seedCommunity(db)

	log.Println("🎉 Seeding completed!")
}

// seedStepHistory writes two weeks of step records ending today.
func seedStepHistory(db *gorm.DB, user model.User, tzOffset int) {
	today := timezone.Today(tzOffset)
	for d := 0; d < 14; d++ {
		day := today.AddDate(0, 0, -d)
		record := model.DailyStepRecord{
			UserID:   user.ID,
			Day:      day,
			Steps:    3000 + rand.Intn(9000),
			Source:   model.DefaultStepSource,
			SyncedAt: day.Add(20 * time.Hour),
		}
		if err := db.Create(&record).Error; err != nil {
			log.Printf("❌ Failed to seed steps for %s: %v", user.Email, err)
			return
		}
	}
	log.Printf("👟 Seeded 14 days of steps for %s", user.Email)
}

func seedWorkouts(db *gorm.DB, user model.User) {
	types := []string{"Running", "Cycling", "Yoga"}
	for i, wt := range types {
		met := 6.0 + float64(i)
		entry := model.WorkoutLogEntry{
			UserID:          user.ID,
			WorkoutType:     wt,
			StartTime:       time.Now().AddDate(0, 0, -i-1),
			DurationSeconds: 1800 + i*600,
			Calories:        float64(200 + i*80),
			MET:             &met,
		}
		if err := db.Create(&entry).Error; err != nil {
			log.Printf("❌ Failed to seed workout for %s: %v", user.Email, err)
			return
		}
	}
	log.Printf("🏋️  Seeded %d workouts for %s", len(types), user.Email)
}

func seedCommunity(db *gorm.DB) {
	// Find first 3 users
	var users []model.User
	if err := db.Order("email").Limit(3).Find(&users).Error; err != nil || len(users) < 3 {
		return
	}

	owner := users[0]
	members := users[1:]

	// Check if the demo community exists
	var count int64
	db.Model(&model.Community{}).Where("name = ?", "Morning Walkers").Count(&count)
	if count > 0 {
		return
	}

	community := model.Community{
		ID:        uuid.New(),
		Name:      "Morning Walkers",
		IsPublic:  true,
		OwnerID:   owner.ID,
		OwnerName: owner.Name,
	}

	if err := db.Create(&community).Error; err != nil {
		log.Printf("❌ Failed to create community: %v", err)
		return
	}

	// Owner joins their own roster
	db.Create(&model.CommunityMember{
		CommunityID: community.ID,
		UserID:      owner.ID,
		UserName:    owner.Name,
		JoinedAt:    time.Now(),
	})

	for _, m := range members {
		db.Create(&model.CommunityMember{
			CommunityID: community.ID,
			UserID:      m.ID,
			UserName:    m.Name,
			JoinedAt:    time.Now(),
		})
	}

	// Add a welcome message
	msg := model.CommunityMessage{
		ID:          uuid.New(),
		CommunityID: community.ID,
		UserID:      owner.ID,
		UserName:    owner.Name,
		Body:        "Welcome to Morning Walkers! 🚶 Let's hit 10k steps today!",
	}
	db.Create(&msg)

	log.Println("✅ Created demo community: 'Morning Walkers' with 3 members")
}
