package seeders

import (
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/purrday-app/purrday_api/model"
	"github.com/purrday-app/purrday_api/shared"
)

const (
	demoEmail    = "demo@purrday.app"
	demoUsername = "demo"
	demoPassword = "DemoPurrday1!"
)

// DemoSeeder creates a demo account with a ledger, a few todos and a short
// mood history, so a fresh install has something to look at.
type DemoSeeder struct {
	db *gorm.DB
}

func NewDemoSeeder(db *gorm.DB) *DemoSeeder {
	return &DemoSeeder{db: db}
}

func (s *DemoSeeder) SeedDemoUser() error {
	var existing model.User
	err := s.db.Where("email = ?", demoEmail).First(&existing).Error
	if err == nil {
		log.Println("Demo user already exists, skipping")
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	userID, err := uuid.NewV7()
	if err != nil {
		return err
	}

	user := model.User{
		ID:       userID.String(),
		Email:    demoEmail,
		Username: demoUsername,
		Password: string(hashed),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return err
	}

	yesterday := shared.DateKey(time.Now().In(shared.RefLocation()).AddDate(0, 0, -1))

	ledgerID, err := uuid.NewV7()
	if err != nil {
		return err
	}
	ledger := model.Ledger{
		ID:               ledgerID.String(),
		UserID:           user.ID,
		JellyCount:       5,
		LastJellyDate:    &yesterday,
		LastActivityDate: &yesterday,
		LoginStreak:      3,
		UnlockedCats:     []byte(`["dudu"]`),
		SelectedCat:      "dudu",
	}
	if err := s.db.Create(&ledger).Error; err != nil {
		return err
	}

	todos := []string{
		"Water the plants",
		"Finish the quarterly report",
		"Call grandma",
	}
	for _, text := range todos {
		todoID, err := uuid.NewV7()
		if err != nil {
			return err
		}
		todo := model.Todo{
			ID:     todoID.String(),
			UserID: user.ID,
			Text:   text,
			Date:   shared.Today(),
		}
		if err := s.db.Create(&todo).Error; err != nil {
			return err
		}
	}

	moodID, err := uuid.NewV7()
	if err != nil {
		return err
	}
	mood := model.MoodEntry{
		ID:     moodID.String(),
		UserID: user.ID,
		Date:   yesterday,
		Mood:   shared.MoodGood,
	}
	if err := s.db.Create(&mood).Error; err != nil {
		return err
	}

	log.Printf("Seeded demo user %s (password: %s)", demoEmail, demoPassword)
	return nil
}
