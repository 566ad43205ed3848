package reminder

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/example/vocabengine/internal/database"
	"github.com/go-co-op/gocron"
)

// Default quiet-hours bounds for review reminders
const (
	DefaultStartHour = 8
	DefaultEndHour   = 22
)

// Notifier delivers a review reminder to a user. Implemented by the
// delivery layer (push, email, bot).
type Notifier interface {
	SendReminder(userID int64, dueCount int) error
}

// Scheduler runs the periodic due-word check and notifies users who
// have reviews waiting
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  Notifier
}

// New creates a new scheduler instance
func New(notifier Notifier) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		notifier:  notifier,
	}
}

// Start begins the hourly reminder check without blocking
func (s *Scheduler) Start() {
	s.scheduler.Every(1).Hour().Do(s.checkAndSendReminders)
	s.scheduler.StartAsync()
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminders finds users with due words and sends each a
// reminder, respecting the configured quiet hours
func (s *Scheduler) checkAndSendReminders() {
	currentHour := time.Now().Hour()

	startHour := envHour("REMINDER_START_HOUR", DefaultStartHour)
	endHour := envHour("REMINDER_END_HOUR", DefaultEndHour)

	if currentHour < startHour || currentHour > endHour {
		log.Printf("Current hour %d is outside reminder hours (%d-%d), skipping reminders",
			currentHour, startHour, endHour)
		return
	}

	recordRepo := database.NewRecordRepository()
	counts, err := recordRepo.DueCountsByUser()
	if err != nil {
		log.Printf("Error counting due words: %v", err)
		return
	}

	for userID, due := range counts {
		if due == 0 {
			continue
		}
		if err := s.notifier.SendReminder(userID, due); err != nil {
			log.Printf("Error sending reminder to user %d: %v", userID, err)
		}
	}
}

// RunManualCheck forces a reminder check for one user
func (s *Scheduler) RunManualCheck(userID int64) error {
	recordRepo := database.NewRecordRepository()

	counts, err := recordRepo.DueCountsByUser()
	if err != nil {
		return err
	}

	if due := counts[userID]; due > 0 {
		return s.notifier.SendReminder(userID, due)
	}
	return nil
}

func envHour(name string, fallback int) int {
	if str := os.Getenv(name); str != "" {
		if h, err := strconv.Atoi(str); err == nil && h >= 0 && h <= 23 {
			return h
		}
	}
	return fallback
}
