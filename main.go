package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/example/vocabengine/internal/database"
	"github.com/example/vocabengine/internal/excel"
	"github.com/example/vocabengine/internal/reminder"
)

// logNotifier writes reminders to the log. Deployments replace it
// with a real delivery channel.
type logNotifier struct{}

func (logNotifier) SendReminder(userID int64, dueCount int) error {
	log.Printf("User %d has %d words due for review", userID, dueCount)
	return nil
}

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Optional one-shot import of a word list before serving
	if importPath := os.Getenv("IMPORT_FILE"); importPath != "" {
		config := excel.DefaultImportConfig()
		config.FilePath = importPath

		result, err := excel.ImportWords(config)
		if err != nil {
			log.Fatalf("Failed to import words: %v", err)
		}
		log.Printf("Import finished: %d processed, %d created, %d updated, %d skipped",
			result.TotalProcessed, result.Created, result.Updated, result.Skipped)
		for _, e := range result.Errors {
			log.Printf("Import error: %s", e)
		}
	}

	sched := reminder.New(logNotifier{})
	sched.Start()
	defer sched.Stop()

	log.Println("Vocabulary engine started. Press Ctrl+C to stop.")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	log.Printf("Received signal: %v, shutting down", sig)
}
