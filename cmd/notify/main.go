// Command notify runs one deadline-notification scan and exits. It is meant
// to be invoked by cron every 5 minutes:
//
//	*/5 * * * * /usr/local/bin/notify
//
// The scan interval must stay at or below the fire window the scan uses to
// detect threshold crossings; running it less often than every 5 minutes will
// miss crossings.
package main

import (
	"log"
	"time"

	"tasktracker/internal/config"
	"tasktracker/internal/database"
	"tasktracker/internal/repository"
	"tasktracker/internal/services"
)

func main() {
	cfg := config.Load()

	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	db := database.GetDB()
	taskRepo := repository.NewTaskRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	svc := services.NewNotificationService(taskRepo, notificationRepo)

	now := time.Now().UTC()
	log.Printf("Starting deadline notification check at %s", now.Format(time.RFC3339))

	created, err := svc.RunDeadlineScan(now)
	if err != nil {
		log.Fatalf("Deadline notification check failed: %v", err)
	}

	log.Printf("Deadline notification check completed, %d notification(s) created", created)
}
