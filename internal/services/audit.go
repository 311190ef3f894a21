package services

import (
	"log"

	"tasktracker/internal/models"
	"tasktracker/internal/repository"
)

// AuditLogger appends entries to the activity log. Appends are
// fire-and-forget: a failed write is logged and swallowed, never propagated,
// so an audit problem cannot roll back the operation that produced it.
type AuditLogger struct {
	repo repository.ActivityLogRepository
}

// NewAuditLogger creates a new AuditLogger.
func NewAuditLogger(repo repository.ActivityLogRepository) *AuditLogger {
	return &AuditLogger{repo: repo}
}

// Append records an action performed by actorID.
func (l *AuditLogger) Append(actorID, action string) {
	if l == nil || l.repo == nil {
		return
	}

	entry := &models.ActivityLog{
		UserID: actorID,
		Action: action,
	}
	if err := l.repo.Append(entry); err != nil {
		log.Printf("audit: failed to append entry for %s: %v", actorID, err)
	}
}
