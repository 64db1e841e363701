package audit

import (
	"context"
	"log"

	"github.com/dinhtankhiem/cua-hang-thuc-pham-xanh/domain"
)

// LogAuditor implements domain.AuditLogger on the standard logger. One line
// per business event, grep-friendly key=value fields.
type LogAuditor struct{}

// NewLogAuditor creates a new log-backed audit logger
func NewLogAuditor() domain.AuditLogger {
	return &LogAuditor{}
}

// LogEvent implements domain.AuditLogger
func (l *LogAuditor) LogEvent(_ context.Context, event *domain.AuditEvent) {
	if event.Success {
		log.Printf("%s: user_id=%d email=%s timestamp=%s",
			event.EventType, event.UserID, event.Email, event.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
		return
	}
	log.Printf("%s: user_id=%d email=%s error=%q timestamp=%s",
		event.EventType, event.UserID, event.Email, event.ErrorMsg, event.Timestamp.Format("2006-01-02T15:04:05Z07:00"))
}
