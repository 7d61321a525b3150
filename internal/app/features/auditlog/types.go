// internal/app/features/auditlog/types.go
package auditlog

import (
	"time"

	"github.com/mejbaurrahman/JHF/internal/app/store/audit"
)

// listItem is one audit event with actor and target names resolved.
type listItem struct {
	ID         string            `json:"_id"`
	Timestamp  time.Time         `json:"timestamp"`
	Category   string            `json:"category"`
	EventType  string            `json:"eventType"`
	ActorName  string            `json:"actorName,omitempty"`
	TargetName string            `json:"targetName,omitempty"`
	IP         string            `json:"ip"`
	Success    bool              `json:"success"`
	Reason     string            `json:"failureReason,omitempty"`
	Details    map[string]string `json:"details,omitempty"`
}

type listResponse struct {
	Items      []listItem `json:"items"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
	Total      int64      `json:"total"`
}

var authEvents = []string{
	audit.EventLoginSuccess,
	audit.EventLoginFailedUserNotFound,
	audit.EventLoginFailedWrongPassword,
	audit.EventLoginFailedUserDisabled,
	audit.EventLoginFailedRateLimit,
	audit.EventUserRegistered,
	audit.EventProfileUpdated,
	audit.EventPasswordChanged,
}

var adminEvents = []string{
	audit.EventUserCreated,
	audit.EventUserDeleted,
	audit.EventUserRoleChanged,
	audit.EventUserStatusChanged,
	audit.EventEventCreated,
	audit.EventEventUpdated,
	audit.EventEventDeleted,
	audit.EventEventStatusChanged,
	audit.EventDonationStatusChanged,
	audit.EventFeeRecorded,
	audit.EventFeeStatusChanged,
	audit.EventExpenseCreated,
	audit.EventExpenseUpdated,
	audit.EventExpenseDeleted,
	audit.EventContentUpdated,
	audit.EventCommitteeChanged,
	audit.EventGalleryChanged,
	audit.EventNotificationSent,
}

// eventTypesForCategory returns the event types for a category, or all of
// them when category is empty.
func eventTypesForCategory(category string) []string {
	switch category {
	case audit.CategoryAuth:
		return authEvents
	case audit.CategoryAdmin:
		return adminEvents
	case "":
		all := make([]string, 0, len(authEvents)+len(adminEvents))
		all = append(all, authEvents...)
		return append(all, adminEvents...)
	default:
		return nil
	}
}
