package entity

import "time"

type AuditAction string

const (
	AuditActionCreated AuditAction = "created"
	AuditActionUpdated AuditAction = "updated"
	AuditActionDeleted AuditAction = "deleted"
)

// Entity type labels stored in audit_logs.entity_type.
const (
	AuditTypeProduct    = "Product"
	AuditTypeCategory   = "Category"
	AuditTypeInventory  = "Inventory"
	AuditTypeAuditEntry = "AuditLog"
)

// AuditEntry is an immutable record of one state change on a domain entity.
type AuditEntry struct {
	ID         int64       `json:"id"`
	UserID     *int64      `json:"user_id"`
	EntityType string      `json:"entity_type"`
	EntityID   int64       `json:"entity_id"`
	Action     AuditAction `json:"action"`
	Changes    Attributes  `json:"changes"`
	CreatedAt  time.Time   `json:"created_at"`
}

// AuditEntry implements Auditable only so the recorder can recognise and skip it.
var _ Auditable = (*AuditEntry)(nil)

func (e *AuditEntry) AuditType() string { return AuditTypeAuditEntry }
func (e *AuditEntry) AuditKey() int64   { return e.ID }

func (e *AuditEntry) AuditSnapshot() Attributes {
	return Attributes{
		"id":          e.ID,
		"entity_type": e.EntityType,
		"entity_id":   e.EntityID,
		"action":      string(e.Action),
	}
}

// AuditActor is the display data joined onto an entry when listing.
type AuditActor struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuditEntryView struct {
	AuditEntry
	User *AuditActor `json:"user"`
}

// DailyCount is one row of a per-day grouped audit count.
type DailyCount struct {
	Date    string
	Updates int
}
