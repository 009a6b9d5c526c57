package entity

import "time"

// Attributes is a flat field-name to value snapshot of an entity. Values are
// limited to comparable scalars (int64, int, float64, string, bool, nil) so two
// snapshots of the same type can be compared field by field.
type Attributes map[string]any

// TimestampField is the bookkeeping column bumped on every save.
const TimestampField = "updated_at"

// Auditable is implemented by every entity whose mutations are recorded in the
// audit log. Each implementation enumerates its own fields in AuditSnapshot.
type Auditable interface {
	AuditType() string
	AuditKey() int64
	AuditSnapshot() Attributes
}

// Diff returns the fields of current whose value differs from prior, carrying
// the new value. Fields missing from prior count as changed.
func Diff(prior, current Attributes) Attributes {
	changed := Attributes{}
	for field, value := range current {
		old, ok := prior[field]
		if !ok || old != value {
			changed[field] = value
		}
	}
	return changed
}

func snapshotTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}

func snapshotString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
