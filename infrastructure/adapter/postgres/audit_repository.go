package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/stockroom/backoffice/application/port/outbound"
	"github.com/stockroom/backoffice/domain/entity"
)

// AuditRepository stores audit entries in audit_logs. It exposes no update or
// delete: entries are immutable once written.
type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts the entry inside the transaction bound to ctx, if any, and
// fills in the assigned id and timestamp.
func (r *AuditRepository) Create(ctx context.Context, entry *entity.AuditEntry) error {
	if entry == nil {
		return fmt.Errorf("audit entry cannot be nil")
	}

	changes, err := json.Marshal(entry.Changes)
	if err != nil {
		return fmt.Errorf("failed to marshal audit changes: %w", err)
	}

	query := `
		INSERT INTO audit_logs (user_id, entity_type, entity_id, action, changes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err = conn(ctx, r.db).QueryRowContext(ctx, query,
		nullableID(entry.UserID),
		entry.EntityType,
		entry.EntityID,
		string(entry.Action),
		string(changes),
		entry.CreatedAt,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}
	return nil
}

// List returns entries newest first, with the acting user joined when one exists.
func (r *AuditRepository) List(ctx context.Context, filter outbound.AuditFilter, offset, limit int) ([]*entity.AuditEntryView, int, error) {
	where, args := r.buildWhereClause(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM audit_logs a WHERE 1=1" + where
	if err := conn(ctx, r.db).QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	query := `
		SELECT a.id, a.user_id, a.entity_type, a.entity_id, a.action, a.changes, a.created_at,
		       u.id, u.name, u.email
		FROM audit_logs a
		LEFT JOIN users u ON u.id = a.user_id
		WHERE 1=1` + where + fmt.Sprintf(`
		ORDER BY a.created_at DESC, a.id DESC
		LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query audit entries: %w", err)
	}
	defer rows.Close()

	entries := []*entity.AuditEntryView{}
	for rows.Next() {
		entry, err := scanAuditEntryView(rows)
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating audit entries: %w", err)
	}
	return entries, total, nil
}

// CountDaily counts matching entries per calendar day of loc in one grouped
// query. Days without entries are absent from the result.
func (r *AuditRepository) CountDaily(ctx context.Context, entityType string, actions []entity.AuditAction, from, to time.Time, loc *time.Location) ([]entity.DailyCount, error) {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}

	query := `
		SELECT to_char(created_at AT TIME ZONE $1, 'YYYY-MM-DD') AS day, COUNT(*)
		FROM audit_logs
		WHERE entity_type = $2
		  AND action = ANY($3)
		  AND created_at >= $4
		  AND created_at < $5
		GROUP BY day
		ORDER BY day
	`

	rows, err := conn(ctx, r.db).QueryContext(ctx, query, timeZoneName(loc), entityType, pq.Array(names), from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to count daily audit entries: %w", err)
	}
	defer rows.Close()

	counts := []entity.DailyCount{}
	for rows.Next() {
		var c entity.DailyCount
		if err := rows.Scan(&c.Date, &c.Updates); err != nil {
			return nil, fmt.Errorf("failed to scan daily count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily counts: %w", err)
	}
	return counts, nil
}

func (r *AuditRepository) buildWhereClause(filter outbound.AuditFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}
	idx := 1
	if filter.EntityType != "" {
		conditions = append(conditions, fmt.Sprintf("a.entity_type = $%d", idx))
		args = append(args, filter.EntityType)
		idx++
	}
	if filter.Action != "" {
		conditions = append(conditions, fmt.Sprintf("a.action = $%d", idx))
		args = append(args, filter.Action)
	}
	where := ""
	if len(conditions) > 0 {
		where = " AND " + strings.Join(conditions, " AND ")
	}
	return where, args
}

func scanAuditEntryView(row scanner) (*entity.AuditEntryView, error) {
	var (
		view      entity.AuditEntryView
		userID    sql.NullInt64
		action    string
		changes   []byte
		actorID   sql.NullInt64
		actorName sql.NullString
		actorMail sql.NullString
	)
	err := row.Scan(
		&view.ID,
		&userID,
		&view.EntityType,
		&view.EntityID,
		&action,
		&changes,
		&view.CreatedAt,
		&actorID,
		&actorName,
		&actorMail,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan audit entry: %w", err)
	}

	view.Action = entity.AuditAction(action)
	if userID.Valid {
		id := userID.Int64
		view.UserID = &id
	}
	if len(changes) > 0 {
		if err := json.Unmarshal(changes, &view.Changes); err != nil {
			return nil, fmt.Errorf("failed to unmarshal audit changes: %w", err)
		}
	}
	if actorID.Valid {
		view.User = &entity.AuditActor{
			ID:    actorID.Int64,
			Name:  actorName.String,
			Email: actorMail.String,
		}
	}
	return &view, nil
}

// timeZoneName returns the IANA name of loc; nil means UTC. Callers pass
// named zones only, as loaded by config.Load.
func timeZoneName(loc *time.Location) string {
	if loc == nil {
		return "UTC"
	}
	return loc.String()
}
