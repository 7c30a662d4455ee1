package audit

import (
	"context"
	"encoding/json"
	"time"

	"protrack-backend/internal/domain/user"
)

// Entry is one immutable row of the audit trail: who did what to which
// entity, with the actor's role at the time of the action.
type Entry struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	ActorID   string    `gorm:"column:actor_id;type:char(32);not null;index" json:"actor_id"`
	ActorRole user.Role `gorm:"column:actor_role;type:varchar(20);not null" json:"actor_role"`
	Action    string    `gorm:"column:action;size:50;not null" json:"action"`
	Entity    string    `gorm:"column:entity;size:50;not null" json:"entity"`
	EntityID  string    `gorm:"column:entity_id;type:char(32);not null" json:"entity_id"`
	// Meta is free-form JSON; opaque to the recorder.
	Meta      string    `gorm:"column:meta;type:text" json:"meta"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Entry) TableName() string { return "audit_logs" }

// Recorder appends entries best-effort. Implementations must swallow their
// own failures: a lost audit row never fails the operation that caused it.
type Recorder interface {
	Record(ctx context.Context, e Entry)
}

// Reader is the admin-facing side of the trail.
type Reader interface {
	List(ctx context.Context, limit, offset int) ([]Entry, error)
}

// Meta serializes key/value metadata for an entry. Marshal failure degrades
// to an empty string rather than failing the caller.
func Meta(kv map[string]any) string {
	if len(kv) == 0 {
		return ""
	}
	b, err := json.Marshal(kv)
	if err != nil {
		return ""
	}
	return string(b)
}
