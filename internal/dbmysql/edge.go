package dbmysql

import (
	"time"
)

// Edge statuses, from the owner's perspective. A relationship between A and B
// is stored as two rows: one owned by A, one owned by B, and their statuses
// must stay complementary (pending_sent mirrors pending_received, accepted
// mirrors accepted).
const (
	EdgeStatusPendingSent     = "pending_sent"
	EdgeStatusPendingReceived = "pending_received"
	EdgeStatusAccepted        = "accepted"
)

type RelationshipEdge struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID   string    `gorm:"column:owner_id;size:36;not null;index:idx_owner_peer,unique" json:"owner_id"`
	PeerID    string    `gorm:"column:peer_id;size:36;not null;index;index:idx_owner_peer,unique" json:"peer_id"`
	Status    string    `gorm:"column:status;type:enum('pending_sent','pending_received','accepted');not null" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (RelationshipEdge) TableName() string { return "relationship_edges" }

// MirrorStatus returns the status the peer-owned row must carry for this one.
func MirrorStatus(status string) string {
	switch status {
	case EdgeStatusPendingSent:
		return EdgeStatusPendingReceived
	case EdgeStatusPendingReceived:
		return EdgeStatusPendingSent
	default:
		return status
	}
}
