package friend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"linkup/internal/dbmysql"
)

// EdgeRepository owns the relationship_edges table. Every mutation touches
// both rows of a mirrored pair inside one transaction, so a crash between the
// two writes cannot leave an orphaned edge behind.
type EdgeRepository interface {
	EdgeBetween(ctx context.Context, ownerID, peerID string) (*dbmysql.RelationshipEdge, error)
	EdgesByOwner(ctx context.Context, ownerID string) ([]*dbmysql.RelationshipEdge, error)
	CreatePair(ctx context.Context, requesterID, targetID string) error
	AcceptPair(ctx context.Context, accepterID, requesterID string) error
	DeletePair(ctx context.Context, userID, peerID string) error

	// Reconciliation queries, used by the repair sweep only.
	OrphanEdges(ctx context.Context) ([]*dbmysql.RelationshipEdge, error)
	MismatchedPairs(ctx context.Context) ([]*dbmysql.RelationshipEdge, error)
	DeleteEdge(ctx context.Context, id string) error
	ForceStatusPair(ctx context.Context, ownerID, peerID, ownerStatus string) error
}

type edgeRepository struct {
	db *gorm.DB
}

func NewEdgeRepository(db *gorm.DB) EdgeRepository {
	return &edgeRepository{db: db}
}

// EdgeBetween returns the edge owned by ownerID toward peerID, or nil when no
// relationship exists in that collection.
func (r *edgeRepository) EdgeBetween(ctx context.Context, ownerID, peerID string) (*dbmysql.RelationshipEdge, error) {
	var edge dbmysql.RelationshipEdge
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND peer_id = ?", ownerID, peerID).
		First(&edge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

func (r *edgeRepository) EdgesByOwner(ctx context.Context, ownerID string) ([]*dbmysql.RelationshipEdge, error) {
	var edges []*dbmysql.RelationshipEdge
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&edges).Error
	return edges, err
}

// CreatePair inserts the pending_sent/pending_received rows for a new
// request. The unique (owner_id, peer_id) index makes the second of two
// racing mutual requests fail here instead of corrupting the pair.
func (r *edgeRepository) CreatePair(ctx context.Context, requesterID, targetID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sent := &dbmysql.RelationshipEdge{
			ID:      uuid.NewString(),
			OwnerID: requesterID,
			PeerID:  targetID,
			Status:  dbmysql.EdgeStatusPendingSent,
		}
		if err := tx.Create(sent).Error; err != nil {
			return fmt.Errorf("failed to create requester edge: %w", err)
		}

		received := &dbmysql.RelationshipEdge{
			ID:      uuid.NewString(),
			OwnerID: targetID,
			PeerID:  requesterID,
			Status:  dbmysql.EdgeStatusPendingReceived,
		}
		if err := tx.Create(received).Error; err != nil {
			return fmt.Errorf("failed to create target edge: %w", err)
		}
		return nil
	})
}

// AcceptPair flips both rows of a pending pair to accepted. Both updates must
// land; a missing mirror aborts the transaction.
func (r *edgeRepository) AcceptPair(ctx context.Context, accepterID, requesterID string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&dbmysql.RelationshipEdge{}).
			Where("owner_id = ? AND peer_id = ? AND status = ?",
				accepterID, requesterID, dbmysql.EdgeStatusPendingReceived).
			Updates(map[string]interface{}{"status": dbmysql.EdgeStatusAccepted, "updated_at": now})
		if res.Error != nil {
			return fmt.Errorf("failed to update accepter edge: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrRequestNotFound
		}

		res = tx.Model(&dbmysql.RelationshipEdge{}).
			Where("owner_id = ? AND peer_id = ? AND status = ?",
				requesterID, accepterID, dbmysql.EdgeStatusPendingSent).
			Updates(map[string]interface{}{"status": dbmysql.EdgeStatusAccepted, "updated_at": now})
		if res.Error != nil {
			return fmt.Errorf("failed to update requester edge: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			// Mirror missing or out of step; roll everything back.
			return ErrInvalidStatus
		}
		return nil
	})
}

// DeletePair removes both rows regardless of status. Deleting a pair that
// does not exist is a success, which makes decline and remove idempotent.
func (r *edgeRepository) DeletePair(ctx context.Context, userID, peerID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("owner_id = ? AND peer_id = ?", userID, peerID).
			Delete(&dbmysql.RelationshipEdge{}).Error; err != nil {
			return fmt.Errorf("failed to delete edge: %w", err)
		}
		if err := tx.Where("owner_id = ? AND peer_id = ?", peerID, userID).
			Delete(&dbmysql.RelationshipEdge{}).Error; err != nil {
			return fmt.Errorf("failed to delete mirror edge: %w", err)
		}
		return nil
	})
}

// OrphanEdges finds rows whose mirror is missing.
func (r *edgeRepository) OrphanEdges(ctx context.Context) ([]*dbmysql.RelationshipEdge, error) {
	var edges []*dbmysql.RelationshipEdge
	err := r.db.WithContext(ctx).
		Where("NOT EXISTS (SELECT 1 FROM relationship_edges m WHERE m.owner_id = relationship_edges.peer_id AND m.peer_id = relationship_edges.owner_id)").
		Find(&edges).Error
	return edges, err
}

// MismatchedPairs finds rows whose mirror exists but carries a
// non-complementary status. Each bad pair shows up twice (once per side);
// the reconciler dedupes by ordered id.
func (r *edgeRepository) MismatchedPairs(ctx context.Context) ([]*dbmysql.RelationshipEdge, error) {
	var edges []*dbmysql.RelationshipEdge
	err := r.db.WithContext(ctx).
		Where(`EXISTS (
			SELECT 1 FROM relationship_edges m
			WHERE m.owner_id = relationship_edges.peer_id
			  AND m.peer_id = relationship_edges.owner_id
			  AND m.status <> CASE relationship_edges.status
				WHEN 'pending_sent' THEN 'pending_received'
				WHEN 'pending_received' THEN 'pending_sent'
				ELSE relationship_edges.status END
		)`).
		Find(&edges).Error
	return edges, err
}

func (r *edgeRepository) DeleteEdge(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&dbmysql.RelationshipEdge{}, "id = ?", id).Error
}

// ForceStatusPair rewrites both rows of a pair to a consistent state.
func (r *edgeRepository) ForceStatusPair(ctx context.Context, ownerID, peerID, ownerStatus string) error {
	now := time.Now()
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&dbmysql.RelationshipEdge{}).
			Where("owner_id = ? AND peer_id = ?", ownerID, peerID).
			Updates(map[string]interface{}{"status": ownerStatus, "updated_at": now}).Error; err != nil {
			return err
		}
		return tx.Model(&dbmysql.RelationshipEdge{}).
			Where("owner_id = ? AND peer_id = ?", peerID, ownerID).
			Updates(map[string]interface{}{"status": dbmysql.MirrorStatus(ownerStatus), "updated_at": now}).Error
	})
}
