package friend

import (
	"context"

	"go.uber.org/zap"

	"linkup/internal/dbmysql"
	"linkup/internal/logger"
)

// Reconciler is the consistency-repair sweep for the relationship store. New
// writes are transactional, so this exists for rows written before that was
// true and for foreign writers touching the table directly.
type Reconciler struct {
	edges EdgeRepository
}

func NewReconciler(edges EdgeRepository) *Reconciler {
	return &Reconciler{edges: edges}
}

type ReconcileReport struct {
	OrphansDeleted int
	PairsRealigned int
	PairsDeleted   int
}

// Run scans for pairing violations (a row without its mirror) and status
// violations (a mirror with a non-complementary status) and heals them.
//
// Heal rules: an orphaned row is deleted, since half a relationship carries
// no recoverable intent. A mismatched pair where one side already reached
// accepted is promoted to accepted on both sides (the acceptance happened; the
// mirror write was lost). Any other mismatch is ambiguous and the pair is
// deleted, returning both users to NONE so either can re-request.
func (r *Reconciler) Run(ctx context.Context) (*ReconcileReport, error) {
	report := &ReconcileReport{}

	orphans, err := r.edges.OrphanEdges(ctx)
	if err != nil {
		return nil, err
	}
	for _, edge := range orphans {
		if err := r.edges.DeleteEdge(ctx, edge.ID); err != nil {
			logger.Warn("failed to delete orphan edge",
				zap.String("edge_id", edge.ID), zap.Error(err))
			continue
		}
		logger.Info("deleted orphan edge",
			zap.String("owner_id", edge.OwnerID),
			zap.String("peer_id", edge.PeerID),
			zap.String("status", edge.Status))
		report.OrphansDeleted++
	}

	mismatched, err := r.edges.MismatchedPairs(ctx)
	if err != nil {
		return nil, err
	}

	// Each bad pair appears once per side; process each unordered pair once.
	seen := make(map[string]bool)
	byKey := make(map[string][]*dbmysql.RelationshipEdge)
	for _, edge := range mismatched {
		key := pairKey(edge.OwnerID, edge.PeerID)
		byKey[key] = append(byKey[key], edge)
	}

	for key, pair := range byKey {
		if seen[key] {
			continue
		}
		seen[key] = true

		if hasAccepted(pair) {
			edge := pair[0]
			if err := r.edges.ForceStatusPair(ctx, edge.OwnerID, edge.PeerID, dbmysql.EdgeStatusAccepted); err != nil {
				logger.Warn("failed to realign pair", zap.String("pair", key), zap.Error(err))
				continue
			}
			logger.Info("realigned pair to accepted", zap.String("pair", key))
			report.PairsRealigned++
			continue
		}

		edge := pair[0]
		if err := r.edges.DeletePair(ctx, edge.OwnerID, edge.PeerID); err != nil {
			logger.Warn("failed to delete mismatched pair", zap.String("pair", key), zap.Error(err))
			continue
		}
		logger.Info("deleted ambiguous pair", zap.String("pair", key))
		report.PairsDeleted++
	}

	return report, nil
}

func hasAccepted(pair []*dbmysql.RelationshipEdge) bool {
	for _, edge := range pair {
		if edge.Status == dbmysql.EdgeStatusAccepted {
			return true
		}
	}
	return false
}

func pairKey(a, b string) string {
	if a < b {
		return a + ":" + b
	}
	return b + ":" + a
}
