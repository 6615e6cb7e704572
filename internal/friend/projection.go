package friend

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"linkup/internal/dbmysql"
	"linkup/internal/logger"
)

// PresenceChecker reports whether a user currently has a live session.
type PresenceChecker interface {
	IsOnline(ctx context.Context, userID string) (bool, error)
}

// FriendView is an accepted relationship joined with the peer's directory
// record and presence.
type FriendView struct {
	UserID         string    `json:"user_id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"display_name"`
	Bio            string    `json:"bio"`
	ProfilePicture string    `json:"profile_picture"`
	IsOnline       bool      `json:"is_online"`
	FriendsSince   time.Time `json:"friends_since"`
}

// PendingRequestView is an incoming, unanswered request. Outgoing requests
// are intentionally not part of the projection.
type PendingRequestView struct {
	RequesterID    string    `json:"requester_id"`
	Username       string    `json:"username"`
	DisplayName    string    `json:"display_name"`
	ProfilePicture string    `json:"profile_picture"`
	RequestedAt    time.Time `json:"requested_at"`
}

// Projection is the full friends/pending snapshot for one user. Every refresh
// replaces the previous snapshot wholesale.
type Projection struct {
	Friends []*FriendView         `json:"friends"`
	Pending []*PendingRequestView `json:"pending_requests"`
}

type ProjectionBuilder struct {
	edges     EdgeRepository
	directory Directory
	presence  PresenceChecker
}

func NewProjectionBuilder(edges EdgeRepository, directory Directory, presence PresenceChecker) *ProjectionBuilder {
	return &ProjectionBuilder{edges: edges, directory: directory, presence: presence}
}

type resolvedEdge struct {
	edge *dbmysql.RelationshipEdge
	peer *dbmysql.User
}

// Build loads the user's edges, resolves each peer concurrently, and buckets
// the results. An edge whose peer no longer resolves is dropped silently
// rather than failing the whole snapshot.
func (b *ProjectionBuilder) Build(ctx context.Context, userID string) (*Projection, error) {
	edges, err := b.edges.EdgesByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	resolved := make([]resolvedEdge, len(edges))
	var wg sync.WaitGroup
	for i, edge := range edges {
		wg.Add(1)
		go func(i int, edge *dbmysql.RelationshipEdge) {
			defer wg.Done()
			peer, err := b.directory.ByID(ctx, edge.PeerID)
			if err != nil {
				logger.Warn("peer lookup failed, dropping edge",
					zap.String("owner_id", edge.OwnerID),
					zap.String("peer_id", edge.PeerID),
					zap.Error(err))
				return
			}
			resolved[i] = resolvedEdge{edge: edge, peer: peer}
		}(i, edge)
	}
	wg.Wait()

	projection := &Projection{
		Friends: []*FriendView{},
		Pending: []*PendingRequestView{},
	}

	for _, re := range resolved {
		if re.peer == nil {
			continue
		}
		switch re.edge.Status {
		case dbmysql.EdgeStatusAccepted:
			online := false
			if b.presence != nil {
				// Missing or failed presence reads as offline.
				online, _ = b.presence.IsOnline(ctx, re.peer.UserID)
			}
			projection.Friends = append(projection.Friends, &FriendView{
				UserID:         re.peer.UserID,
				Username:       re.peer.Username,
				DisplayName:    re.peer.DisplayName,
				Bio:            re.peer.Bio,
				ProfilePicture: re.peer.ProfilePicture,
				IsOnline:       online,
				FriendsSince:   re.edge.UpdatedAt,
			})
		case dbmysql.EdgeStatusPendingReceived:
			projection.Pending = append(projection.Pending, &PendingRequestView{
				RequesterID:    re.peer.UserID,
				Username:       re.peer.Username,
				DisplayName:    re.peer.DisplayName,
				ProfilePicture: re.peer.ProfilePicture,
				RequestedAt:    re.edge.CreatedAt,
			})
		}
	}

	return projection, nil
}
