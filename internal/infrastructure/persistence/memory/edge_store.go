package memory

import (
	"context"
	"sort"
	"sync"
)

// likeKey identifies a like edge by its composite key.
type likeKey struct {
	filmID int64
	userID int64
}

// LikeStore implements relation.LikeRepository in memory. The edge set is
// always initialized and possibly empty; there is no null-vs-empty
// distinction anywhere.
type LikeStore struct {
	mu      sync.RWMutex
	edges   map[likeKey]struct{}
	perFilm map[int64]int
}

// NewLikeStore creates an empty LikeStore.
func NewLikeStore() *LikeStore {
	return &LikeStore{
		edges:   make(map[likeKey]struct{}),
		perFilm: make(map[int64]int),
	}
}

// Add inserts the (filmID, userID) edge. Re-adding an existing edge is a
// no-op.
func (s *LikeStore) Add(ctx context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{filmID: filmID, userID: userID}
	if _, ok := s.edges[key]; ok {
		return nil
	}
	s.edges[key] = struct{}{}
	s.perFilm[filmID]++
	return nil
}

// Remove deletes the edge if present. An absent edge is a no-op.
func (s *LikeStore) Remove(ctx context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := likeKey{filmID: filmID, userID: userID}
	if _, ok := s.edges[key]; !ok {
		return nil
	}
	delete(s.edges, key)
	s.perFilm[filmID]--
	if s.perFilm[filmID] == 0 {
		delete(s.perFilm, filmID)
	}
	return nil
}

// Has reports whether the edge is in the set.
func (s *LikeStore) Has(ctx context.Context, filmID, userID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.edges[likeKey{filmID: filmID, userID: userID}]
	return ok, nil
}

// CountByFilm returns the cardinality of the edge set restricted to the film.
// A film with no likes counts zero.
func (s *LikeStore) CountByFilm(ctx context.Context, filmID int64) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.perFilm[filmID], nil
}

// friendKey identifies a directed friendship edge.
type friendKey struct {
	userID   int64
	friendID int64
}

// FriendshipStore implements relation.FriendshipRepository in memory.
// Edges are directed; the reverse direction is an independent edge. The map
// value holds the approved flag, false for every edge created here (no core
// operation toggles approval).
type FriendshipStore struct {
	mu    sync.RWMutex
	edges map[friendKey]bool
}

// NewFriendshipStore creates an empty FriendshipStore.
func NewFriendshipStore() *FriendshipStore {
	return &FriendshipStore{edges: make(map[friendKey]bool)}
}

// Add inserts the directed edge userID -> friendID with approved=false if
// not already present.
func (s *FriendshipStore) Add(ctx context.Context, userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := friendKey{userID: userID, friendID: friendID}
	if _, ok := s.edges[key]; ok {
		return nil
	}
	s.edges[key] = false
	return nil
}

// Remove deletes only the userID -> friendID edge. The reverse edge is
// untouched; an absent edge is a no-op.
func (s *FriendshipStore) Remove(ctx context.Context, userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.edges, friendKey{userID: userID, friendID: friendID})
	return nil
}

// Has reports whether the directed edge is in the set.
func (s *FriendshipStore) Has(ctx context.Context, userID, friendID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.edges[friendKey{userID: userID, friendID: friendID}]
	return ok, nil
}

// FriendsOf returns all friendID with an edge userID -> friendID, sorted
// ascending. Map iteration order never leaks to callers.
func (s *FriendshipStore) FriendsOf(ctx context.Context, userID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0)
	for key := range s.edges {
		if key.userID == userID {
			ids = append(ids, key.friendID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
