// Package memory is a process-local document store with the same atomicity
// contract as the Firestore adapters: every mutation runs under one lock, so
// a reader never sees an item list and its totals out of step.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"giftlist/internal/domain/entity"
	"giftlist/internal/domain/repository"
	"giftlist/pkg/errors"
)

type Store struct {
	mu            sync.RWMutex
	users         map[string]*entity.User
	wishlists     map[string]*entity.Wishlist
	contributions map[string]*entity.Contribution
	now           func() time.Time
}

func NewStore() *Store {
	return &Store{
		users:         make(map[string]*entity.User),
		wishlists:     make(map[string]*entity.Wishlist),
		contributions: make(map[string]*entity.Contribution),
		now:           time.Now,
	}
}

func (s *Store) Users() repository.UserRepository {
	return &userRepository{s}
}

func (s *Store) Wishlists() repository.WishlistRepository {
	return &wishlistRepository{s}
}

func (s *Store) Contributions() repository.ContributionRepository {
	return &contributionRepository{s}
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	c.Friends = append([]string(nil), u.Friends...)
	if u.Email != nil {
		email := *u.Email
		c.Email = &email
	}
	return &c
}

func cloneContribution(c *entity.Contribution) *entity.Contribution {
	copied := *c
	return &copied
}

type userRepository struct {
	s *Store
}

func (r *userRepository) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.users[user.ID]; exists {
		return errors.Conflict("User already exists")
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return cloneUser(user), nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Email != nil && *user.Email == email {
			return cloneUser(user), nil
		}
	}
	return nil, errors.NotFound("User", nil)
}

func (r *userRepository) GetByIDs(_ context.Context, ids []string) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := r.s.users[id]; ok {
			users = append(users, cloneUser(user))
		}
	}
	return users, nil
}

func (r *userRepository) ListByFriend(_ context.Context, id string) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var users []*entity.User
	for _, user := range r.s.users {
		if user.HasFriend(id) {
			users = append(users, cloneUser(user))
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *userRepository) AddFriendEdge(_ context.Context, userID, friendID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[userID]
	if !ok {
		return errors.NotFound("User", nil)
	}
	friend, ok := r.s.users[friendID]
	if !ok {
		return errors.NotFound("User", nil)
	}

	if !user.HasFriend(friendID) {
		user.Friends = append(user.Friends, friendID)
	}
	if !friend.HasFriend(userID) {
		friend.Friends = append(friend.Friends, userID)
	}
	return nil
}

// PutUser stores u as-is, bypassing the edge bookkeeping. Tests use it to
// seed documents written before friend edges became transactional.
func (s *Store) PutUser(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = cloneUser(u)
}

// PutWishlist stores w as-is, counters included.
func (s *Store) PutWishlist(w *entity.Wishlist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wishlists[w.ID] = w.Clone()
}

type wishlistRepository struct {
	s *Store
}

func (r *wishlistRepository) Create(_ context.Context, wishlist *entity.Wishlist, linkOwner bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.wishlists[wishlist.ID]; exists {
		return errors.Conflict("Wishlist already exists")
	}

	if linkOwner {
		owner, ok := r.s.users[wishlist.UserID]
		if !ok {
			return errors.NotFound("User", nil)
		}
		if owner.WishlistID != "" {
			return errors.Conflict("User already has a wishlist")
		}
		owner.WishlistID = wishlist.ID
	}

	r.s.wishlists[wishlist.ID] = wishlist.Clone()
	return nil
}

func (r *wishlistRepository) GetByID(_ context.Context, id string) (*entity.Wishlist, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wishlist, ok := r.s.wishlists[id]
	if !ok {
		return nil, errors.NotFound("Wishlist", nil)
	}
	return wishlist.Clone().Normalize(), nil
}

func (r *wishlistRepository) ListByOwner(_ context.Context, userID string) ([]*entity.Wishlist, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var wishlists []*entity.Wishlist
	for _, wishlist := range r.s.wishlists {
		if wishlist.UserID == userID {
			wishlists = append(wishlists, wishlist.Clone().Normalize())
		}
	}
	return wishlists, nil
}

func (r *wishlistRepository) Mutate(ctx context.Context, id string, fn repository.MutationFunc) (*entity.Wishlist, error) {
	return r.MutateWithLedger(ctx, id, func(w *entity.Wishlist, _ []*entity.Contribution) (entity.WishlistMutation, error) {
		return fn(w)
	})
}

func (r *wishlistRepository) MutateWithLedger(_ context.Context, id string, fn repository.LedgerMutationFunc) (*entity.Wishlist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.wishlists[id]
	if !ok {
		return nil, errors.NotFound("Wishlist", nil)
	}

	mutation, err := fn(stored.Clone().Normalize(), r.s.ledger(id))
	if err != nil {
		return nil, err
	}

	if !mutation.IsEmpty() {
		r.s.apply(stored, mutation)
	}
	return stored.Clone().Normalize(), nil
}

// apply must be called with the write lock held.
func (s *Store) apply(stored *entity.Wishlist, mutation entity.WishlistMutation) {
	stored.Apply(mutation, s.now())
	if mutation.UnlinkOwner {
		if owner, ok := s.users[stored.UserID]; ok && owner.WishlistID == stored.ID {
			owner.WishlistID = ""
		}
	}
}

// ledger must be called with the lock held.
func (s *Store) ledger(wishlistID string) []*entity.Contribution {
	var contributions []*entity.Contribution
	for _, c := range s.contributions {
		if c.WishlistID == wishlistID {
			contributions = append(contributions, cloneContribution(c))
		}
	}
	sort.Slice(contributions, func(i, j int) bool {
		if contributions[i].CreatedAt.Equal(contributions[j].CreatedAt) {
			return contributions[i].ID > contributions[j].ID
		}
		return contributions[i].CreatedAt.After(contributions[j].CreatedAt)
	})
	return contributions
}

type contributionRepository struct {
	s *Store
}

func (r *contributionRepository) Record(_ context.Context, contribution *entity.Contribution, fn repository.MutationFunc) (*entity.Wishlist, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.wishlists[contribution.WishlistID]
	if !ok {
		return nil, errors.NotFound("Wishlist", nil)
	}
	if _, exists := r.s.contributions[contribution.ID]; exists {
		return nil, errors.Conflict("Contribution already exists")
	}

	mutation, err := fn(stored.Clone().Normalize())
	if err != nil {
		return nil, err
	}

	r.s.contributions[contribution.ID] = cloneContribution(contribution)
	r.s.apply(stored, mutation)
	return stored.Clone().Normalize(), nil
}

func (r *contributionRepository) ListByWishlist(_ context.Context, wishlistID string) ([]*entity.Contribution, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	contributions := r.s.ledger(wishlistID)
	if contributions == nil {
		contributions = []*entity.Contribution{}
	}
	return contributions, nil
}
