package usecase

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"giftlist/internal/domain/entity"
	"giftlist/internal/domain/repository"
	"giftlist/internal/infrastructure/metrics"
	"giftlist/pkg/errors"
	"giftlist/pkg/logger"
)

type FriendUseCase struct {
	userRepo repository.UserRepository
	metrics  *metrics.Metrics
	scheme   string
}

func NewFriendUseCase(userRepo repository.UserRepository, m *metrics.Metrics, deepLinkScheme string) *FriendUseCase {
	return &FriendUseCase{
		userRepo: userRepo,
		metrics:  m,
		scheme:   deepLinkScheme,
	}
}

// List resolves the caller's friend ids into their public profiles. A
// caller without a user record has no friends yet.
func (uc *FriendUseCase) List(ctx context.Context, userID string) ([]entity.Friend, error) {
	if userID == "" {
		return nil, errors.Unauthorized("Authentication required", nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return []entity.Friend{}, nil
		}
		return nil, err
	}

	users, err := uc.userRepo.GetByIDs(ctx, user.Friends)
	if err != nil {
		return nil, err
	}

	friends := make([]entity.Friend, 0, len(users))
	for _, u := range users {
		friends = append(friends, u.AsFriend())
	}
	return friends, nil
}

// AddByEmail connects the caller with the user registered under email.
// Repeating it for an existing friend is a no-op.
func (uc *FriendUseCase) AddByEmail(ctx context.Context, userID, email string) (entity.Friend, error) {
	if userID == "" {
		return entity.Friend{}, errors.Unauthorized("Authentication required", nil)
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return entity.Friend{}, errors.BadRequest("Email is required", nil)
	}

	friend, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return entity.Friend{}, errors.NotFound("User with this email", nil)
		}
		return entity.Friend{}, err
	}
	if friend.ID == userID {
		return entity.Friend{}, errors.BadRequest("You cannot add yourself as a friend", nil)
	}

	if err := uc.connect(ctx, userID, friend.ID, "email"); err != nil {
		return entity.Friend{}, err
	}
	return friend.AsFriend(), nil
}

// AddByQR connects the caller with the user whose friend code was scanned.
// Unlike AddByEmail it refuses an existing friendship.
func (uc *FriendUseCase) AddByQR(ctx context.Context, userID, code string) (entity.Friend, error) {
	if userID == "" {
		return entity.Friend{}, errors.Unauthorized("Authentication required", nil)
	}
	friendID := ParseFriendCode(uc.scheme, code)
	if friendID == "" {
		return entity.Friend{}, errors.BadRequest("Friend ID is required", nil)
	}
	if friendID == userID {
		return entity.Friend{}, errors.BadRequest("You cannot add yourself as a friend", nil)
	}

	friend, err := uc.userRepo.GetByID(ctx, friendID)
	if err != nil {
		return entity.Friend{}, err
	}

	caller, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return entity.Friend{}, err
	}
	if caller.HasFriend(friendID) {
		return entity.Friend{}, errors.AlreadyFriends()
	}

	if err := uc.connect(ctx, userID, friendID, "qr"); err != nil {
		return entity.Friend{}, err
	}
	return friend.AsFriend(), nil
}

// Repair makes every edge touching the caller symmetric: friends the caller
// lists who do not list back, and users listing the caller who are not
// listed. It returns the ids whose edge was rewritten.
func (uc *FriendUseCase) Repair(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, errors.Unauthorized("Authentication required", nil)
	}

	var (
		caller   *entity.User
		listedBy []*entity.User
		friends  []*entity.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		caller, err = uc.userRepo.GetByID(gctx, userID)
		if err != nil {
			return err
		}
		friends, err = uc.userRepo.GetByIDs(gctx, caller.Friends)
		return err
	})
	g.Go(func() error {
		var err error
		listedBy, err = uc.userRepo.ListByFriend(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var broken []string
	for _, u := range friends {
		if !u.HasFriend(userID) && !seen[u.ID] {
			seen[u.ID] = true
			broken = append(broken, u.ID)
		}
	}
	for _, u := range listedBy {
		if !caller.HasFriend(u.ID) && !seen[u.ID] {
			seen[u.ID] = true
			broken = append(broken, u.ID)
		}
	}

	repaired := make([]string, 0, len(broken))
	for _, friendID := range broken {
		if err := uc.connect(ctx, userID, friendID, "repair"); err != nil {
			return repaired, err
		}
		repaired = append(repaired, friendID)
	}

	if len(repaired) > 0 {
		logger.Info("Repaired %d friend edges for user %s", len(repaired), userID)
	}
	return repaired, nil
}

func (uc *FriendUseCase) connect(ctx context.Context, userID, friendID, source string) error {
	if err := uc.userRepo.AddFriendEdge(ctx, userID, friendID); err != nil {
		return err
	}
	uc.metrics.FriendEdgeWritten(source)
	return nil
}
