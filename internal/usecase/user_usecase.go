package usecase

import (
	"context"
	"strings"
	"time"

	"giftlist/internal/domain/entity"
	"giftlist/internal/domain/repository"
	"giftlist/pkg/errors"
	"giftlist/pkg/logger"
)

type UserUseCase struct {
	userRepo repository.UserRepository
	renderer CodeRenderer
	scheme   string

	now func() time.Time
}

func NewUserUseCase(userRepo repository.UserRepository, renderer CodeRenderer, deepLinkScheme string) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		renderer: renderer,
		scheme:   deepLinkScheme,
		now:      time.Now,
	}
}

// Caller is the verified identity behind a request.
type Caller struct {
	UID   string
	Email string
	Name  string
}

type SetupInput struct {
	DisplayName string
	Email       string
}

type ProfileCode struct {
	QRCode   string `json:"qrCode"`
	DeepLink string `json:"deepLink"`
}

// Setup returns the caller's user record, creating it on first sign-in.
// The boolean reports whether the record was created by this call.
func (uc *UserUseCase) Setup(ctx context.Context, caller Caller, input SetupInput) (*entity.User, bool, error) {
	if caller.UID == "" {
		return nil, false, errors.Unauthorized("Authentication required", nil)
	}

	existing, err := uc.userRepo.GetByID(ctx, caller.UID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, "NOT_FOUND") {
		return nil, false, err
	}

	email := orDefault(input.Email, caller.Email)
	user := &entity.User{
		ID:          caller.UID,
		DisplayName: displayNameFor(input.DisplayName, caller.Name, email),
		Email:       optionalString(email),
		CreatedAt:   uc.now(),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, "CONFLICT") {
			// A concurrent setup won the race.
			existing, err := uc.userRepo.GetByID(ctx, caller.UID)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	logger.Info("User %s set up", user.ID)
	return user, true, nil
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, errors.Unauthorized("Authentication required", nil)
	}
	return uc.userRepo.GetByID(ctx, userID)
}

// ProfileCode renders the code other users scan to add the caller as a
// friend.
func (uc *UserUseCase) ProfileCode(ctx context.Context, userID string) (*ProfileCode, error) {
	user, err := uc.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	link := FriendLink(uc.scheme, user.ID)
	dataURL, _, err := uc.renderer.DataURL(link)
	if err != nil {
		return nil, errors.Internal("Failed to generate QR code", err)
	}
	return &ProfileCode{QRCode: dataURL, DeepLink: link}, nil
}

func displayNameFor(requested, tokenName, email string) string {
	if requested != "" {
		return requested
	}
	if tokenName != "" {
		return tokenName
	}
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		return local
	}
	return DefaultDisplayName
}
