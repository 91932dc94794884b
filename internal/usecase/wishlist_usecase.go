package usecase

import (
	"context"
	stderrors "errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"giftlist/internal/domain/entity"
	"giftlist/internal/domain/repository"
	"giftlist/internal/infrastructure/metrics"
	"giftlist/pkg/errors"
	"giftlist/pkg/logger"
)

type WishlistConfig struct {
	DeepLinkScheme string
	// SingleWishlistPerUser links each owner to at most one wishlist.
	SingleWishlistPerUser bool
}

type WishlistUseCase struct {
	wishlistRepo repository.WishlistRepository
	userRepo     repository.UserRepository
	renderer     CodeRenderer
	publisher    CodePublisher
	metrics      *metrics.Metrics
	cfg          WishlistConfig

	now   func() time.Time
	newID func() string
}

// NewWishlistUseCase wires the aggregate manager. publisher may be nil, in
// which case codes are only embedded as data URLs.
func NewWishlistUseCase(
	wishlistRepo repository.WishlistRepository,
	userRepo repository.UserRepository,
	renderer CodeRenderer,
	publisher CodePublisher,
	m *metrics.Metrics,
	cfg WishlistConfig,
) *WishlistUseCase {
	return &WishlistUseCase{
		wishlistRepo: wishlistRepo,
		userRepo:     userRepo,
		renderer:     renderer,
		publisher:    publisher,
		metrics:      m,
		cfg:          cfg,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

type CreateWishlistInput struct {
	Name        string
	Description string
}

type ItemInput struct {
	Name        string
	Price       LooseAmount
	Description string
	ImageURL    string
}

// WishlistPatch overwrites the fields that are set, empty strings included.
type WishlistPatch struct {
	Name        *string
	Description *string
}

func (uc *WishlistUseCase) Create(ctx context.Context, ownerID string, input CreateWishlistInput) (*entity.Wishlist, error) {
	if ownerID == "" {
		return nil, errors.Unauthorized("Authentication required", nil)
	}

	id := uc.newID()
	link := WishlistLink(uc.cfg.DeepLinkScheme, id)
	dataURL, png, err := uc.renderer.DataURL(link)
	if err != nil {
		return nil, errors.Internal("Failed to generate QR code", err)
	}

	wishlist := &entity.Wishlist{
		ID:          id,
		UserID:      ownerID,
		Name:        orDefault(input.Name, DefaultWishlistName),
		Description: input.Description,
		Items:       []entity.Item{},
		QRCode:      dataURL,
		DeepLink:    link,
		IsActive:    true,
		CreatedAt:   uc.now(),
	}

	if uc.publisher != nil {
		url, err := uc.publisher.PublishQRCode(ctx, id, png)
		if err != nil {
			logger.Warn("Publishing QR code for wishlist %s failed: %v", id, err)
		} else {
			wishlist.QRCodeURL = url
		}
	}

	if err := uc.wishlistRepo.Create(ctx, wishlist, uc.cfg.SingleWishlistPerUser); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"wishlist_id": id,
		"user_id":     ownerID,
	}).Info("Wishlist created")
	return wishlist, nil
}

func (uc *WishlistUseCase) AddItem(ctx context.Context, wishlistID, requesterID string, input ItemInput) (entity.Item, *entity.Wishlist, error) {
	item := entity.Item{
		ID:          uc.newID(),
		Name:        orDefault(input.Name, DefaultItemName),
		Price:       input.Price.OrZero(),
		Description: input.Description,
		ImageURL:    optionalString(input.ImageURL),
		CreatedAt:   uc.now(),
	}

	wishlist, err := uc.mutateOwned(ctx, wishlistID, requesterID, func(w *entity.Wishlist) (entity.WishlistMutation, error) {
		return w.PlanAddItem(item)
	})
	if err != nil {
		return entity.Item{}, nil, err
	}

	uc.metrics.ItemMutated("add")
	return item, wishlist, nil
}

func (uc *WishlistUseCase) UpdateItem(ctx context.Context, wishlistID, itemID, requesterID string, input ItemInput) (entity.Item, *entity.Wishlist, error) {
	var updated entity.Item
	wishlist, err := uc.mutateOwned(ctx, wishlistID, requesterID, func(w *entity.Wishlist) (entity.WishlistMutation, error) {
		m, item, err := w.PlanUpdateItem(itemID, func(old entity.Item) entity.Item {
			old.Name = orDefault(input.Name, old.Name)
			old.Price = input.Price.OrZero()
			old.Description = input.Description
			old.ImageURL = optionalString(input.ImageURL)
			return old
		})
		updated = item
		return m, err
	})
	if err != nil {
		return entity.Item{}, nil, err
	}

	uc.metrics.ItemMutated("update")
	return updated, wishlist, nil
}

func (uc *WishlistUseCase) DeleteItem(ctx context.Context, wishlistID, itemID, requesterID string) (*entity.Wishlist, error) {
	wishlist, err := uc.mutateOwned(ctx, wishlistID, requesterID, func(w *entity.Wishlist) (entity.WishlistMutation, error) {
		m, _, err := w.PlanRemoveItem(itemID)
		return m, err
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.ItemMutated("delete")
	return wishlist, nil
}

// LinkedID resolves the wishlist referenced by the caller's user record.
func (uc *WishlistUseCase) LinkedID(ctx context.Context, requesterID string) (string, error) {
	if requesterID == "" {
		return "", errors.Unauthorized("Authentication required", nil)
	}
	user, err := uc.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, "NOT_FOUND") {
			return "", errors.NotFound("Wishlist", nil)
		}
		return "", err
	}
	if user.WishlistID == "" {
		return "", errors.NotFound("Wishlist", nil)
	}
	return user.WishlistID, nil
}

func (uc *WishlistUseCase) GetLinked(ctx context.Context, requesterID string) (*entity.Wishlist, error) {
	id, err := uc.LinkedID(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	return uc.GetMine(ctx, id, requesterID)
}

func (uc *WishlistUseCase) GetPublic(ctx context.Context, id string) (*entity.PublicWishlist, error) {
	wishlist, err := uc.wishlistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	ownerName := DefaultDisplayName
	owner, err := uc.userRepo.GetByID(ctx, wishlist.UserID)
	switch {
	case err == nil && owner.DisplayName != "":
		ownerName = owner.DisplayName
	case err != nil && !errors.Is(err, "NOT_FOUND"):
		logger.Warn("Resolving owner of wishlist %s failed: %v", id, err)
	}

	return &entity.PublicWishlist{Wishlist: wishlist, OwnerName: ownerName}, nil
}

func (uc *WishlistUseCase) GetMine(ctx context.Context, id, requesterID string) (*entity.Wishlist, error) {
	if requesterID == "" {
		return nil, errors.Unauthorized("Authentication required", nil)
	}
	wishlist, err := uc.wishlistRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !wishlist.IsOwnedBy(requesterID) {
		return nil, errors.Forbidden("Access denied", nil)
	}
	return wishlist, nil
}

// ListMine returns the caller's active wishlists, newest first.
func (uc *WishlistUseCase) ListMine(ctx context.Context, ownerID string) ([]*entity.Wishlist, error) {
	if ownerID == "" {
		return nil, errors.Unauthorized("Authentication required", nil)
	}
	all, err := uc.wishlistRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	active := make([]*entity.Wishlist, 0, len(all))
	for _, w := range all {
		if w.IsActive {
			active = append(active, w)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})
	return active, nil
}

func (uc *WishlistUseCase) Update(ctx context.Context, id, requesterID string, patch WishlistPatch) (*entity.Wishlist, error) {
	return uc.mutateOwned(ctx, id, requesterID, func(w *entity.Wishlist) (entity.WishlistMutation, error) {
		return w.PlanPatch(patch.Name, patch.Description)
	})
}

// SoftDelete deactivates the wishlist. Items and contributions are kept.
func (uc *WishlistUseCase) SoftDelete(ctx context.Context, id, requesterID string) (*entity.Wishlist, error) {
	wishlist, err := uc.mutateOwned(ctx, id, requesterID, func(w *entity.Wishlist) (entity.WishlistMutation, error) {
		return w.PlanSoftDelete(uc.cfg.SingleWishlistPerUser)
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Wishlist %s soft-deleted by %s", id, requesterID)
	return wishlist, nil
}

// Reconcile recomputes both counters from the items and the contribution
// ledger and writes them back when they drifted.
func (uc *WishlistUseCase) Reconcile(ctx context.Context, id, requesterID string) (entity.Drift, *entity.Wishlist, error) {
	if requesterID == "" {
		return entity.Drift{}, nil, errors.Unauthorized("Authentication required", nil)
	}

	var drift entity.Drift
	wishlist, err := uc.wishlistRepo.MutateWithLedger(ctx, id, func(w *entity.Wishlist, contributions []*entity.Contribution) (entity.WishlistMutation, error) {
		if !w.IsOwnedBy(requesterID) {
			return entity.WishlistMutation{}, errors.Forbidden("Access denied", nil)
		}
		var m entity.WishlistMutation
		m, drift = w.PlanReconcile(contributions)
		return m, nil
	})
	if err != nil {
		return entity.Drift{}, nil, err
	}

	if drift.Repaired {
		uc.metrics.DriftRepaired()
		logger.WithFields(logrus.Fields{
			"wishlist_id":      id,
			"total_before":     drift.TotalBefore.String(),
			"total_after":      drift.TotalAfter.String(),
			"collected_before": drift.CollectedBefore.String(),
			"collected_after":  drift.CollectedAfter.String(),
		}).Warn("Wishlist counters repaired")
	}
	return drift, wishlist, nil
}

// mutateOwned runs plan inside the store's atomic write after the owner
// check, so ownership and state are judged on the same snapshot.
func (uc *WishlistUseCase) mutateOwned(ctx context.Context, id, requesterID string, plan repository.MutationFunc) (*entity.Wishlist, error) {
	if requesterID == "" {
		return nil, errors.Unauthorized("Authentication required", nil)
	}
	return uc.wishlistRepo.Mutate(ctx, id, func(w *entity.Wishlist) (entity.WishlistMutation, error) {
		if !w.IsOwnedBy(requesterID) {
			return entity.WishlistMutation{}, errors.Forbidden("Access denied", nil)
		}
		m, err := plan(w)
		if err != nil {
			return entity.WishlistMutation{}, domainError(err)
		}
		return m, nil
	})
}

// domainError maps entity rule violations onto the service's error codes.
func domainError(err error) error {
	switch {
	case stderrors.Is(err, entity.ErrWishlistDeleted):
		return errors.Conflict("Wishlist has been deleted")
	case stderrors.Is(err, entity.ErrItemNotFound):
		return errors.NotFound("Item", err)
	case stderrors.Is(err, entity.ErrNonPositiveAmount):
		return errors.InvalidAmount("Invalid amount")
	}
	return err
}
