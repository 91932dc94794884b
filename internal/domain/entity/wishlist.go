package entity

import (
	"errors"
	"time"
)

type WishlistState string

const (
	WishlistActive  WishlistState = "active"
	WishlistDeleted WishlistState = "deleted"
)

var (
	ErrWishlistDeleted   = errors.New("wishlist has been deleted")
	ErrItemNotFound      = errors.New("item not found")
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
)

type Item struct {
	ID          string  `json:"id" firestore:"id"`
	Name        string  `json:"name" firestore:"name"`
	Price       Money   `json:"price" firestore:"price"`
	Description string  `json:"description" firestore:"description"`
	ImageURL    *string `json:"imageUrl" firestore:"imageUrl"`
	// CollectedAmount is never incremented: contributions target the whole
	// wishlist. It is still honoured when an item is removed.
	CollectedAmount Money     `json:"collectedAmount" firestore:"collectedAmount"`
	IsCompleted     bool      `json:"isCompleted" firestore:"isCompleted"`
	CreatedAt       time.Time `json:"createdAt" firestore:"createdAt"`
}

type Wishlist struct {
	ID              string     `json:"id" firestore:"id"`
	UserID          string     `json:"userId" firestore:"userId"`
	Name            string     `json:"name" firestore:"name"`
	Description     string     `json:"description" firestore:"description"`
	Items           []Item     `json:"items" firestore:"items"`
	TotalAmount     Money      `json:"totalAmount" firestore:"totalAmount"`
	CollectedAmount Money      `json:"collectedAmount" firestore:"collectedAmount"`
	QRCode          string     `json:"qrCode" firestore:"qrCode"`
	QRCodeURL       string     `json:"qrCodeUrl,omitempty" firestore:"qrCodeUrl,omitempty"`
	DeepLink        string     `json:"deepLink" firestore:"deepLink"`
	IsActive        bool       `json:"isActive" firestore:"isActive"`
	CreatedAt       time.Time  `json:"createdAt" firestore:"createdAt"`
	DeletedAt       *time.Time `json:"deletedAt,omitempty" firestore:"deletedAt,omitempty"`
}

// PublicWishlist is the shared view resolved for people scanning the code.
type PublicWishlist struct {
	*Wishlist
	OwnerName string `json:"ownerName"`
}

// WishlistMutation is the set of field operations applied to one wishlist
// document in a single atomic write.
type WishlistMutation struct {
	AppendItem   *Item
	ReplaceItems bool
	Items        []Item

	TotalDelta     Money
	CollectedDelta Money
	SetTotal       *Money
	SetCollected   *Money

	Name        *string
	Description *string

	Deactivate bool
	// UnlinkOwner clears the owner's wishlist reference in the same write.
	UnlinkOwner bool
}

func (m WishlistMutation) IsEmpty() bool {
	return m.AppendItem == nil && !m.ReplaceItems &&
		m.TotalDelta == 0 && m.CollectedDelta == 0 &&
		m.SetTotal == nil && m.SetCollected == nil &&
		m.Name == nil && m.Description == nil &&
		!m.Deactivate && !m.UnlinkOwner
}

// Drift compares stored counters with the values recomputed from the
// items and the contribution ledger.
type Drift struct {
	TotalBefore     Money `json:"totalBefore"`
	TotalAfter      Money `json:"totalAfter"`
	CollectedBefore Money `json:"collectedBefore"`
	CollectedAfter  Money `json:"collectedAfter"`
	Repaired        bool  `json:"repaired"`
}

func (w *Wishlist) State() WishlistState {
	if w.IsActive {
		return WishlistActive
	}
	return WishlistDeleted
}

// RequireState fails with ErrWishlistDeleted unless the wishlist is in one
// of the allowed states.
func (w *Wishlist) RequireState(allowed ...WishlistState) error {
	current := w.State()
	for _, s := range allowed {
		if s == current {
			return nil
		}
	}
	return ErrWishlistDeleted
}

func (w *Wishlist) IsOwnedBy(userID string) bool {
	return userID != "" && w.UserID == userID
}

func (w *Wishlist) FindItem(itemID string) (int, bool) {
	for i := range w.Items {
		if w.Items[i].ID == itemID {
			return i, true
		}
	}
	return -1, false
}

func (w *Wishlist) PlanAddItem(item Item) (WishlistMutation, error) {
	if err := w.RequireState(WishlistActive); err != nil {
		return WishlistMutation{}, err
	}
	return WishlistMutation{
		AppendItem: &item,
		TotalDelta: item.Price,
	}, nil
}

// PlanUpdateItem replaces the item with edit(old) and moves the total by the
// price difference.
func (w *Wishlist) PlanUpdateItem(itemID string, edit func(old Item) Item) (WishlistMutation, Item, error) {
	if err := w.RequireState(WishlistActive); err != nil {
		return WishlistMutation{}, Item{}, err
	}
	idx, ok := w.FindItem(itemID)
	if !ok {
		return WishlistMutation{}, Item{}, ErrItemNotFound
	}

	old := w.Items[idx]
	updated := edit(old)
	updated.ID = old.ID

	items := make([]Item, len(w.Items))
	copy(items, w.Items)
	items[idx] = updated

	return WishlistMutation{
		ReplaceItems: true,
		Items:        items,
		TotalDelta:   updated.Price - old.Price,
	}, updated, nil
}

func (w *Wishlist) PlanRemoveItem(itemID string) (WishlistMutation, Item, error) {
	if err := w.RequireState(WishlistActive); err != nil {
		return WishlistMutation{}, Item{}, err
	}
	idx, ok := w.FindItem(itemID)
	if !ok {
		return WishlistMutation{}, Item{}, ErrItemNotFound
	}

	removed := w.Items[idx]
	items := make([]Item, 0, len(w.Items)-1)
	items = append(items, w.Items[:idx]...)
	items = append(items, w.Items[idx+1:]...)

	return WishlistMutation{
		ReplaceItems:   true,
		Items:          items,
		TotalDelta:     removed.Price.Neg(),
		CollectedDelta: removed.CollectedAmount.Neg(),
	}, removed, nil
}

// PlanPatch overwrites every non-nil field, including empty strings.
func (w *Wishlist) PlanPatch(name, description *string) (WishlistMutation, error) {
	if err := w.RequireState(WishlistActive); err != nil {
		return WishlistMutation{}, err
	}
	return WishlistMutation{Name: name, Description: description}, nil
}

func (w *Wishlist) PlanSoftDelete(unlinkOwner bool) (WishlistMutation, error) {
	if err := w.RequireState(WishlistActive); err != nil {
		return WishlistMutation{}, err
	}
	return WishlistMutation{Deactivate: true, UnlinkOwner: unlinkOwner}, nil
}

func (w *Wishlist) PlanContribution(amount Money) (WishlistMutation, error) {
	if amount <= 0 {
		return WishlistMutation{}, ErrNonPositiveAmount
	}
	if err := w.RequireState(WishlistActive); err != nil {
		return WishlistMutation{}, err
	}
	return WishlistMutation{CollectedDelta: amount}, nil
}

// PlanReconcile recomputes both counters. The mutation is empty when the
// stored values already match.
func (w *Wishlist) PlanReconcile(contributions []*Contribution) (WishlistMutation, Drift) {
	total := SumPrices(w.Items)
	collected := SumContributions(contributions)

	drift := Drift{
		TotalBefore:     w.TotalAmount,
		TotalAfter:      total,
		CollectedBefore: w.CollectedAmount,
		CollectedAfter:  collected,
	}

	var m WishlistMutation
	if total != w.TotalAmount {
		m.SetTotal = &total
		drift.Repaired = true
	}
	if collected != w.CollectedAmount {
		m.SetCollected = &collected
		drift.Repaired = true
	}
	return m, drift
}

// Apply performs m on w in memory. Stores use it to build the post-write
// view and the in-memory store uses it as its write path. deletedAt is set
// from now; the Firestore store writes a server timestamp instead and
// re-reads the document after a deactivation.
func (w *Wishlist) Apply(m WishlistMutation, now time.Time) {
	if m.ReplaceItems {
		w.Items = make([]Item, len(m.Items))
		copy(w.Items, m.Items)
	}
	if m.AppendItem != nil {
		w.Items = append(w.Items, *m.AppendItem)
	}

	w.TotalAmount += m.TotalDelta
	w.CollectedAmount += m.CollectedDelta
	if m.SetTotal != nil {
		w.TotalAmount = *m.SetTotal
	}
	if m.SetCollected != nil {
		w.CollectedAmount = *m.SetCollected
	}

	if m.Name != nil {
		w.Name = *m.Name
	}
	if m.Description != nil {
		w.Description = *m.Description
	}

	if m.Deactivate {
		w.IsActive = false
		deletedAt := now
		w.DeletedAt = &deletedAt
	}
}

// Normalize replaces a nil item list so the JSON view always carries an array.
func (w *Wishlist) Normalize() *Wishlist {
	if w.Items == nil {
		w.Items = []Item{}
	}
	return w
}

// Clone returns a deep copy safe to mutate independently.
func (w *Wishlist) Clone() *Wishlist {
	c := *w
	c.Items = make([]Item, len(w.Items))
	copy(c.Items, w.Items)
	for i := range c.Items {
		if w.Items[i].ImageURL != nil {
			url := *w.Items[i].ImageURL
			c.Items[i].ImageURL = &url
		}
	}
	if w.DeletedAt != nil {
		deletedAt := *w.DeletedAt
		c.DeletedAt = &deletedAt
	}
	return &c
}
