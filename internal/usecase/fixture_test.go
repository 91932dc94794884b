package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"giftlist/internal/adapter/repository/memory"
	"giftlist/internal/domain/entity"
)

const stubDataURL = "data:image/png;base64,c3R1Yg=="

type stubRenderer struct {
	contents []string
	err      error
}

func (r *stubRenderer) DataURL(content string) (string, []byte, error) {
	if r.err != nil {
		return "", nil, r.err
	}
	r.contents = append(r.contents, content)
	return stubDataURL, []byte("stub"), nil
}

type stubPublisher struct {
	names []string
	err   error
}

func (p *stubPublisher) PublishQRCode(_ context.Context, name string, _ []byte) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.names = append(p.names, name)
	return "https://storage.googleapis.com/bucket/public/qr-codes/" + name + ".png", nil
}

type fixture struct {
	store         *memory.Store
	renderer      *stubRenderer
	wishlists     *WishlistUseCase
	contributions *ContributionUseCase
	users         *UserUseCase
	friends       *FriendUseCase
}

func newFixture(t *testing.T, single bool) *fixture {
	t.Helper()
	store := memory.NewStore()
	renderer := &stubRenderer{}

	f := &fixture{
		store:    store,
		renderer: renderer,
		wishlists: NewWishlistUseCase(store.Wishlists(), store.Users(), renderer, nil, nil, WishlistConfig{
			DeepLinkScheme:        "wishlist",
			SingleWishlistPerUser: single,
		}),
		contributions: NewContributionUseCase(store.Contributions(), nil),
		users:         NewUserUseCase(store.Users(), renderer, "wishlist"),
		friends:       NewFriendUseCase(store.Users(), nil, "wishlist"),
	}

	clock := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	tick := func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	f.wishlists.now = tick
	f.contributions.now = tick
	f.users.now = tick
	return f
}

func (f *fixture) user(t *testing.T, id, name, email string) *entity.User {
	t.Helper()
	u, _, err := f.users.Setup(context.Background(), Caller{UID: id, Name: name, Email: email}, SetupInput{})
	require.NoError(t, err)
	return u
}

func (f *fixture) wishlist(t *testing.T, owner, name string) *entity.Wishlist {
	t.Helper()
	w, err := f.wishlists.Create(context.Background(), owner, CreateWishlistInput{Name: name})
	require.NoError(t, err)
	return w
}

func price(s string) LooseAmount {
	m, err := entity.ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return AmountOf(m)
}

var errBoom = errors.New("boom")
