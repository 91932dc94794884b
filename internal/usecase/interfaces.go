package usecase

import (
	"context"
	"fmt"
	"strings"
)

// CodeRenderer turns a deep link into a scannable PNG and its data URL.
type CodeRenderer interface {
	DataURL(content string) (string, []byte, error)
}

// CodePublisher uploads a rendered code and returns its public URL.
type CodePublisher interface {
	PublishQRCode(ctx context.Context, name string, png []byte) (string, error)
}

func WishlistLink(scheme, wishlistID string) string {
	return fmt.Sprintf("%s://view/%s", scheme, wishlistID)
}

func FriendLink(scheme, userID string) string {
	return fmt.Sprintf("%s://friend/%s", scheme, userID)
}

// ParseFriendCode accepts either a bare user id or the scanned friend link.
func ParseFriendCode(scheme, code string) string {
	code = strings.TrimSpace(code)
	return strings.TrimPrefix(code, fmt.Sprintf("%s://friend/", scheme))
}
