package firebase

import (
	"context"

	"firebase.google.com/go/v4/auth"
)

// Identity is what the rest of the service knows about a verified caller.
type Identity struct {
	UID    string
	Email  string
	Name   string
	Claims map[string]interface{}
}

type FirebaseAuthClient struct {
	client *auth.Client
}

func NewFirebaseAuthClient(client *auth.Client) *FirebaseAuthClient {
	return &FirebaseAuthClient{
		client: client,
	}
}

func (f *FirebaseAuthClient) VerifyToken(ctx context.Context, token string) (*Identity, error) {
	result, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, err
	}

	return IdentityFromClaims(result.UID, result.Claims), nil
}

// IdentityFromClaims extracts the profile claims Firebase puts in ID tokens,
// including those minted by Sign in with Apple.
func IdentityFromClaims(uid string, claims map[string]interface{}) *Identity {
	identity := &Identity{UID: uid, Claims: claims}
	if email, ok := claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := claims["name"].(string); ok {
		identity.Name = name
	}
	return identity
}
