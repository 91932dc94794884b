package entity

import (
	"time"
)

type User struct {
	ID          string  `json:"id" firestore:"id"`
	DisplayName string  `json:"displayName" firestore:"displayName"`
	Email       *string `json:"email" firestore:"email"`
	// WishlistID is only maintained in single-wishlist mode.
	WishlistID string    `json:"wishlistId,omitempty" firestore:"wishlistId,omitempty"`
	Friends    []string  `json:"friends,omitempty" firestore:"friends,omitempty"`
	CreatedAt  time.Time `json:"createdAt" firestore:"createdAt"`
}

// Friend is the public projection of a user shown in friend lists.
type Friend struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"displayName"`
	Email       *string `json:"email"`
}

func (u *User) HasFriend(id string) bool {
	for _, f := range u.Friends {
		if f == id {
			return true
		}
	}
	return false
}

func (u *User) AsFriend() Friend {
	return Friend{ID: u.ID, DisplayName: u.DisplayName, Email: u.Email}
}
