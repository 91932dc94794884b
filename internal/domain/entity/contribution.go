package entity

import "time"

// Contribution is an immutable pledge against a wishlist's collected total.
type Contribution struct {
	ID              string    `json:"id" firestore:"id"`
	WishlistID      string    `json:"wishlistId" firestore:"wishlistId"`
	Amount          Money     `json:"amount" firestore:"amount"`
	ContributorName string    `json:"contributorName" firestore:"contributorName"`
	Message         string    `json:"message" firestore:"message"`
	CreatedAt       time.Time `json:"createdAt" firestore:"createdAt"`
}
