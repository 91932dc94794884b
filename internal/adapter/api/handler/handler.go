package handler

import (
	"giftlist/internal/usecase"
)

var (
	userHandler         *UserHandler
	wishlistHandler     *WishlistHandler
	itemHandler         *ItemHandler
	contributionHandler *ContributionHandler
	friendHandler       *FriendHandler
	healthHandler       *HealthHandler
)

func Setup(
	userUseCase *usecase.UserUseCase,
	wishlistUseCase *usecase.WishlistUseCase,
	contributionUseCase *usecase.ContributionUseCase,
	friendUseCase *usecase.FriendUseCase,
) {
	userHandler = NewUserHandler(userUseCase)
	wishlistHandler = NewWishlistHandler(wishlistUseCase)
	itemHandler = NewItemHandler(wishlistUseCase)
	contributionHandler = NewContributionHandler(contributionUseCase)
	friendHandler = NewFriendHandler(friendUseCase)
	healthHandler = NewHealthHandler()
}

func GetUserHandler() *UserHandler {
	return userHandler
}

func GetWishlistHandler() *WishlistHandler {
	return wishlistHandler
}

func GetItemHandler() *ItemHandler {
	return itemHandler
}

func GetContributionHandler() *ContributionHandler {
	return contributionHandler
}

func GetFriendHandler() *FriendHandler {
	return friendHandler
}

func GetHealthHandler() *HealthHandler {
	return healthHandler
}
