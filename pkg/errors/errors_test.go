package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesWrappedCode(t *testing.T) {
	err := fmt.Errorf("loading: %w", NotFound("Wishlist", nil))

	assert.True(t, Is(err, "NOT_FOUND"))
	assert.False(t, Is(err, "FORBIDDEN"))
	assert.False(t, Is(errors.New("plain"), "NOT_FOUND"))
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusConflict, StatusOf(Conflict("deleted")))
	assert.Equal(t, http.StatusBadRequest, StatusOf(InvalidAmount("bad")))
	assert.Equal(t, http.StatusBadRequest, StatusOf(AlreadyFriends()))
	assert.Equal(t, http.StatusTooManyRequests, StatusOf(TooManyRequests("slow down")))
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("boom")))
}

func TestErrorStringIncludesCause(t *testing.T) {
	cause := errors.New("deadline exceeded")
	err := Internal("Failed to get wishlist", cause)

	assert.Equal(t, "INTERNAL_ERROR: Failed to get wishlist: deadline exceeded", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "NOT_FOUND: User not found", NotFound("User", nil).Error())
}
