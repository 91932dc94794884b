package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObjectName(t *testing.T) {
	assert.Equal(t, "public/qr-codes/abc-123.png", ObjectName("abc-123"))
	assert.Equal(t, "public/qr-codes/abc.png", ObjectName("abc.png"))
	assert.Equal(t, "public/qr-codes/.._etc.png", ObjectName("../etc"))
}

func TestPublicURL(t *testing.T) {
	assert.Equal(t,
		"https://storage.googleapis.com/gifts/public/qr-codes/w1.png",
		PublicURL("gifts", ObjectName("w1")))
}
