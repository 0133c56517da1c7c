package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheBodyWriterCapture(t *testing.T) {
	w := &cacheBodyWriter{maxBodyBytes: 8}

	w.capture([]byte("1234"))
	w.capture([]byte("5678"))
	assert.Equal(t, "12345678", string(w.body))
	assert.False(t, w.overflow)
}

func TestCacheBodyWriterOverflow(t *testing.T) {
	w := &cacheBodyWriter{maxBodyBytes: 8}

	w.capture([]byte("123456"))
	w.capture([]byte("789"))
	assert.True(t, w.overflow, "a response past the cap is never cached")

	w.capture([]byte("x"))
	assert.Equal(t, "123456", string(w.body), "capture stops after overflow")
}

func TestCacheBodyWriterDisabled(t *testing.T) {
	w := &cacheBodyWriter{maxBodyBytes: 0}
	w.capture([]byte("data"))
	assert.Empty(t, w.body)
}
