package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowBurstPerKey(t *testing.T) {
	krl := New(1, 2)
	defer krl.Stop()

	assert.True(t, krl.Allow("alice"))
	assert.True(t, krl.Allow("alice"))
	assert.False(t, krl.Allow("alice"))

	// other keys have their own bucket
	assert.True(t, krl.Allow("bob"))
}

func TestEvictIdleKeys(t *testing.T) {
	krl := New(60, 1)
	defer krl.Stop()

	krl.Allow("alice")
	krl.Allow("bob")
	assert.Equal(t, 2, krl.Len())

	krl.evict(time.Now().Add(11 * time.Minute))
	assert.Equal(t, 0, krl.Len())
}

func TestStopIsIdempotent(t *testing.T) {
	krl := New(1, 1)
	krl.Stop()
	krl.Stop()
}
