package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIPRateLimiterBurst(t *testing.T) {
	rl := NewIPRateLimiter(10, 3, time.Minute)

	limiter := rl.getLimiter("10.0.0.1")
	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow(), "request %d trong burst phải được cho qua", i+1)
	}
	assert.False(t, limiter.Allow(), "vượt burst phải bị chặn")
}

func TestIPRateLimiterPerIP(t *testing.T) {
	rl := NewIPRateLimiter(10, 1, time.Minute)

	// Mỗi IP có limiter riêng, IP này hết quota không ảnh hưởng IP khác
	assert.True(t, rl.getLimiter("10.0.0.1").Allow())
	assert.False(t, rl.getLimiter("10.0.0.1").Allow())
	assert.True(t, rl.getLimiter("10.0.0.2").Allow())
}

func TestIPRateLimiterReusesLimiter(t *testing.T) {
	rl := NewIPRateLimiter(10, 5, time.Minute)

	first := rl.getLimiter("10.0.0.1")
	second := rl.getLimiter("10.0.0.1")
	assert.Same(t, first, second)
}
