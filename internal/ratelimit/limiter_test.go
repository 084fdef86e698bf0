package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowKeyStableWithinWindow(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 2, 0, 0, time.UTC)
	later := base.Add(5 * time.Minute)

	assert.Equal(t,
		windowKey("203.0.113.7", "login", base),
		windowKey("203.0.113.7", "login", later),
	)
}

func TestWindowKeyChangesAcrossWindows(t *testing.T) {
	base := time.Date(2026, 3, 14, 10, 2, 0, 0, time.UTC)
	next := base.Add(windowDuration)

	assert.NotEqual(t,
		windowKey("203.0.113.7", "login", base),
		windowKey("203.0.113.7", "login", next),
	)
}

func TestWindowKeySeparatesPurposesAndIPs(t *testing.T) {
	now := time.Now()

	assert.NotEqual(t,
		windowKey("203.0.113.7", "login", now),
		windowKey("203.0.113.7", "signup", now),
	)
	assert.NotEqual(t,
		windowKey("203.0.113.7", "login", now),
		windowKey("203.0.113.8", "login", now),
	)
}
