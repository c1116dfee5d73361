package ratelimit

import (
	"sync"
	"time"
)

// LLMLimiter guards the shared LLM spend with two layers: a token bucket
// smoothing short bursts and a rolling 24-hour call ceiling. Both layers
// must pass for a call to proceed.
type LLMLimiter struct {
	bucket *Limiter

	mu         sync.Mutex
	dailyLimit int
	callTimes  []time.Time // rolling window of granted calls
}

// NewLLMLimiter creates an LLM budget limiter.
// burst is the bucket capacity, refillPerHour the sustained hourly rate,
// dailyLimit the rolling 24-hour ceiling (0 disables that layer).
func NewLLMLimiter(burst float64, refillPerHour float64, dailyLimit int) *LLMLimiter {
	return &LLMLimiter{
		bucket:     New(burst, refillPerHour/3600),
		dailyLimit: dailyLimit,
	}
}

// Allow reports whether an LLM call may proceed, consuming budget when so.
func (l *LLMLimiter) Allow() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.dailyLimit > 0 {
		l.prune()
		if len(l.callTimes) >= l.dailyLimit {
			return false
		}
	}

	if !l.bucket.Allow() {
		return false
	}

	if l.dailyLimit > 0 {
		l.callTimes = append(l.callTimes, time.Now())
	}
	return true
}

// DailyUsed returns how many calls were granted in the rolling window.
func (l *LLMLimiter) DailyUsed() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.prune()
	return len(l.callTimes)
}

// prune drops window entries older than 24 hours. Must be called with mu
// held.
func (l *LLMLimiter) prune() {
	cutoff := time.Now().Add(-24 * time.Hour)
	i := 0
	for i < len(l.callTimes) && l.callTimes[i].Before(cutoff) {
		i++
	}
	if i > 0 {
		l.callTimes = l.callTimes[i:]
	}
}
