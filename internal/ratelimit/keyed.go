package ratelimit

import (
	"sync"
	"time"
)

// KeyedConfig configures a KeyedLimiter instance.
type KeyedConfig struct {
	// Name identifies this limiter for metrics (e.g., "conversation")
	Name string

	Burst      float64 // maximum tokens (burst capacity)
	RefillRate float64 // tokens refilled per second

	CleanupPeriod time.Duration // how often inactive limiters are removed

	// OnDrop is called once per rejected request.
	OnDrop func(name string)
}

// KeyedLimiter tracks rate limits per key (conversation id). Each key
// gets its own token bucket; buckets at full capacity are swept
// periodically.
type KeyedLimiter struct {
	mu      sync.RWMutex
	buckets map[string]*Limiter
	config  KeyedConfig
	stopCh  chan struct{}
	stopped sync.Once
}

// NewKeyedLimiter creates a per-key rate limiter and starts its cleanup
// loop. Call Stop when done.
func NewKeyedLimiter(cfg KeyedConfig) *KeyedLimiter {
	kl := &KeyedLimiter{
		buckets: make(map[string]*Limiter),
		config:  cfg,
		stopCh:  make(chan struct{}),
	}

	if cfg.CleanupPeriod > 0 {
		go kl.cleanupLoop()
	}

	return kl
}

// Allow checks whether a request for the given key is allowed, consuming
// a token when so. An empty key is never limited.
func (kl *KeyedLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	bucket := kl.getOrCreate(key)
	if bucket.Allow() {
		return true
	}
	if kl.config.OnDrop != nil {
		kl.config.OnDrop(kl.config.Name)
	}
	return false
}

func (kl *KeyedLimiter) getOrCreate(key string) *Limiter {
	kl.mu.RLock()
	bucket, ok := kl.buckets[key]
	kl.mu.RUnlock()
	if ok {
		return bucket
	}

	kl.mu.Lock()
	defer kl.mu.Unlock()
	if bucket, ok := kl.buckets[key]; ok {
		return bucket
	}
	bucket = New(kl.config.Burst, kl.config.RefillRate)
	kl.buckets[key] = bucket
	return bucket
}

// ActiveCount returns how many keys currently hold a bucket.
func (kl *KeyedLimiter) ActiveCount() int {
	kl.mu.RLock()
	defer kl.mu.RUnlock()
	return len(kl.buckets)
}

func (kl *KeyedLimiter) cleanupLoop() {
	ticker := time.NewTicker(kl.config.CleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			kl.cleanup()
		case <-kl.stopCh:
			return
		}
	}
}

// cleanup removes buckets back at full capacity; an idle key recreates
// its bucket on next use with no behavior change.
func (kl *KeyedLimiter) cleanup() {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	for key, bucket := range kl.buckets {
		if bucket.IsFull() {
			delete(kl.buckets, key)
		}
	}
}

// Stop terminates the cleanup loop.
func (kl *KeyedLimiter) Stop() {
	kl.stopped.Do(func() { close(kl.stopCh) })
}
