package ratelimit

import (
	"sync"
	"time"
)

// TokenBucket represents a token bucket for rate limiting
type TokenBucket struct {
	tokens     int
	maxTokens  int
	refillRate int
	refillTime time.Duration
	lastRefill time.Time
	lastUsed   time.Time
	mutex      sync.Mutex
}

// Policy sizes the bucket created for an action.
type Policy struct {
	Burst      int
	RefillRate int
	RefillTime time.Duration
}

// PerMinute allows n requests per minute with a burst of n.
func PerMinute(n int) Policy {
	if n <= 0 {
		n = 1
	}
	return Policy{Burst: n, RefillRate: 1, RefillTime: time.Minute / time.Duration(n)}
}

// RateLimiter manages one bucket per client and action.
type RateLimiter struct {
	buckets  map[string]*TokenBucket
	policies map[string]Policy
	fallback Policy
	mutex    sync.RWMutex
	now      func() time.Time
}

func NewRateLimiter(policies map[string]Policy, fallback Policy) *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*TokenBucket),
		policies: policies,
		fallback: fallback,
		now:      time.Now,
	}
}

func newTokenBucket(p Policy, now time.Time) *TokenBucket {
	if p.RefillTime <= 0 {
		p.RefillTime = time.Minute
	}
	if p.RefillRate <= 0 {
		p.RefillRate = 1
	}
	return &TokenBucket{
		tokens:     p.Burst,
		maxTokens:  p.Burst,
		refillRate: p.RefillRate,
		refillTime: p.RefillTime,
		lastRefill: now,
		lastUsed:   now,
	}
}

// allow consumes a token if one is available, otherwise it reports how long
// until the next refill.
func (tb *TokenBucket) allow(now time.Time) (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	tb.lastUsed = now

	elapsed := now.Sub(tb.lastRefill)
	tokensToAdd := int(elapsed/tb.refillTime) * tb.refillRate
	if tokensToAdd > 0 {
		tb.tokens += tokensToAdd
		if tb.tokens > tb.maxTokens {
			tb.tokens = tb.maxTokens
		}
		tb.lastRefill = tb.lastRefill.Add(time.Duration(tokensToAdd/tb.refillRate) * tb.refillTime)
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	return false, tb.lastRefill.Add(tb.refillTime).Sub(now)
}

// Allow checks whether client may perform action now.
func (rl *RateLimiter) Allow(client, action string) (bool, time.Duration) {
	key := client + ":" + action
	now := rl.now()

	rl.mutex.RLock()
	bucket, exists := rl.buckets[key]
	rl.mutex.RUnlock()

	if !exists {
		rl.mutex.Lock()
		if bucket, exists = rl.buckets[key]; !exists {
			policy, ok := rl.policies[action]
			if !ok {
				policy = rl.fallback
			}
			bucket = newTokenBucket(policy, now)
			rl.buckets[key] = bucket
		}
		rl.mutex.Unlock()
	}

	return bucket.allow(now)
}

// Cleanup removes buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	removed := 0
	for key, bucket := range rl.buckets {
		bucket.mutex.Lock()
		idle := now.Sub(bucket.lastUsed)
		bucket.mutex.Unlock()
		if idle > maxIdle {
			delete(rl.buckets, key)
			removed++
		}
	}
	return removed
}

// StartCleanupRoutine prunes idle buckets until done is closed.
func (rl *RateLimiter) StartCleanupRoutine(done <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			case <-done:
				return
			}
		}
	}()
}
