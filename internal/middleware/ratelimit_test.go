package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valyala/fasthttp"
)

func TestLimiterStoreAllowsBurstThenThrottles(t *testing.T) {
	store := NewLimiterStore(60, 3)
	defer store.Stop()

	for i := 0; i < 3; i++ {
		assert.True(t, store.Allow("1.2.3.4"), "request %d within burst", i+1)
	}
	assert.False(t, store.Allow("1.2.3.4"), "burst exhausted")
}

func TestLimiterStoreKeysAreIndependent(t *testing.T) {
	store := NewLimiterStore(60, 1)
	defer store.Stop()

	assert.True(t, store.Allow("1.2.3.4"))
	assert.False(t, store.Allow("1.2.3.4"))
	assert.True(t, store.Allow("5.6.7.8"), "other clients keep their own bucket")
}

func TestRateLimitMiddleware(t *testing.T) {
	store := NewLimiterStore(60, 1)
	defer store.Stop()

	called := 0
	handler := RateLimit(store, nil)(func(ctx *fasthttp.RequestCtx) {
		called++
		ctx.SetStatusCode(fasthttp.StatusOK)
	})

	newCtx := func() *fasthttp.RequestCtx {
		var ctx fasthttp.RequestCtx
		ctx.Request.SetRequestURI("/api/users/login")
		return &ctx
	}

	first := newCtx()
	handler(first)
	assert.Equal(t, fasthttp.StatusOK, first.Response.StatusCode())
	assert.Equal(t, 1, called)

	second := newCtx()
	handler(second)
	assert.Equal(t, fasthttp.StatusTooManyRequests, second.Response.StatusCode())
	assert.Equal(t, 1, called, "throttled request never reaches the handler")
}

func TestRateLimitIgnoresForwardingHeaders(t *testing.T) {
	store := NewLimiterStore(60, 1)
	defer store.Stop()

	handler := RateLimit(store, nil)(func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
	})

	newCtx := func(forwardedFor string) *fasthttp.RequestCtx {
		var ctx fasthttp.RequestCtx
		ctx.Request.Header.Set("X-Forwarded-For", forwardedFor)
		ctx.Request.SetRequestURI("/api/users/login")
		return &ctx
	}

	first := newCtx("1.2.3.4")
	handler(first)
	assert.Equal(t, fasthttp.StatusOK, first.Response.StatusCode())

	// Rotating the header must not mint a fresh bucket.
	second := newCtx("5.6.7.8")
	handler(second)
	assert.Equal(t, fasthttp.StatusTooManyRequests, second.Response.StatusCode())
}
