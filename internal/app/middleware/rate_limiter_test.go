package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTokenBucketBurst(t *testing.T) {
	bucket := NewTokenBucket(1, 2)

	// 突发容量内的请求放行
	assert.True(t, bucket.Allow())
	assert.True(t, bucket.Allow())

	// 桶空后立即的请求被拒绝
	assert.False(t, bucket.Allow())
}

func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(100, 1)

	assert.True(t, bucket.Allow())
	assert.False(t, bucket.Allow())

	// 等待填充后恢复放行
	time.Sleep(20 * time.Millisecond)
	assert.True(t, bucket.Allow())
}

func TestTokenBucketCapped(t *testing.T) {
	bucket := NewTokenBucket(1000, 2)

	time.Sleep(10 * time.Millisecond)

	// 令牌数不超过桶容量
	assert.True(t, bucket.Allow())
	assert.True(t, bucket.Allow())
	assert.False(t, bucket.Allow())
}
