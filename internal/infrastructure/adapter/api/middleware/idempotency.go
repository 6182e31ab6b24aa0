package middleware

import (
	"bytes"
	"net/http"
	"time"

	errs "github.com/damilare-oj/vtu-processor/internal/domain/apperror"
	coreport "github.com/damilare-oj/vtu-processor/internal/domain/port/core"
	"github.com/damilare-oj/vtu-processor/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

const (
	// IdempotencyHeader is the standard HTTP header for idempotency keys
	IdempotencyHeader = "Idempotency-Key"

	// LockTimeout prevents indefinite locks if a request crashes
	LockTimeout = 10 * time.Second

	// RedisKeyPrefix for namespacing idempotency keys
	RedisKeyPrefix = "idempotency:"

	// LockKeyPrefix for namespacing distributed locks
	LockKeyPrefix = "lock:"
)

// bodyCapture records the response body so it can be cached.
type bodyCapture struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCapture) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency caches the response of each keyed request in Redis. This is the
// transport-level guard against double submission; the store-level guard is
// the unique transaction reference, which holds even when the cache is cold.
func Idempotency(rdb *redis.Client, ttl time.Duration, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		idempotencyKey := c.GetHeader(IdempotencyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := RedisKeyPrefix + idempotencyKey
		lockKey := LockKeyPrefix + idempotencyKey

		cached, err := rdb.Get(ctx, cacheKey).Result()
		if err == nil {
			c.Header("X-Idempotency-Hit", "true")
			c.Data(http.StatusOK, "application/json", []byte(cached))
			c.Abort()
			return
		}
		if err != redis.Nil {
			// Cache unavailable: fall through, the reference guard still holds.
			logger.Warn("Idempotency cache unavailable", map[string]any{
				"error": err.Error(),
			})
			c.Next()
			return
		}

		acquired, err := rdb.SetNX(ctx, lockKey, "processing", LockTimeout).Result()
		if err == nil && !acquired {
			c.AbortWithStatusJSON(http.StatusConflict, dto.ErrorResponse{
				Code:    errs.ErrorCode(errs.ErrDuplicateReference),
				Message: "A request with this idempotency key is currently being processed",
			})
			return
		}
		if err == nil {
			defer func() {
				if derr := rdb.Del(ctx, lockKey).Err(); derr != nil {
					logger.Warn("Failed to release idempotency lock", map[string]any{
						"key":   idempotencyKey,
						"error": derr.Error(),
					})
				}
			}()
		}

		capture := &bodyCapture{ResponseWriter: c.Writer}
		c.Writer = capture
		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			if err := rdb.Set(ctx, cacheKey, capture.body.String(), ttl).Err(); err != nil {
				logger.Warn("Failed to cache idempotent response", map[string]any{
					"key":   idempotencyKey,
					"error": err.Error(),
				})
			}
		}
	}
}
