package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"rideshare/internal/logger"
)

const (
	idempotencyHeader = "Idempotency-Key"
	idempotencyTTL    = 24 * time.Hour
	idempotencyPrefix = "idempotency:"
)

// ResponseStore keeps replayable responses. Get returns (nil, nil) on a miss.
type ResponseStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisResponseStore is a ResponseStore backed by Redis.
type RedisResponseStore struct {
	client redis.Cmdable
}

// NewRedisResponseStore creates a RedisResponseStore.
func NewRedisResponseStore(client redis.Cmdable) *RedisResponseStore {
	return &RedisResponseStore{client: client}
}

func (s *RedisResponseStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return data, err
}

func (s *RedisResponseStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// cachedResponse stores the response for idempotent requests.
type cachedResponse struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body"`
	Headers    http.Header     `json:"headers"`
}

// responseWriter wraps gin.ResponseWriter to capture the response.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the stored response for a repeated
// Idempotency-Key on mutating requests. It must run after Auth: keys are
// scoped to the caller and the route, and requests without a caller are
// passed through untouched so unrelated clients never share responses.
func IdempotencyMiddleware(store ResponseStore, log logger.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.NewNop()
	}
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		caller, ok := CallerFrom(c)
		if key == "" || !ok {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := idempotencyKey(c, caller, key)

		cached, err := getCachedResponse(ctx, store, cacheKey)
		if err != nil {
			log.Warning("idempotency lookup failed", logger.String("key", cacheKey), logger.Error(err))
			c.Next()
			return
		}

		if cached != nil {
			for k, v := range cached.Headers {
				for _, val := range v {
					c.Header(k, val)
				}
			}
			c.Header("Idempotent-Replayed", "true")
			c.Data(cached.StatusCode, "application/json", cached.Body)
			c.Abort()
			return
		}

		w := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = w

		c.Next()

		// Server errors are retryable, so they are not stored.
		if status := c.Writer.Status(); status >= 200 && status < 500 {
			response := cachedResponse{
				StatusCode: status,
				Body:       w.body.Bytes(),
				Headers:    extractResponseHeaders(c),
			}
			if err := setCachedResponse(ctx, store, cacheKey, &response); err != nil {
				log.Warning("idempotency store failed", logger.String("key", cacheKey), logger.Error(err))
			}
		}
	}
}

func idempotencyKey(c *gin.Context, caller Caller, key string) string {
	return idempotencyPrefix + caller.Subject + ":" + c.Request.Method + ":" + c.Request.URL.Path + ":" + key
}

func getCachedResponse(ctx context.Context, store ResponseStore, key string) (*cachedResponse, error) {
	data, err := store.Get(ctx, key)
	if err != nil || data == nil {
		return nil, err
	}

	var cached cachedResponse
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, err
	}

	return &cached, nil
}

func setCachedResponse(ctx context.Context, store ResponseStore, key string, response *cachedResponse) error {
	data, err := json.Marshal(response)
	if err != nil {
		return err
	}

	return store.Set(ctx, key, data, idempotencyTTL)
}

// extractResponseHeaders extracts headers to cache.
func extractResponseHeaders(c *gin.Context) http.Header {
	headers := make(http.Header)
	if ct := c.Writer.Header().Get("Content-Type"); ct != "" {
		headers.Set("Content-Type", ct)
	}
	return headers
}
