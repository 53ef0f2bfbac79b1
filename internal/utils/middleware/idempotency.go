package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/propmarket/server/internal/port/outbound"
	apperrors "github.com/propmarket/server/internal/utils/errors"
	"github.com/propmarket/server/internal/utils/logger"
)

const (
	// IdempotencyKeyHeader is the header for idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the store.
	IdempotencyReplayedHeader = "Idempotent-Replayed"

	defaultIdempotencyTTL = 24 * time.Hour
	idempotencyLockTTL    = 30 * time.Second
)

// IdempotencyConfig holds idempotency middleware configuration.
type IdempotencyConfig struct {
	// TTL is the time to live for stored responses.
	TTL time.Duration
	// Methods are the HTTP methods to apply idempotency check.
	// Default: POST, PATCH
	Methods []string
	Logger  *logger.Logger
}

// idempotencyResponse stores the cached response.
type idempotencyResponse struct {
	StatusCode  int    `json:"status_code"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// idempotencyResponseWriter wraps gin.ResponseWriter to capture the response.
type idempotencyResponseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *idempotencyResponseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a request repeated with the same
// Idempotency-Key. Keys are scoped by caller, method, route and body, so one
// user's key never replays another user's response. Requests without the header pass through.
func Idempotency(store outbound.IdempotencyStorePort, cfg IdempotencyConfig) gin.HandlerFunc {
	if cfg.TTL <= 0 {
		cfg.TTL = defaultIdempotencyTTL
	}
	if len(cfg.Methods) == 0 {
		cfg.Methods = []string{http.MethodPost, http.MethodPatch}
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.New(nil)
	}

	methodSet := make(map[string]bool, len(cfg.Methods))
	for _, m := range cfg.Methods {
		methodSet[m] = true
	}

	return func(c *gin.Context) {
		if store == nil || !methodSet[c.Request.Method] {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		log := cfg.Logger.WithRequest(ctx)
		cacheKey := generateIdempotencyKey(c, idempotencyKey)

		if data, err := store.Get(ctx, cacheKey); err != nil {
			log.Warn("idempotency lookup failed", "error", err)
		} else if data != nil {
			var cached idempotencyResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				c.Header(IdempotencyReplayedHeader, "true")
				c.Data(cached.StatusCode, cached.ContentType, cached.Body)
				c.Abort()
				return
			}
		}

		locked, err := store.Lock(ctx, cacheKey, idempotencyLockTTL)
		if err != nil {
			log.Warn("idempotency lock failed", "error", err)
			c.Next()
			return
		}
		if !locked {
			abort(c, apperrors.Conflict("REQUEST_IN_PROGRESS",
				"A request with this idempotency key is already being processed"))
			return
		}
		defer func() {
			if err := store.Unlock(ctx, cacheKey); err != nil {
				log.Warn("idempotency unlock failed", "error", err)
			}
		}()

		respWriter := &idempotencyResponseWriter{
			ResponseWriter: c.Writer,
			body:           bytes.NewBuffer(nil),
		}
		c.Writer = respWriter

		c.Next()

		// Server errors are not stored so the client can retry them.
		status := c.Writer.Status()
		if status < 200 || status >= 500 {
			return
		}
		data, err := json.Marshal(&idempotencyResponse{
			StatusCode:  status,
			ContentType: c.Writer.Header().Get("Content-Type"),
			Body:        respWriter.body.Bytes(),
		})
		if err != nil {
			return
		}
		if err := store.Save(ctx, cacheKey, data, cfg.TTL); err != nil {
			log.Warn("idempotency save failed", "error", err)
		}
	}
}

// generateIdempotencyKey generates a cache key from the request.
func generateIdempotencyKey(c *gin.Context, idempotencyKey string) string {
	hash := sha256.New()
	hash.Write([]byte(GetUserID(c).String()))
	hash.Write([]byte{0})
	hash.Write([]byte(c.Request.Method + ":" + c.FullPath() + ":" + c.Request.URL.Path))
	hash.Write([]byte{0})
	hash.Write([]byte(idempotencyKey))
	hash.Write([]byte{0})
	hash.Write([]byte(bodyHash(c)))
	return hex.EncodeToString(hash.Sum(nil))
}

// bodyHash hashes the request body and restores it for the handler.
func bodyHash(c *gin.Context) string {
	if c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	sum := sha256.Sum256(body)
	return hex.EncodeToString(sum[:])
}
