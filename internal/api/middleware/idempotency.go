package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/frontdesk/hotel-system/internal/api/metrics"
	"github.com/frontdesk/hotel-system/internal/core/ports"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderReplayed       = "Idempotent-Replayed"
)

// bodyRecorder tees the response body so it can be stored after the handler
// returns.
type bodyRecorder struct {
	http.ResponseWriter
	buf bytes.Buffer
}

func (r *bodyRecorder) Write(b []byte) (int, error) {
	r.buf.Write(b)
	return r.ResponseWriter.Write(b)
}

// Idempotency replays the first successful response for a repeated
// Idempotency-Key header. Requests without the header pass through. When the
// store is unreachable the request is served without replay protection.
func Idempotency(store ports.IdempotencyStore, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.Request().Header.Get(HeaderIdempotencyKey)
			if key == "" {
				return next(c)
			}
			scoped := idempotencyScope(c.Request(), key)
			ctx := c.Request().Context()

			stored, err := store.Begin(ctx, scoped)
			switch {
			case errors.Is(err, ports.ErrIdempotencyKeyInFlight):
				return err
			case err != nil:
				log.Warn().Err(err).Str("key", key).Msg("idempotency store unavailable")
				return next(c)
			case stored != nil:
				metrics.IdempotencyReplaysTotal.Inc()
				c.Response().Header().Set(HeaderReplayed, "true")
				return c.Blob(stored.Status, stored.ContentType, stored.Body)
			}

			rec := &bodyRecorder{ResponseWriter: c.Response().Writer}
			c.Response().Writer = rec

			if err := next(c); err != nil {
				abort(c, store, scoped, log)
				return err
			}

			status := c.Response().Status
			if status >= http.StatusInternalServerError {
				abort(c, store, scoped, log)
				return nil
			}

			resp := ports.StoredResponse{
				Status:      status,
				ContentType: c.Response().Header().Get(echo.HeaderContentType),
				Body:        rec.buf.Bytes(),
			}
			if err := store.Complete(ctx, scoped, resp); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("idempotency response not stored")
			}
			return nil
		}
	}
}

// idempotencyScope ties a client key to the route and caller so that two
// callers reusing a key never see each other's responses.
func idempotencyScope(r *http.Request, key string) string {
	caller := sha256.Sum256([]byte(r.Header.Get(echo.HeaderAuthorization)))
	return r.Method + " " + r.URL.Path + " " + hex.EncodeToString(caller[:8]) + " " + key
}

func abort(c echo.Context, store ports.IdempotencyStore, key string, log zerolog.Logger) {
	if err := store.Abort(c.Request().Context(), key); err != nil {
		log.Warn().Err(err).Msg("idempotency key not released")
	}
}
