package middleware

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"hrms/internal/domain/errs"
	"hrms/internal/platform/idempotency"
	"hrms/internal/transport/http/api"
)

const maxIdempotencyKeyLen = 128

// replayTap copies the downstream response so it can be stored.
type replayTap struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (t *replayTap) WriteHeader(code int) {
	t.status = code
	t.ResponseWriter.WriteHeader(code)
}

func (t *replayTap) Write(p []byte) (int, error) {
	t.body.Write(p)
	return t.ResponseWriter.Write(p)
}

// Idempotent replays the stored response when an authenticated caller repeats
// a request with the same Idempotency-Key and payload. Reusing a key with a
// different payload is a 409. Only 2xx responses are stored. Requests without
// the header pass through.
func Idempotent(store idempotency.StoreAPI, endpoint string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if store == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get("Idempotency-Key"))
			user, ok := GetUser(r.Context())
			if key == "" || !ok {
				next.ServeHTTP(w, r)
				return
			}
			reqID := GetRequestID(r.Context())
			if len(key) > maxIdempotencyKeyLen {
				api.Fail(w, http.StatusBadRequest, "validation_error", "Idempotency-Key is too long", reqID)
				return
			}

			raw, err := io.ReadAll(r.Body)
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", reqID)
					return
				}
				api.Fail(w, http.StatusBadRequest, "invalid_payload", "request body could not be read", reqID)
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(raw))
			hash := idempotency.RequestHash(raw)

			prior, err := store.FindKey(r.Context(), user.UserID, endpoint, key)
			switch {
			case err == nil && prior.RequestHash != hash:
				api.Fail(w, http.StatusConflict, "idempotency_conflict", idempotency.ErrConflict.Error(), reqID)
				return
			case err == nil:
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Idempotent-Replayed", "true")
				w.WriteHeader(prior.Status)
				_, _ = w.Write(prior.Response)
				return
			case !errors.Is(err, errs.ErrNotFound):
				slog.Warn("idempotency lookup failed", "endpoint", endpoint, "err", err)
			}

			rec := &replayTap{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			if rec.status < 200 || rec.status >= 300 {
				return
			}
			err = store.SaveKey(r.Context(), idempotency.Record{
				UserID:      user.UserID,
				Endpoint:    endpoint,
				Key:         key,
				RequestHash: hash,
				Status:      rec.status,
				Response:    rec.body.Bytes(),
			})
			if err != nil {
				slog.Warn("idempotency save failed", "endpoint", endpoint, "err", err)
			}
		})
	}
}
