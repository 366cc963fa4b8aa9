package idempotency

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store remembers request keys in redis for a TTL so a retried request with
// the same Idempotency-Key is refused instead of placing a second order.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) Key(route, key string) string {
	return fmt.Sprintf("idem:%s:%s", route, key)
}

// Seen marks the key and reports whether it was already present.
func (s *Store) Seen(ctx context.Context, key string) (bool, error) {
	ok, err := s.rdb.SetNX(ctx, key, "1", s.ttl).Result()
	if err != nil {
		return false, err
	}
	return !ok, nil
}

// Middleware rejects repeated requests carrying the same Idempotency-Key
// header. Requests without the header pass through untouched; placement
// itself gives no idempotency guarantee, so the header is the caller's only
// dedupe handle.
func Middleware(log *slog.Logger, store *Store, route string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.Header.Get("Idempotency-Key")
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			seen, err := store.Seen(r.Context(), store.Key(route, key))
			if err != nil {
				// Redis being down must not block order placement.
				log.ErrorContext(r.Context(), "idempotency lookup failed", "err", err)
				next.ServeHTTP(w, r)
				return
			}
			if seen {
				http.Error(w, "duplicate request", http.StatusConflict)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
