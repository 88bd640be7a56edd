package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	appCtx "github.com/civhall/municipal-events/internal/pkg/context"
	"github.com/civhall/municipal-events/internal/security"
	"github.com/civhall/municipal-events/internal/transport/rest/response"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"
)

// AuthMiddleware verifies the bearer token and stashes the caller's
// identity in the request context. Handlers behind it can assume GetAuth
// succeeds.
func AuthMiddleware(verifier security.AccessTokenVerifier, issuer string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := appCtx.GetRequestID(r.Context())

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				response.Fail(w, http.StatusUnauthorized, "unauthorized", "missing bearer token", nil, rid)
				return
			}

			claims, err := verifier.VerifyAccessToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, security.ErrTokenExpired) {
					msg = "token expired"
				}
				response.Fail(w, http.StatusUnauthorized, "unauthorized", msg, nil, rid)
				return
			}
			if issuer != "" && claims.Issuer != issuer {
				response.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid token", nil, rid)
				return
			}

			uid, err := uuid.Parse(claims.UserID)
			if err != nil {
				response.Fail(w, http.StatusUnauthorized, "unauthorized", "invalid token subject", nil, rid)
				return
			}

			ctx := withAuth(r.Context(), AuthContext{UserID: uid, Role: claims.Role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequestLimiter is the shared fixed-window counter behind the write
// endpoints. The redis client satisfies it.
type RequestLimiter interface {
	AllowRequest(ctx context.Context, ip string, limit int, window time.Duration) (bool, error)
}

func RateLimitMiddleware(limiter RequestLimiter, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil {
				next.ServeHTTP(w, r)
				return
			}

			ip := r.RemoteAddr
			if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
				ip = host
			}

			allowed, err := limiter.AllowRequest(r.Context(), ip, limit, window)
			if err != nil {
				// limiter outage must not take writes down with it
				zlog.Warn().Err(err).Msg("rate limiter unavailable")
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				response.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", nil,
					appCtx.GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
