package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"safar/internal/audit"
	"safar/internal/auth"
	"safar/internal/command"
	"safar/internal/store"

	"github.com/go-chi/chi/v5/middleware"
)

type adminKey string

const adminCtx adminKey = "admin"

func (app *application) BasicAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// read the auth header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
				return
			}

			// parse it -> get the base64
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Basic" {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("authorization header is malformed"))
				return
			}

			// decode it
			decoded, err := base64.StdEncoding.DecodeString(parts[1])
			if err != nil {
				app.unauthorizedBasicErrorResponse(w, r, err)
				return
			}

			// check the credentials
			username := app.config.auth.basic.user
			pass := app.config.auth.basic.pass

			creds := strings.SplitN(string(decoded), ":", 2)
			if username == "" || len(creds) != 2 || creds[0] != username || creds[1] != pass {
				app.unauthorizedBasicErrorResponse(w, r, fmt.Errorf("invalid credentials"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// AdminAuthMiddleware accepts bearer tokens that carry the admin role and
// belong to an active admin account. It also attaches the request metadata
// recorded with every audit entry.
func (app *application) AdminAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			app.unauthorizedErrorResponse(w, r, fmt.Errorf("authorization header is missing"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			app.unauthorizedErrorResponse(w, r, fmt.Errorf("authorization header is malformed"))
			return
		}

		claims, err := app.authenticator.ValidateAccessToken(parts[1])
		if err != nil {
			app.unauthorizedErrorResponse(w, r, err)
			return
		}
		if !claims.IsAdmin() {
			app.forbiddenResponse(w, r, auth.ErrForbidden)
			return
		}

		ctx := r.Context()

		user, err := app.store.Repos().Users.Get(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				app.unauthorizedErrorResponse(w, r, err)
				return
			}
			app.internalServerError(w, r, err)
			return
		}
		if !user.IsActive {
			app.forbiddenResponse(w, r, fmt.Errorf("admin %d is deactivated", user.ID))
			return
		}

		ctx = context.WithValue(ctx, adminCtx, claims)
		ctx = audit.WithRequest(ctx, audit.RequestContext{
			IP:        r.RemoteAddr,
			UserAgent: r.UserAgent(),
			RequestID: middleware.GetReqID(ctx),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func getAdminFromContext(r *http.Request) auth.Claims {
	claims, _ := r.Context().Value(adminCtx).(auth.Claims)
	return claims
}

// actorFromRequest identifies the admin behind a command for the audit log.
func actorFromRequest(r *http.Request) command.Actor {
	return command.Actor{
		ID:      getAdminFromContext(r).UserID,
		Request: audit.FromContext(r.Context()),
	}
}

// clientIP is the rate limiter key. RealIP has already applied any proxy
// headers; otherwise RemoteAddr still carries the source port.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (app *application) RateLimiterMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.config.rateLimiter.Enabled {
			if allow, retryAfter := app.rateLimiter.Allow(clientIP(r)); !allow {
				secs := int(math.Ceil(retryAfter.Seconds()))
				app.rateLimitExceededResponse(w, r, strconv.Itoa(max(secs, 1)))
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
