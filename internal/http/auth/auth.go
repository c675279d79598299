// Package auth holds the request gates in front of the API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MrJamesThe3rd/invoicer/internal/company"
	"github.com/MrJamesThe3rd/invoicer/internal/http/httpx"
)

// Bearer checks for an HS256 bearer token signed with secret. An empty secret disables the check.
func Bearer(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || raw == "" {
				unauthorized(w, "missing bearer token")
				return
			}

			if err := Verify(secret, raw); err != nil {
				unauthorized(w, err.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Verify parses raw and checks its signature and time claims.
func Verify(secret, raw string) error {
	_, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return errors.New("token expired")
		}

		return fmt.Errorf("invalid token: %w", err)
	}

	return nil
}

// Issue signs a token for subject that expires after ttl.
func Issue(secret, subject string, ttl time.Duration) (string, error) {
	now := time.Now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}

	return signed, nil
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="invoicer"`)
	httpx.WriteProblem(w, httpx.Problem{Status: http.StatusUnauthorized, Code: "unauthorized", Detail: detail})
}

type ProfileChecker interface {
	Exists(ctx context.Context) (bool, error)
}

// RequireProfile refuses requests until a company profile has been set up.
func RequireProfile(profiles ProfileChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := profiles.Exists(r.Context())
			if err != nil {
				httpx.Error(w, err)
				return
			}

			if !ok {
				httpx.Error(w, company.ErrProfileMissing)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
