package rpc

import (
	"errors"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// AuthConfig configures bearer-token authentication for mutating routes.
// Zero value disables auth entirely, matching the teacher's gateway
// Authenticator default.
type AuthConfig struct {
	Enabled   bool
	HMACSecret string
	Issuer    string
	Audience  string
	ClockSkew time.Duration
}

// authenticator validates HS256 JWTs on mutating routes the same way the
// teacher's gateway middleware validates operator bearer tokens, trimmed to
// issuer/audience/expiry checks since this engine has no scope-gated routes.
type authenticator struct {
	cfg    AuthConfig
	secret []byte
}

func newAuthenticator(cfg AuthConfig) *authenticator {
	if cfg.ClockSkew <= 0 {
		cfg.ClockSkew = 2 * time.Minute
	}
	return &authenticator{cfg: cfg, secret: []byte(strings.TrimSpace(cfg.HMACSecret))}
}

// Middleware rejects mutating requests that lack a valid bearer token when
// auth is enabled. Read-only routes never carry this middleware.
func (a *authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.cfg.Enabled {
			next.ServeHTTP(w, r)
			return
		}
		token := extractBearer(r.Header.Get("Authorization"))
		if token == "" {
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		claims, err := a.parseToken(token)
		if err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		if err := a.validateClaims(claims); err != nil {
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (a *authenticator) parseToken(tokenString string) (jwt.MapClaims, error) {
	if len(a.secret) == 0 {
		return nil, errors.New("rpc: auth enabled with no hmac secret configured")
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwt.WithLeeway(a.cfg.ClockSkew))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("rpc: token invalid")
	}
	return claims, nil
}

func (a *authenticator) validateClaims(claims jwt.MapClaims) error {
	if a.cfg.Issuer != "" {
		if v, ok := claims["iss"].(string); !ok || v != a.cfg.Issuer {
			return errors.New("rpc: issuer mismatch")
		}
	}
	if a.cfg.Audience != "" {
		switch v := claims["aud"].(type) {
		case string:
			if v != a.cfg.Audience {
				return errors.New("rpc: audience mismatch")
			}
		case []interface{}:
			matched := false
			for _, entry := range v {
				if s, ok := entry.(string); ok && s == a.cfg.Audience {
					matched = true
					break
				}
			}
			if !matched {
				return errors.New("rpc: audience mismatch")
			}
		default:
			return errors.New("rpc: audience mismatch")
		}
	}
	return nil
}

func extractBearer(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
