// Package localauth provides anonymous sessions and JWT session-token
// restoration for the backend variants that do not ship their own identity
// service (Postgres, Mongo).
package localauth

import (
	"context"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/apperr"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/backend"
)

type Service struct {
	secret string

	mu        sync.Mutex
	listeners []backend.AuthListener
}

func New(secret string) *Service {
	return &Service{secret: secret}
}

// SignInAnonymously mints a fresh anonymous identity.
func (s *Service) SignInAnonymously(ctx context.Context) (backend.Session, error) {
	sess := backend.Session{UserID: uuid.New().String()}
	s.notify(sess)
	return sess, nil
}

// RestoreSession validates a previously issued session token and adopts the
// user id from its claims.
func (s *Service) RestoreSession(ctx context.Context, tokenString string) (backend.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return backend.Session{}, apperr.Wrap(apperr.Authentication, "Invalid or expired session token", err)
	}
	if !token.Valid {
		return backend.Session{}, apperr.New(apperr.Authentication, "Invalid or expired session token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return backend.Session{}, apperr.New(apperr.Authentication, "Invalid token claims")
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		if sub, subOK := claims["sub"].(string); subOK && sub != "" {
			userID = sub
		} else {
			return backend.Session{}, apperr.New(apperr.Authentication, "Invalid user ID in token")
		}
	}

	sess := backend.Session{UserID: userID}
	s.notify(sess)
	return sess, nil
}

func (s *Service) Watch(listener backend.AuthListener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, listener)
	s.mu.Unlock()
}

// IssueToken signs a session token for userID. Useful for handing a session
// to a future run via SESSION_TOKEN.
func (s *Service) IssueToken(userID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
	})
	return token.SignedString([]byte(s.secret))
}

func (s *Service) notify(sess backend.Session) {
	s.mu.Lock()
	listeners := make([]backend.AuthListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(sess)
	}
}
