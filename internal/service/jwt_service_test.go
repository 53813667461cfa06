package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"companion-llm/internal/domain"
)

func TestJWTService_IssueParseAccess(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)
	user := domain.User{ID: "u1", Email: "user@example.com", DisplayName: "Test"}

	token, err := svc.IssueAccessToken(user)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := svc.ParseAccessToken(token)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "user@example.com" || claims.Issuer != jwtIssuer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestJWTService_RejectsBadTokens(t *testing.T) {
	svc := NewJWTService("secret", 15*time.Minute)
	other := NewJWTService("other-secret", 15*time.Minute)
	foreign, err := other.IssueAccessToken(domain.User{ID: "u1"})
	if err != nil {
		t.Fatalf("issue foreign token: %v", err)
	}

	wrongType := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:    "u1",
		TokenType: "refresh",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    jwtIssuer,
			Subject:   "u1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	refresh, err := wrongType.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	cases := []struct {
		name  string
		token string
	}{
		{"vacio", "  "},
		{"basura", "not-a-jwt"},
		{"otra clave", foreign},
		{"tipo refresh", refresh},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.ParseAccessToken(tc.token); !errors.Is(err, ErrJWTInvalid) {
				t.Fatalf("expected ErrJWTInvalid, got %v", err)
			}
		})
	}
}

func TestJWTService_Expired(t *testing.T) {
	svc := NewJWTService("secret", time.Minute)
	svc.now = func() time.Time { return time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC) }
	token, err := svc.IssueAccessToken(domain.User{ID: "u1"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	svc.now = func() time.Time { return time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC) }
	if _, err := svc.ParseAccessToken(token); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}

func TestJWTService_EmptySecret(t *testing.T) {
	svc := NewJWTService("", time.Minute)
	if _, err := svc.IssueAccessToken(domain.User{ID: "u1"}); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid on issue, got %v", err)
	}
	if _, err := svc.ParseAccessToken("x.y.z"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid on parse, got %v", err)
	}
}
