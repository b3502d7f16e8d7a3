package auth

import (
	"errors"
	"testing"
	"time"
)

func TestJWTManager(t *testing.T) {
	m, err := NewJWTManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewJWTManager() error: %v", err)
	}

	t.Run("round trip", func(t *testing.T) {
		token, err := m.Generate("host")
		if err != nil {
			t.Fatalf("Generate() error: %v", err)
		}
		claims, err := m.Validate(token)
		if err != nil {
			t.Fatalf("Validate() error: %v", err)
		}
		if claims.Operator != "host" {
			t.Errorf("operator = %q, want host", claims.Operator)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, _ := NewJWTManager("other-secret", time.Hour)
		token, _ := other.Generate("host")
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		short, _ := NewJWTManager("test-secret", -time.Minute)
		token, _ := short.Generate("host")
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := m.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate() error = %v, want ErrInvalidToken", err)
		}
	})
}

func TestNewJWTManager_EmptySecret(t *testing.T) {
	if _, err := NewJWTManager("", time.Hour); !errors.Is(err, ErrEmptySecret) {
		t.Errorf("NewJWTManager(\"\") error = %v, want ErrEmptySecret", err)
	}
}
