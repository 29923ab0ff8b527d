package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"fleet-service/internal/model"
)

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestParserRoundTrip(t *testing.T) {
	employeeID := uuid.New()
	claims := Claims{
		UserID:     uuid.New(),
		Role:       model.UserRoleManager,
		EmployeeID: &employeeID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	parser := NewParser("test-secret")
	got, err := parser.Parse(signToken(t, "test-secret", claims))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if got.UserID != claims.UserID {
		t.Errorf("user id mismatch: %s != %s", got.UserID, claims.UserID)
	}
	if got.Role != model.UserRoleManager {
		t.Errorf("expected role %s, got %s", model.UserRoleManager, got.Role)
	}
	if got.EmployeeID == nil || *got.EmployeeID != employeeID {
		t.Errorf("employee id not preserved")
	}
}

func TestParserRejectsWrongSecret(t *testing.T) {
	claims := Claims{
		UserID: uuid.New(),
		Role:   model.UserRoleDriver,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	parser := NewParser("right-secret")
	if _, err := parser.Parse(signToken(t, "wrong-secret", claims)); err == nil {
		t.Fatal("expected error for token signed with another secret")
	}
}

func TestParserRejectsExpiredToken(t *testing.T) {
	claims := Claims{
		UserID: uuid.New(),
		Role:   model.UserRoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}

	parser := NewParser("test-secret")
	if _, err := parser.Parse(signToken(t, "test-secret", claims)); err == nil {
		t.Fatal("expected error for expired token")
	}
}
