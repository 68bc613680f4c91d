package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kaganyildiz/academix/internal/app/models"
)

func testService(exp time.Duration) *JWTService {
	return NewJWTService(JWTConfig{
		SecretKey:   "test-secret-key",
		TokenExp:    exp,
		TokenIssuer: "academix-test",
	})
}

func testUser() *models.User {
	studentID := int64(42)
	return &models.User{
		ID:        7,
		Username:  "jdoe",
		Role:      models.RoleStudent,
		StudentID: &studentID,
	}
}

func TestGenerateAndValidateRoundTrip(t *testing.T) {
	svc := testService(time.Hour)
	user := testUser()

	token, expiresIn, err := svc.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("expected a token")
	}
	if expiresIn != 3600 {
		t.Fatalf("expected expiresIn 3600, got %d", expiresIn)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("unexpected userId: %d", claims.UserID)
	}
	if claims.Username != "jdoe" {
		t.Fatalf("unexpected username: %s", claims.Username)
	}
	if claims.Role != models.RoleStudent {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if claims.AssociatedID == nil || *claims.AssociatedID != 42 {
		t.Fatalf("unexpected associatedId: %v", claims.AssociatedID)
	}
	if claims.ID == "" {
		t.Fatal("expected a jti")
	}
}

func TestValidateExpiredToken(t *testing.T) {
	svc := testService(-time.Minute)

	token, _, err := svc.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	_, err = svc.ValidateToken(token)
	if !errors.Is(err, ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestValidateForgedToken(t *testing.T) {
	svc := testService(time.Hour)
	forger := NewJWTService(JWTConfig{
		SecretKey:   "some-other-secret",
		TokenExp:    time.Hour,
		TokenIssuer: "academix-test",
	})

	token, _, err := forger.GenerateToken(testUser())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	_, err = svc.ValidateToken(token)
	if !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateMalformedToken(t *testing.T) {
	svc := testService(time.Hour)

	for _, tokenString := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := svc.ValidateToken(tokenString); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("token %q: expected ErrInvalidToken, got %v", tokenString, err)
		}
	}
}

func TestValidateRejectsUnsignedToken(t *testing.T) {
	svc := testService(time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID:   7,
		Username: "jdoe",
		Role:     models.RoleStudent,
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.ValidateToken(tokenString); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for alg=none, got %v", err)
	}
}

func TestValidateRejectsUnknownRole(t *testing.T) {
	svc := testService(time.Hour)

	claims := &Claims{
		UserID:   7,
		Username: "jdoe",
		Role:     models.Role("superuser"),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.ValidateToken(tokenString); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for unknown role, got %v", err)
	}
}

func TestValidateRejectsMissingIdentity(t *testing.T) {
	svc := testService(time.Hour)

	claims := &Claims{
		Username: "jdoe",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte("test-secret-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := svc.ValidateToken(tokenString); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for zero userId, got %v", err)
	}
}
