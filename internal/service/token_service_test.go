package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/uros002/QuizHubApp/internal/model"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService(testConfig())
	token, err := tokens.Issue(&model.User{ID: 42, Username: "mia", Email: "mia@example.com"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	claims, err := tokens.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != 42 || claims.Subject != "42" || claims.Issuer != "quizhub-test" {
		t.Fatalf("claims = %+v", claims)
	}
	if ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time); ttl != 20*time.Minute {
		t.Fatalf("ttl = %v", ttl)
	}
}

func TestTokenExpires(t *testing.T) {
	svc := NewTokenService(testConfig()).(*tokenService)
	issued := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issued }
	token, err := svc.Issue(&model.User{ID: 1, Username: "old"})
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	svc.now = time.Now
	_, err = svc.Parse(token)
	kindOf(t, err, KindUnauthorized)
}

func TestTokenRejectsForeignSignature(t *testing.T) {
	claims := Claims{UserID: 1, RegisteredClaims: jwt.RegisteredClaims{
		Issuer:    "quizhub-test",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	_, err = NewTokenService(testConfig()).Parse(forged)
	kindOf(t, err, KindUnauthorized)

	_, err = NewTokenService(testConfig()).Parse("not-a-token")
	kindOf(t, err, KindUnauthorized)
}
