package utils

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	tokenString, err := GenerateAccessToken(42, "reception", "Receptionist")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := ValidateToken(tokenString)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("user id = %d, want 42", claims.UserID)
	}
	if claims.Username != "reception" {
		t.Fatalf("username = %q, want reception", claims.Username)
	}
	if claims.Role != "Receptionist" {
		t.Fatalf("role = %q, want Receptionist", claims.Role)
	}
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	tokenString, err := GenerateAccessToken(1, "boss", "Manager")
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d parts, want 3", len(parts))
	}
	tampered := parts[0] + "." + parts[1] + ".AAAA" + parts[2][4:]

	if _, err := ValidateToken(tampered); err == nil {
		t.Fatal("expected tampered token to fail validation")
	}
}

func TestValidateTokenRejectsUnsignedAlg(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 1})
	tokenString, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing none token: %v", err)
	}

	if _, err := ValidateToken(tokenString); err == nil {
		t.Fatal("expected alg=none token to fail validation")
	}
}
