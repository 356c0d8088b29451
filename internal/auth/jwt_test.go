package auth

import (
	"errors"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	a := NewJWTAuthenticator("s3cret", "safar-admin", "safar", time.Hour)
	tok, err := a.GenerateAccessToken(42, "admin")
	if err != nil {
		t.Fatal(err)
	}
	c, err := a.ValidateAccessToken(tok)
	if err != nil {
		t.Fatal(err)
	}
	if c.UserID != 42 || !c.IsAdmin() {
		t.Fatalf("unexpected claims %+v", c)
	}
}

func TestValidateRejects(t *testing.T) {
	a := NewJWTAuthenticator("s3cret", "safar-admin", "safar", time.Hour)

	other := NewJWTAuthenticator("different", "safar-admin", "safar", time.Hour)
	forged, _ := other.GenerateAccessToken(1, "admin")

	wrongAud := NewJWTAuthenticator("s3cret", "mobile", "safar", time.Hour)
	mobile, _ := wrongAud.GenerateAccessToken(1, "admin")

	expired := NewJWTAuthenticator("s3cret", "safar-admin", "safar", -time.Minute)
	old, _ := expired.GenerateAccessToken(1, "admin")

	for name, tok := range map[string]string{"forged": forged, "audience": mobile, "expired": old, "garbage": "abc.def"} {
		if _, err := a.ValidateAccessToken(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("%s: expected ErrInvalidToken, got %v", name, err)
		}
	}
}
