package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"
)

func signBody(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func TestValidateSignature(t *testing.T) {
	v := NewSecurityValidator(SecurityConfig{Secret: "s3cret", RateLimitPerMin: 60})
	body := []byte(`{"type":"page.updated"}`)

	t.Run("valid signature", func(t *testing.T) {
		if err := v.ValidateSignature(body, signBody("s3cret", body)); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		if err := v.ValidateSignature(body, signBody("other", body)); err == nil {
			t.Error("expected verification failure")
		}
	})

	t.Run("missing prefix", func(t *testing.T) {
		if err := v.ValidateSignature(body, "deadbeef"); err == nil {
			t.Error("expected format error")
		}
	})

	t.Run("secret not configured", func(t *testing.T) {
		unconfigured := NewSecurityValidator(SecurityConfig{RateLimitPerMin: 60})
		if err := unconfigured.ValidateSignature(body, signBody("s3cret", body)); err == nil {
			t.Error("expected error without a configured secret")
		}
	})
}

func TestValidateIPAddress(t *testing.T) {
	t.Run("empty allowlist admits everyone", func(t *testing.T) {
		v := NewSecurityValidator(SecurityConfig{RateLimitPerMin: 60})
		if err := v.ValidateIPAddress("203.0.113.7"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("exact match", func(t *testing.T) {
		v := NewSecurityValidator(SecurityConfig{AllowedIPs: []string{"203.0.113.7"}, RateLimitPerMin: 60})
		if err := v.ValidateIPAddress("203.0.113.7"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if err := v.ValidateIPAddress("203.0.113.8"); err == nil {
			t.Error("expected rejection")
		}
	})

	t.Run("CIDR range", func(t *testing.T) {
		v := NewSecurityValidator(SecurityConfig{AllowedIPs: []string{"10.0.0.0/8"}, RateLimitPerMin: 60})
		if err := v.ValidateIPAddress("10.1.2.3"); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if err := v.ValidateIPAddress("192.168.1.1"); err == nil {
			t.Error("expected rejection outside range")
		}
	})
}

func TestCheckRateLimit(t *testing.T) {
	v := NewSecurityValidator(SecurityConfig{RateLimitPerMin: 60})

	// Burst capacity admits the first few, then the per-second rate applies.
	allowed := 0
	for i := 0; i < 20; i++ {
		if err := v.CheckRateLimit("203.0.113.7"); err == nil {
			allowed++
		}
	}
	if allowed == 0 {
		t.Error("expected at least the burst to be admitted")
	}
	if allowed == 20 {
		t.Error("expected the limiter to start rejecting within 20 rapid calls")
	}
}
