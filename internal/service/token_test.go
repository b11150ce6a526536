package service

import (
	"strings"
	"testing"

	"github.com/openlumen/walletd/internal/config"
	"github.com/openlumen/walletd/internal/domain"
)

func testConf() config.JWT {
	return config.JWT{
		Secret:        "test-secret",
		Issuer:        "walletd",
		Audience:      "wallet-client",
		ExpiryMinutes: 5,
	}
}

func TestTokenIssueDecodeRoundTrip(t *testing.T) {
	s := NewTokenService(testConf())

	issued := s.Issue("john.doe@mail.com", domain.RoleUser)
	if !issued.IsSuccess() {
		t.Fatalf("issue failed: %+v", issued.Err())
	}

	decoded := s.Decode(issued.Value())
	if !decoded.IsSuccess() {
		t.Fatalf("decode failed: %+v", decoded.Err())
	}
	if decoded.Value() != "john.doe@mail.com" {
		t.Fatalf("expected email claim, got %q", decoded.Value())
	}
}

func TestTokenIssueWithoutSecret(t *testing.T) {
	s := NewTokenService(config.JWT{ExpiryMinutes: 5})

	issued := s.Issue("john.doe@mail.com", domain.RoleUser)
	if issued.IsSuccess() {
		t.Fatalf("expected failure without signing secret")
	}
	if issued.Err().Kind != domain.KindInternal {
		t.Fatalf("expected internal error, got %+v", issued.Err())
	}
}

func TestTokenDecodeMalformed(t *testing.T) {
	s := NewTokenService(testConf())

	for _, token := range []string{"", "garbage", "a.b.c"} {
		decoded := s.Decode(token)
		if decoded.IsSuccess() {
			t.Fatalf("expected failure for token %q", token)
		}
		if decoded.Err().Kind != domain.KindInternal {
			t.Fatalf("expected internal error, got %+v", decoded.Err())
		}
	}
}

func TestTokenDecodeForged(t *testing.T) {
	issuer := NewTokenService(testConf())
	other := NewTokenService(config.JWT{Secret: "other-secret", ExpiryMinutes: 5})

	issued := issuer.Issue("john.doe@mail.com", domain.RoleUser)
	if !issued.IsSuccess() {
		t.Fatalf("issue failed: %+v", issued.Err())
	}

	if other.Decode(issued.Value()).IsSuccess() {
		t.Fatalf("expected decode to reject token signed with another secret")
	}

	// tamper with the payload
	parts := strings.Split(issued.Value(), ".")
	tampered := parts[0] + ".eyJlbWFpbCI6ImV2aWxAbWFpbC5jb20ifQ." + parts[2]
	if issuer.Decode(tampered).IsSuccess() {
		t.Fatalf("expected decode to reject tampered token")
	}
}

func TestTokenDecodeExpired(t *testing.T) {
	conf := testConf()
	conf.ExpiryMinutes = -5
	s := NewTokenService(conf)

	issued := s.Issue("john.doe@mail.com", domain.RoleUser)
	if !issued.IsSuccess() {
		t.Fatalf("issue failed: %+v", issued.Err())
	}

	if s.Decode(issued.Value()).IsSuccess() {
		t.Fatalf("expected expired token to fail decoding")
	}
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	h := NewBcryptHasher()

	encrypted, err := h.Encrypt("MyPassword123.")
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if !h.Verify("MyPassword123.", encrypted) {
		t.Fatalf("expected password to verify")
	}
	if h.Verify("WrongPassword", encrypted) {
		t.Fatalf("expected wrong password to fail verification")
	}
}
