package auth

import (
	"context"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cinegraph/cinegraph/internal/domain"
)

func TestPasswordHashAndVerify(t *testing.T) {
	hash, err := HashPassword("correct horse", bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := VerifyPassword(hash, "correct horse"); err != nil {
		t.Fatalf("verify correct password: %v", err)
	}
	err = VerifyPassword(hash, "battery staple")
	if domain.ErrorKindOf(err) != domain.KindAuth {
		t.Fatalf("wrong password error = %v, want Auth", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	token, err := m.Issue(42, domain.UserTypeCritic)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	id, err := m.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.UserID != 42 || id.UserType != domain.UserTypeCritic {
		t.Fatalf("identity = %+v, want user 42 Critic", id)
	}
}

func TestTokenRejections(t *testing.T) {
	m := NewTokenManager("test-secret", time.Hour)

	if _, err := m.Verify("not.a.token"); domain.ErrorKindOf(err) != domain.KindAuth {
		t.Fatalf("garbage token error = %v, want Auth", err)
	}

	other := NewTokenManager("different-secret", time.Hour)
	token, err := other.Issue(7, domain.UserTypeRegular)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := m.Verify(token); domain.ErrorKindOf(err) != domain.KindAuth {
		t.Fatalf("wrong-secret token error = %v, want Auth", err)
	}

	expired := NewTokenManager("test-secret", -time.Minute)
	token, err = expired.Issue(7, domain.UserTypeRegular)
	if err != nil {
		t.Fatalf("issue expired: %v", err)
	}
	if _, err := m.Verify(token); domain.ErrorKindOf(err) != domain.KindAuth {
		t.Fatalf("expired token error = %v, want Auth", err)
	}
}

func TestIdentityContext(t *testing.T) {
	ctx := WithIdentity(context.Background(), Identity{UserID: 9, UserType: domain.UserTypeRegular})
	id, ok := IdentityFrom(ctx)
	if !ok || id.UserID != 9 {
		t.Fatalf("IdentityFrom = %+v, %v", id, ok)
	}
	if _, ok := IdentityFrom(context.Background()); ok {
		t.Fatalf("identity found on empty context")
	}
}
