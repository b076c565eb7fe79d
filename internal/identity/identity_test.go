package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"bearer   abc  ", "abc"},
		{"BEARER abc", "abc"},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := BearerToken(tt.header); got != tt.want {
			t.Errorf("BearerToken(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestTokenResolver(t *testing.T) {
	r := NewTokenResolver(map[string]string{"t1": "alice"})

	t.Run("no token is anonymous", func(t *testing.T) {
		user, err := r.Resolve(context.Background())
		if err != nil || user != Anonymous {
			t.Errorf("Resolve() = (%q, %v), want anonymous", user, err)
		}
	})

	t.Run("known token", func(t *testing.T) {
		user, err := r.Resolve(WithToken(context.Background(), "t1"))
		if err != nil || user != "alice" {
			t.Errorf("Resolve() = (%q, %v), want alice", user, err)
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		user, err := r.Resolve(WithToken(context.Background(), "nope"))
		if !errors.Is(err, ErrUnknownToken) {
			t.Errorf("error = %v, want ErrUnknownToken", err)
		}
		if user != Anonymous {
			t.Errorf("user = %q, want anonymous", user)
		}
	})
}

func TestNewTokenResolver_CopiesInput(t *testing.T) {
	in := map[string]string{"t1": "alice"}
	r := NewTokenResolver(in)
	delete(in, "t1")

	if user, _ := r.Resolve(WithToken(context.Background(), "t1")); user != "alice" {
		t.Errorf("Resolve() = %q after caller mutated input, want alice", user)
	}
}

func TestParseTokens(t *testing.T) {
	got, err := ParseTokens(" t1:alice , ,t2: bob")
	if err != nil {
		t.Fatalf("ParseTokens() error: %v", err)
	}
	want := map[string]string{"t1": "alice", "t2": "bob"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ParseTokens() mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"t1", "t1:", ":alice"} {
		if _, err := ParseTokens(bad); err == nil {
			t.Errorf("ParseTokens(%q) should fail", bad)
		}
	}

	empty, err := ParseTokens("")
	if err != nil || len(empty) != 0 {
		t.Errorf("ParseTokens(\"\") = (%v, %v), want empty map", empty, err)
	}
}
