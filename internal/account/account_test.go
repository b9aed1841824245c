package account

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/flappy/internal/score"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{in: "ana", want: "ana"},
		{in: "  bob  ", want: "bob"},
		{in: "exactly15chars!", want: "exactly15chars!"},
		{in: "ééééééééééééééé", want: "ééééééééééééééé"},
		{in: "", wantErr: ErrEmptyName},
		{in: "   ", wantErr: ErrEmptyName},
		{in: "sixteen chars!!!", wantErr: ErrNameTooLong},
		{in: "a<b", wantErr: ErrInvalidChars},
		{in: "a/b", wantErr: ErrInvalidChars},
		{in: `a\b`, wantErr: ErrInvalidChars},
		{in: "what?", wantErr: ErrInvalidChars},
		{in: "star*", wantErr: ErrInvalidChars},
		{in: `"quoted"`, wantErr: ErrInvalidChars},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Validate(tt.in)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate(%q) err = %v, want %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Validate(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoginRejectionKeepsIdentity(t *testing.T) {
	g := NewGate(score.NewMemoryStore(), log.New(io.Discard))

	if err := g.Login("ana"); err != nil {
		t.Fatal(err)
	}
	if err := g.Login("bad|name"); !errors.Is(err, ErrInvalidChars) {
		t.Fatalf("Login err = %v, want ErrInvalidChars", err)
	}
	if g.Current() != "ana" {
		t.Errorf("Current() = %q, want %q", g.Current(), "ana")
	}
}

func TestLastUsedSurvivesLogout(t *testing.T) {
	store := score.NewMemoryStore()
	g := NewGate(store, log.New(io.Discard))

	if g.LastUsed() != "" {
		t.Errorf("LastUsed() on empty store = %q", g.LastUsed())
	}
	if err := g.Login("  ana "); err != nil {
		t.Fatal(err)
	}
	g.Logout()

	if g.Current() != "" {
		t.Errorf("Current() after Logout = %q", g.Current())
	}
	// A fresh gate over the same store sees the remembered name.
	if got := NewGate(store, nil).LastUsed(); got != "ana" {
		t.Errorf("LastUsed() = %q, want %q", got, "ana")
	}
}

func TestGateWithoutStore(t *testing.T) {
	g := NewGate(nil, log.New(io.Discard))
	if err := g.Login("ana"); err != nil {
		t.Fatal(err)
	}
	if g.LastUsed() != "" {
		t.Errorf("LastUsed() = %q, want empty", g.LastUsed())
	}
}
