// Package account implements the login gate: a validated display name that
// scores are recorded under.
package account

import (
	"errors"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/tomz197/flappy/internal/loop/config"
	"github.com/tomz197/flappy/internal/score"
)

// LastUserKey is the store key holding the most recently used name.
const LastUserKey = "lastUser"

// forbiddenChars may not appear in a name.
const forbiddenChars = `<>:"/\|?*`

var (
	ErrEmptyName    = errors.New("please enter a username")
	ErrNameTooLong  = errors.New("username must be 15 characters or less")
	ErrInvalidChars = errors.New(`username cannot contain < > : " / \ | ? *`)
)

// Validate trims name and checks it. It returns the trimmed name.
func Validate(name string) (string, error) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", ErrEmptyName
	case utf8.RuneCountInString(name) > config.MaxUsernameLength:
		return "", ErrNameTooLong
	case strings.ContainsAny(name, forbiddenChars):
		return "", ErrInvalidChars
	}
	return name, nil
}

// Gate holds the current identity of one player.
type Gate struct {
	mu      sync.Mutex
	current string
	store   score.Store
	logger  *log.Logger
}

// NewGate creates a gate. store may be nil, in which case the last used
// name is not remembered.
func NewGate(store score.Store, logger *log.Logger) *Gate {
	if logger == nil {
		logger = log.Default()
	}
	return &Gate{store: store, logger: logger}
}

// Login validates name and makes it the current identity. On error the
// current identity is unchanged.
func (g *Gate) Login(name string) error {
	name, err := Validate(name)
	if err != nil {
		return err
	}

	g.mu.Lock()
	g.current = name
	g.mu.Unlock()

	if g.store != nil {
		if err := g.store.Save(LastUserKey, []byte(name)); err != nil {
			g.logger.Warn("failed to remember last user", "err", err)
		}
	}
	return nil
}

// Logout clears the current identity.
func (g *Gate) Logout() {
	g.mu.Lock()
	g.current = ""
	g.mu.Unlock()
}

// Current returns the logged in name, or "" when logged out.
func (g *Gate) Current() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// LastUsed returns the most recently logged in name, for pre-filling the
// login field.
func (g *Gate) LastUsed() string {
	if g.store == nil {
		return ""
	}
	data, err := g.store.Load(LastUserKey)
	if err != nil {
		if !errors.Is(err, score.ErrNotFound) {
			g.logger.Warn("failed to read last user", "err", err)
		}
		return ""
	}
	return string(data)
}
