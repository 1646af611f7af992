// Package auth handles the bearer token the backend issues elsewhere. The
// client never verifies the token signature (it has no key material); it
// only stores the token, presents it on requests, and reads the user id
// claim to namespace local preferences.
package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoToken indicates no token file exists yet.
var ErrNoToken = errors.New("no token stored, log in first")

// FileTokenSource reads the bearer token from a file on every request, so
// an external re-login is picked up without restarting.
type FileTokenSource struct {
	Path string
}

// Token returns the stored token, or empty when none is stored.
func (f *FileTokenSource) Token() (string, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Save writes the token with owner-only permissions.
func (f *FileTokenSource) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return fmt.Errorf("creating token directory: %w", err)
	}
	if err := os.WriteFile(f.Path, []byte(strings.TrimSpace(token)+"\n"), 0o600); err != nil {
		return fmt.Errorf("writing token file: %w", err)
	}
	return nil
}

// Clear removes the stored token.
func (f *FileTokenSource) Clear() error {
	err := os.Remove(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// UserID extracts the user id claim from a bearer token without verifying
// the signature. The backend uses "sub"; older tokens carry "userId".
func UserID(token string) (string, error) {
	if token == "" {
		return "", ErrNoToken
	}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("parsing token: %w", err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("unexpected token claims type")
	}
	if sub, ok := claims["sub"].(string); ok && sub != "" {
		return sub, nil
	}
	if uid, ok := claims["userId"].(string); ok && uid != "" {
		return uid, nil
	}
	return "", fmt.Errorf("token carries no user id claim")
}
