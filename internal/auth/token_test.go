package auth

import (
	"path/filepath"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func TestUserIDFromSubClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"sub": "u-42"})
	id, err := UserID(token)
	require.NoError(t, err)
	assert.Equal(t, "u-42", id)
}

func TestUserIDFallsBackToUserIdClaim(t *testing.T) {
	token := signedToken(t, jwt.MapClaims{"userId": "u-legacy"})
	id, err := UserID(token)
	require.NoError(t, err)
	assert.Equal(t, "u-legacy", id)
}

func TestUserIDErrors(t *testing.T) {
	_, err := UserID("")
	assert.ErrorIs(t, err, ErrNoToken)

	_, err = UserID("not-a-jwt")
	assert.Error(t, err)

	_, err = UserID(signedToken(t, jwt.MapClaims{"other": "x"}))
	assert.Error(t, err)
}

func TestFileTokenSourceRoundTrip(t *testing.T) {
	src := &FileTokenSource{Path: filepath.Join(t.TempDir(), "nested", "token")}

	// Missing file reads as "not logged in", not an error.
	tok, err := src.Token()
	require.NoError(t, err)
	assert.Empty(t, tok)

	require.NoError(t, src.Save("  abc.def.ghi\n"))
	tok, err = src.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", tok)

	require.NoError(t, src.Clear())
	require.NoError(t, src.Clear())
	tok, err = src.Token()
	require.NoError(t, err)
	assert.Empty(t, tok)
}
