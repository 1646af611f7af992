package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	tests := []struct {
		kind Kind
		id   string
		want string
	}{
		{KindProject, "7f9c", "project-7f9c"},
		{KindProduct, "a1b2", "product-a1b2"},
		{KindStage, "s123", "s123"},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			token := EncodeToken(tt.kind, tt.id)
			assert.Equal(t, tt.want, token)

			kind, id, err := DecodeToken(token)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.id, id)
		})
	}
}

func TestDecodeTokenUUIDIDs(t *testing.T) {
	// Entity ids contain the separator themselves; only the leading kind
	// tag is stripped.
	kind, id, err := DecodeToken("product-123e4567-e89b-12d3-a456-426614174000")
	require.NoError(t, err)
	assert.Equal(t, KindProduct, kind)
	assert.Equal(t, "123e4567-e89b-12d3-a456-426614174000", id)
}

func TestDecodeTokenMalformed(t *testing.T) {
	_, _, err := DecodeToken("")
	assert.Error(t, err)

	_, _, err = DecodeToken("project-")
	assert.Error(t, err)
}

func TestDecodeTokenUnprefixedIsStage(t *testing.T) {
	kind, id, err := DecodeToken("plain-stage-id")
	require.NoError(t, err)
	assert.Equal(t, KindStage, kind)
	assert.Equal(t, "plain-stage-id", id)
}
