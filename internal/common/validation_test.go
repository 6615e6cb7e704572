package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantErr  bool
	}{
		{"valid simple", "alice", false},
		{"valid with digits and underscore", "bob_42", false},
		{"minimum length", "abc", false},
		{"maximum length", strings.Repeat("a", 50), false},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 51), true},
		{"uppercase rejected", "Alice", true},
		{"spaces rejected", "a b", true},
		{"punctuation rejected", "al!ce", true},
		{"empty", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUsername(tc.username)
			if tc.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	require.Error(t, ValidatePassword("abc"))
	require.Error(t, ValidatePassword(strings.Repeat("x", 101)))
	require.NoError(t, ValidatePassword("secret1"))
}

func TestValidateDisplayName(t *testing.T) {
	require.NoError(t, ValidateDisplayName(""))
	require.NoError(t, ValidateDisplayName("Alice Smith"))
	require.Error(t, ValidateDisplayName(strings.Repeat("n", 101)))
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse", hash)

	require.NoError(t, CheckPassword("correct horse", hash))
	require.Error(t, CheckPassword("wrong horse", hash))
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("u1", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidToken(token)
	require.NoError(t, err)
	require.Equal(t, "u1", claims.UserID)
	require.Equal(t, "alice", claims.Username)
	require.Equal(t, "linkup", claims.Issuer)
}

func TestValidTokenRejectsGarbage(t *testing.T) {
	_, err := ValidToken("not.a.token")
	require.Error(t, err)
}
