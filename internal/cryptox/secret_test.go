package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap parameters keep the suite fast
var testParams = Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 16, SaltLen: 8}

func TestHashSecret_VerifyRoundTrip(t *testing.T) {
	h, err := HashSecret([]byte("mindbloom123"), testParams)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(h, "argon2id$v=19$m=1024,t=1,p=1$"))

	ok, err := VerifySecret([]byte("mindbloom123"), h)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifySecret([]byte("mindbloom124"), h)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashSecret_SaltsDiffer(t *testing.T) {
	a, err := HashSecret([]byte("same"), testParams)
	require.NoError(t, err)
	b, err := HashSecret([]byte("same"), testParams)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifySecret_Malformed(t *testing.T) {
	for _, h := range []string{
		"",
		"bcrypt$x$y$z$w",
		"argon2id$v=18$m=1024,t=1,p=1$AAAA$AAAA",
		"argon2id$v=19$m=x,t=1,p=1$AAAA$AAAA",
		"argon2id$v=19$m=1024,t=1,p=1$***$AAAA",
	} {
		_, err := VerifySecret([]byte("x"), h)
		assert.ErrorIs(t, err, ErrMalformedHash, h)
	}
}
