package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_NotPlaintext(t *testing.T) {
	h, err := Hash("s3cretpass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", h)
}

func TestVerify_RoundTrip(t *testing.T) {
	h, err := Hash("s3cretpass")
	require.NoError(t, err)
	assert.True(t, Verify("s3cretpass", h))
	assert.False(t, Verify("wrongpass", h))
}

func TestVerify_MalformedHash(t *testing.T) {
	assert.False(t, Verify("anything", "not-a-bcrypt-hash"))
	assert.False(t, Verify("anything", ""))
}

func TestHash_SaltedPerCall(t *testing.T) {
	h1, err := Hash("s3cretpass")
	require.NoError(t, err)
	h2, err := Hash("s3cretpass")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)
}
