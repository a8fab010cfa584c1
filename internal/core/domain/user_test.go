package domain_test

import (
	"testing"

	"github.com/srgjo27/launch_booking/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeUserID(t *testing.T) {
	assert.Equal(t, "USER1001", domain.NormalizeUserID("  user1001\t"))
	assert.True(t, domain.SameUser("user1001 ", "USER1001"))
	assert.False(t, domain.SameUser("", " "))
}

func TestCredential(t *testing.T) {
	cred, err := domain.NewCredential("Secret123")
	require.NoError(t, err)

	assert.False(t, cred.IsLegacy())
	assert.NotEqual(t, "Secret123", cred.Stored())
	assert.True(t, cred.Matches("Secret123"))
	assert.False(t, cred.Matches("secret123"))

	restored := domain.CredentialFromStored(cred.Stored())
	assert.False(t, restored.IsLegacy())
	assert.True(t, restored.Matches("Secret123"))
}

func TestCredential_Legacy(t *testing.T) {
	cred := domain.CredentialFromStored("Plain123")

	assert.True(t, cred.IsLegacy())
	assert.True(t, cred.Matches("Plain123"))
	assert.False(t, cred.Matches("plain123"))
	assert.False(t, domain.CredentialFromStored("").Matches(""))
}
