package authutils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateTempPassword(t *testing.T) {
	t.Run(`generated password is strong`, func(t *testing.T) {
		for k := 0; k < 50; k++ {
			secret, err := GenerateTempPassword(GeneratedSecretLen)
			require.NoError(t, err)
			require.Len(t, secret, GeneratedSecretLen)
			require.Empty(t, CheckSecretStrength(secret), secret)
		}
	})
	t.Run(`too short length`, func(t *testing.T) {
		_, err := GenerateTempPassword(3)
		require.Error(t, err)
	})
}

func TestCheckSecretStrength(t *testing.T) {
	require.Empty(t, CheckSecretStrength("Str0ng!Passw"))
	require.Len(t, CheckSecretStrength("short"), 4)
	require.Equal(t, []string{"пароль должен содержать спецсимволы"}, CheckSecretStrength("NoSymbols1234"))
	require.Equal(t, []string{"пароль короче 12 символов"}, CheckSecretStrength("Ab1!Ab1!"))
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("Str0ng!Passw")
	require.NoError(t, err)
	require.NotEqual(t, "Str0ng!Passw", hash)
	require.True(t, CheckPassword(hash, "Str0ng!Passw"))
	require.False(t, CheckPassword(hash, "other"))
}
