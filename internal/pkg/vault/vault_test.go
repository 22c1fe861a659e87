//go:build unit

package vault_test

import (
	"encoding/base64"
	"testing"

	"paylink-vending/internal/pkg/errs"
	"paylink-vending/internal/pkg/vault"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVault_RoundTrip(t *testing.T) {
	cases := []struct {
		name       string
		plaintext  []byte
		passphrase string
	}{
		{name: "通常のトークン", plaintext: []byte("access-token-abc"), passphrase: "secret"},
		{name: "空のプレーンテキスト", plaintext: []byte{}, passphrase: "secret"},
		{name: "マルチバイト", plaintext: []byte("トークン✓"), passphrase: "パスフレーズ"},
		{name: "長いペイロード", plaintext: make([]byte, 4096), passphrase: "k"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sealed, err := vault.Encrypt(tc.plaintext, tc.passphrase)
			require.NoError(t, err)

			got, err := vault.Decrypt(sealed, tc.passphrase)
			require.NoError(t, err)
			assert.Equal(t, len(tc.plaintext), len(got))
			assert.Equal(t, string(tc.plaintext), string(got))
		})
	}
}

func TestVault_SealIsNonDeterministic(t *testing.T) {
	v := vault.New("secret")

	a, err := v.Seal([]byte("same"))
	require.NoError(t, err)
	b, err := v.Seal([]byte("same"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestVault_OpenFailures(t *testing.T) {
	v := vault.New("secret")
	sealed, err := v.Seal([]byte("refresh-token"))
	require.NoError(t, err)
	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)

	flip := func(i int) string {
		b := append([]byte(nil), raw...)
		b[i] ^= 0x01
		return base64.StdEncoding.EncodeToString(b)
	}

	cases := []struct {
		name   string
		vault  *vault.Vault
		sealed string
		errIs  error
	}{
		{name: "誤ったパスフレーズ", vault: vault.New("wrong"), sealed: sealed, errIs: errs.ErrCrypto},
		{name: "base64 でない", vault: v, sealed: "%%%not-base64%%%", errIs: errs.ErrCrypto},
		{name: "短すぎる", vault: v, sealed: base64.StdEncoding.EncodeToString(raw[:10]), errIs: errs.ErrCrypto},
		{name: "バージョン改ざん", vault: v, sealed: flip(0), errIs: errs.ErrCrypto},
		{name: "ソルト改ざん", vault: v, sealed: flip(1), errIs: errs.ErrCrypto},
		{name: "ノンス改ざん", vault: v, sealed: flip(1 + vault.SaltSize), errIs: errs.ErrCrypto},
		{name: "暗号文改ざん", vault: v, sealed: flip(len(raw) - 1), errIs: errs.ErrCrypto},
		{name: "パスフレーズ未設定", vault: vault.New(""), sealed: sealed, errIs: errs.ErrConfigMissing},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.vault.Open(tc.sealed)
			require.Error(t, err)
			assert.Nil(t, got)
			assert.True(t, errs.Is(err, tc.errIs), "want %v, got %v", tc.errIs, err)
		})
	}
}

func TestVault_SealWithoutPassphrase(t *testing.T) {
	_, err := vault.New("").Seal([]byte("x"))

	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrConfigMissing))
	assert.False(t, errs.Is(err, errs.ErrCrypto))
}
