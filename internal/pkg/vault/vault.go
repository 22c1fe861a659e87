// Package vault seals provider session tokens at rest.
//
// Sealed blobs are base64 (std encoding) of:
//
//	[Version: 1 byte] [Salt: 16 bytes] [Nonce: 24 bytes] [Ciphertext+Tag: N+16 bytes]
//
// The passphrase is stretched once per Vault with Argon2id; each blob then gets its
// own XChaCha20-Poly1305 key via HKDF-SHA256 over the random salt. Version and salt
// are authenticated as additional data.
package vault

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"io"
	"sync"

	"paylink-vending/internal/pkg/errs"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

const (
	BlobVersion byte = 0x01
	SaltSize         = 16
	KeySize          = chacha20poly1305.KeySize

	headerSize = 1 + SaltSize + chacha20poly1305.NonceSizeX
)

var (
	rootSalt    = []byte("paylink-vending.vault.root.v1")
	hkdfInfoKey = []byte("paylink-vending.vault.session.v1")
)

// Argon2id cost. Derived once per Vault, not per blob.
const (
	argonTime    = 1
	argonMemory  = 19 * 1024
	argonThreads = 1
)

type Vault struct {
	passphrase string

	once    sync.Once
	rootKey []byte
}

// New never fails; an empty passphrase surfaces as ErrConfigMissing on first use.
func New(passphrase string) *Vault {
	return &Vault{passphrase: passphrase}
}

func (v *Vault) root() ([]byte, error) {
	if v.passphrase == "" {
		return nil, errs.Mark(errs.New("vault passphrase is not configured"), errs.ErrConfigMissing)
	}
	v.once.Do(func() {
		v.rootKey = argon2.IDKey([]byte(v.passphrase), rootSalt, argonTime, argonMemory, argonThreads, KeySize)
	})
	return v.rootKey, nil
}

func (v *Vault) blobKey(salt []byte) ([]byte, error) {
	root, err := v.root()
	if err != nil {
		return nil, err
	}
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, root, salt, hkdfInfoKey), key); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "deriving blob key"), errs.ErrCrypto)
	}
	return key, nil
}

// Seal encrypts plaintext under a fresh salt and nonce. Two calls with the same
// input never produce the same output.
func (v *Vault) Seal(plaintext []byte) (string, error) {
	var header [headerSize]byte
	header[0] = BlobVersion
	if _, err := io.ReadFull(rand.Reader, header[1:]); err != nil {
		return "", errs.Mark(errs.Wrap(err, "generating salt and nonce"), errs.ErrCrypto)
	}
	salt := header[1 : 1+SaltSize]
	nonce := header[1+SaltSize:]

	key, err := v.blobKey(salt)
	if err != nil {
		return "", err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "creating XChaCha20-Poly1305 cipher"), errs.ErrCrypto)
	}

	out := make([]byte, headerSize, headerSize+len(plaintext)+aead.Overhead())
	copy(out, header[:])
	out = aead.Seal(out, nonce, plaintext, header[:1+SaltSize])
	return base64.StdEncoding.EncodeToString(out), nil
}

// Open reverses Seal. Malformed input, a wrong passphrase and tampering all fail
// with ErrCrypto; a missing passphrase fails with ErrConfigMissing.
func (v *Vault) Open(sealed string) ([]byte, error) {
	if _, err := v.root(); err != nil {
		return nil, err
	}
	raw, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decoding sealed blob"), errs.ErrCrypto)
	}
	if len(raw) < headerSize+chacha20poly1305.Overhead {
		return nil, errs.Mark(errs.New("sealed blob too short"), errs.ErrCrypto)
	}
	if raw[0] != BlobVersion {
		return nil, errs.Mark(errs.Newf("unsupported blob version %d", raw[0]), errs.ErrCrypto)
	}
	salt := raw[1 : 1+SaltSize]
	nonce := raw[1+SaltSize : headerSize]

	key, err := v.blobKey(salt)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "creating XChaCha20-Poly1305 cipher"), errs.ErrCrypto)
	}
	plaintext, err := aead.Open(nil, nonce, raw[headerSize:], raw[:1+SaltSize])
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "authenticating sealed blob"), errs.ErrCrypto)
	}
	return plaintext, nil
}

func Encrypt(plaintext []byte, passphrase string) (string, error) {
	return New(passphrase).Seal(plaintext)
}

func Decrypt(sealed, passphrase string) ([]byte, error) {
	return New(passphrase).Open(sealed)
}
