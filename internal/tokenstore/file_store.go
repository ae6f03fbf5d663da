package tokenstore

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const (
	saltSize = 16

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// fallbackSecret keeps development setups working without configuration. Real
// deployments set VETDESK_STORE_SECRET.
const fallbackSecret = "vetdesk-local-store"

// FileStore keeps the bearer token encrypted at rest in a single file,
// standing in for the platform's secure key-value storage. Layout:
// salt || nonce || AEAD ciphertext.
type FileStore struct {
	path   string
	secret string
}

// NewFileStore builds a store rooted at path.
func NewFileStore(path, secret string) *FileStore {
	if secret == "" {
		secret = fallbackSecret
	}
	return &FileStore{path: path, secret: secret}
}

// Save encrypts and persists the token, creating parent directories.
func (s *FileStore) Save(token string) error {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return fmt.Errorf("generate salt: %w", err)
	}

	aead, err := s.cipher(salt)
	if err != nil {
		return err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return fmt.Errorf("generate nonce: %w", err)
	}

	sealed := aead.Seal(nil, nonce, []byte(token), nil)

	blob := make([]byte, 0, len(salt)+len(nonce)+len(sealed))
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, sealed...)

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}
	if err := os.WriteFile(s.path, blob, 0o600); err != nil {
		return fmt.Errorf("write token store: %w", err)
	}
	return nil
}

// Load reads and decrypts the token. A missing file maps to ErrNotFound; a
// corrupt or tampered file is an error, not an empty session.
func (s *FileStore) Load() (string, error) {
	blob, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("read token store: %w", err)
	}

	if len(blob) < saltSize+chacha20poly1305.NonceSizeX {
		return "", errors.New("tokenstore: truncated store file")
	}

	salt := blob[:saltSize]
	nonce := blob[saltSize : saltSize+chacha20poly1305.NonceSizeX]
	sealed := blob[saltSize+chacha20poly1305.NonceSizeX:]

	aead, err := s.cipher(salt)
	if err != nil {
		return "", err
	}

	token, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("decrypt token store: %w", err)
	}
	return string(token), nil
}

// Clear removes the persisted token. Clearing an absent token is a no-op.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clear token store: %w", err)
	}
	return nil
}

func (s *FileStore) cipher(salt []byte) (cipher.AEAD, error) {
	key, err := scrypt.Key([]byte(s.secret), salt, scryptN, scryptR, scryptP, chacha20poly1305.KeySize)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	return aead, nil
}
