package credential

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/scrypt"

	"iusearch/constant"
	"iusearch/utils/errors"
)

const saltSize = 16

// FileStore keeps credentials encrypted at rest in a single file. The file
// holds a random scrypt salt followed by an AES-256-GCM sealed JSON object
// (nonce prepended to the ciphertext). A missing file reads as an empty store.
type FileStore struct {
	mu         sync.Mutex
	path       string
	passphrase []byte
}

func NewFileStore(path, passphrase string) *FileStore {
	return &FileStore{path: path, passphrase: []byte(passphrase)}
}

func (s *FileStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	delete(values, key)
	return s.save(values)
}

func (s *FileStore) load() (map[string]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, errors.WrapCustomError(constant.ErrStorage, err)
	}
	if len(data) < saltSize {
		return nil, errors.SetCustomError(constant.ErrStorage)
	}

	key, err := s.deriveKey(data[:saltSize])
	if err != nil {
		return nil, errors.WrapCustomError(constant.ErrStorage, err)
	}
	plaintext, err := openGCM(key, data[saltSize:])
	if err != nil {
		return nil, errors.WrapCustomError(constant.ErrStorage, err)
	}

	values := map[string]string{}
	if err := json.Unmarshal(plaintext, &values); err != nil {
		return nil, errors.WrapCustomError(constant.ErrStorage, err)
	}
	return values, nil
}

// save writes salt+ciphertext to a temp file and renames it into place so a
// crash mid-write never leaves a torn store behind.
func (s *FileStore) save(values map[string]string) error {
	plaintext, err := json.Marshal(values)
	if err != nil {
		return errors.WrapCustomError(constant.ErrStorage, err)
	}

	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return errors.WrapCustomError(constant.ErrStorage, err)
	}
	key, err := s.deriveKey(salt)
	if err != nil {
		return errors.WrapCustomError(constant.ErrStorage, err)
	}
	sealed, err := sealGCM(key, plaintext)
	if err != nil {
		return errors.WrapCustomError(constant.ErrStorage, err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return errors.WrapCustomError(constant.ErrStorage, err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, append(salt, sealed...), 0o600); err != nil {
		return errors.WrapCustomError(constant.ErrStorage, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.WrapCustomError(constant.ErrStorage, err)
	}
	return nil
}

func (s *FileStore) deriveKey(salt []byte) ([]byte, error) {
	return scrypt.Key(s.passphrase, salt, 1<<15, 8, 1, 32)
}

func sealGCM(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func openGCM(key, sealed []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(sealed) < gcm.NonceSize() {
		return nil, errors.SetCustomError(constant.ErrStorage)
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
