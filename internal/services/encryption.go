package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/AnshRaj112/keepsake-backend/internal/storage"
	"github.com/AnshRaj112/keepsake-backend/pkg/utils"
)

// NewLegacyCipher returns the cipher for legacy message text, or nil when
// neither a key nor a passphrase is configured.
//
// With a passphrase the key is derived with argon2id; the random salt is kept
// in the key-value store next to the data, so the passphrase alone is secret.
func NewLegacyCipher(ctx context.Context, kv storage.KeyValueStore, keyBase64, passphrase string) (TextCipher, error) {
	switch {
	case keyBase64 != "":
		key, err := utils.ParseEncryptionKey(keyBase64)
		if err != nil {
			return nil, err
		}
		return newCipher(key)
	case passphrase != "":
		salt, err := loadOrCreateSalt(ctx, kv)
		if err != nil {
			return nil, err
		}
		return newCipher(utils.DeriveKey(passphrase, salt))
	default:
		return nil, nil
	}
}

// newCipher keeps a nil *utils.Cipher from turning into a non-nil TextCipher.
func newCipher(key []byte) (TextCipher, error) {
	c, err := utils.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func loadOrCreateSalt(ctx context.Context, kv storage.KeyValueStore) ([]byte, error) {
	var encoded string
	found, err := kv.Get(ctx, keyCipherSalt, &encoded)
	if err != nil {
		return nil, unavailable("read", keyCipherSalt, err)
	}
	if found {
		salt, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return nil, fmt.Errorf("stored encryption salt is corrupt: %w", err)
		}
		return salt, nil
	}

	salt, err := utils.NewSalt()
	if err != nil {
		return nil, err
	}
	if err := kv.Set(ctx, keyCipherSalt, base64.StdEncoding.EncodeToString(salt)); err != nil {
		return nil, unavailable("write", keyCipherSalt, err)
	}
	log.Println("✅ Generated new encryption salt")
	return salt, nil
}
