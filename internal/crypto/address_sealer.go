package crypto

import (
	"errors"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for deriving the address key from the configured passphrase.
const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	keyLength    = 32
)

var ErrEmptyPassphrase = errors.New("address key passphrase is empty")

// AddressSealer encrypts client addresses before they are written to the store.
type AddressSealer struct {
	key []byte
}

// NewAddressSealer derives an AES-256 key from passphrase and salt with argon2id.
func NewAddressSealer(passphrase, salt string) (*AddressSealer, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	key := argon2.IDKey([]byte(passphrase), []byte(salt), argonTime, argonMemory, argonThreads, keyLength)
	return &AddressSealer{key: key}, nil
}

func (s *AddressSealer) Seal(address string) (string, error) {
	return Encrypt(address, s.key)
}
