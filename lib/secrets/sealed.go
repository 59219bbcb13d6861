// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package secrets

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"filippo.io/age"
)

// Credentials is the plaintext layout of a sealed credentials file.
// Produced by honchoctl seal, consumed by SealedFile.
type Credentials struct {
	// APIKey is the Honcho API key.
	APIKey string `json:"api_key"`
}

// Identity is an age x25519 keypair guarding a sealed credentials
// file. The private key lives in a protected Buffer; the public key is
// a plain age1... string, safe to print or store anywhere.
//
// Call Close when the keypair is no longer needed.
type Identity struct {
	// Private is the AGE-SECRET-KEY-1... identity. Never logged,
	// never placed in CLI arguments.
	Private *Buffer

	// Public is the matching age1... recipient.
	Public string
}

// Close releases the private key memory. Idempotent.
func (i *Identity) Close() error {
	if i.Private != nil {
		return i.Private.Close()
	}
	return nil
}

// GenerateIdentity creates a new age x25519 keypair for sealing a
// credentials file. The private key string age hands back is moved
// into a protected buffer immediately; the transient heap copy age
// itself allocated is unavoidable and short-lived.
func GenerateIdentity() (*Identity, error) {
	identity, err := age.GenerateX25519Identity()
	if err != nil {
		return nil, fmt.Errorf("secrets: generating age identity: %w", err)
	}

	private, err := NewBufferFromString(identity.String())
	if err != nil {
		return nil, fmt.Errorf("secrets: protecting private key: %w", err)
	}

	return &Identity{
		Private: private,
		Public:  identity.Recipient().String(),
	}, nil
}

// Seal encrypts a credentials bundle to one or more age recipients and
// returns the ciphertext as a single base64 line, the on-disk format
// of a sealed credentials file.
func Seal(credentials Credentials, recipientKeys ...string) (string, error) {
	if len(recipientKeys) == 0 {
		return "", fmt.Errorf("secrets: at least one recipient is required")
	}

	recipients := make([]age.Recipient, 0, len(recipientKeys))
	for _, key := range recipientKeys {
		recipient, err := age.ParseX25519Recipient(key)
		if err != nil {
			return "", fmt.Errorf("secrets: parsing recipient key %q: %w", key, err)
		}
		recipients = append(recipients, recipient)
	}

	plaintext, err := json.Marshal(credentials)
	if err != nil {
		return "", fmt.Errorf("secrets: encoding credentials: %w", err)
	}

	var ciphertext bytes.Buffer
	writer, err := age.Encrypt(&ciphertext, recipients...)
	if err != nil {
		return "", fmt.Errorf("secrets: creating age encryptor: %w", err)
	}
	if _, err := writer.Write(plaintext); err != nil {
		return "", fmt.Errorf("secrets: writing plaintext: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("secrets: finalizing encryption: %w", err)
	}
	for index := range plaintext {
		plaintext[index] = 0
	}

	return base64.StdEncoding.EncodeToString(ciphertext.Bytes()), nil
}

// Unseal decrypts a base64 ciphertext line with the given private key
// and returns the credentials. The private key is borrowed, not
// closed. The decrypted JSON passes through the heap briefly during
// unmarshaling; the durable copy of the key material is the caller's
// responsibility (SealedFile moves it straight into a Buffer).
func Unseal(ciphertext string, private *Buffer) (Credentials, error) {
	identity, err := age.ParseX25519Identity(private.String())
	if err != nil {
		return Credentials{}, fmt.Errorf("secrets: parsing private key: %w", err)
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(ciphertext))
	if err != nil {
		return Credentials{}, fmt.Errorf("secrets: decoding ciphertext: %w", err)
	}

	reader, err := age.Decrypt(bytes.NewReader(raw), identity)
	if err != nil {
		return Credentials{}, fmt.Errorf("secrets: decrypting: %w", err)
	}
	plaintext, err := io.ReadAll(reader)
	if err != nil {
		return Credentials{}, fmt.Errorf("secrets: reading plaintext: %w", err)
	}

	var credentials Credentials
	err = json.Unmarshal(plaintext, &credentials)
	for index := range plaintext {
		plaintext[index] = 0
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("secrets: parsing credentials: %w", err)
	}
	return credentials, nil
}

// SealedFile reads an age-encrypted credentials file on every call.
// Both paths are re-read per request, so replacing the sealed file
// rotates the credential without restarting the host.
type SealedFile struct {
	// Path is the sealed credentials file (base64 ciphertext).
	Path string

	// IdentityPath is the age identity file (AGE-SECRET-KEY-1...,
	// mode 0600) that can open Path.
	IdentityPath string
}

var _ Source = (*SealedFile)(nil)

func (s *SealedFile) APIKey() (*Buffer, bool) {
	identityLine, err := readIdentityFile(s.IdentityPath)
	if err != nil {
		return nil, false
	}
	private, err := NewBuffer(identityLine)
	if err != nil {
		return nil, false
	}
	defer private.Close()

	ciphertext, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, false
	}

	credentials, err := Unseal(string(ciphertext), private)
	if err != nil {
		return nil, false
	}

	key := strings.TrimSpace(credentials.APIKey)
	if key == "" {
		return nil, false
	}
	buffer, err := NewBufferFromString(key)
	if err != nil {
		return nil, false
	}
	return buffer, true
}

// ParseIdentity reconstructs a keypair from identity-file contents:
// comment lines are skipped, the first AGE-SECRET-KEY line becomes
// the private key, and the public half is re-derived from it. The raw
// input is zeroed before returning.
func ParseIdentity(raw []byte) (*Identity, error) {
	defer func() {
		for i := range raw {
			raw[i] = 0
		}
	}()

	for _, line := range bytes.Split(raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		parsed, err := age.ParseX25519Identity(string(line))
		if err != nil {
			return nil, fmt.Errorf("secrets: parsing identity: %w", err)
		}
		private, err := NewBufferFromString(parsed.String())
		if err != nil {
			return nil, err
		}
		return &Identity{
			Private: private,
			Public:  parsed.Recipient().String(),
		}, nil
	}
	return nil, fmt.Errorf("secrets: no identity in input")
}

// readIdentityFile returns the first non-empty, non-comment line of an
// age identity file. age-keygen output carries "# created:" and
// "# public key:" comment lines ahead of the identity.
func readIdentityFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	for _, line := range bytes.Split(raw, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		return line, nil
	}
	return nil, fmt.Errorf("secrets: no identity found in %s", path)
}

// WriteSealedFile seals credentials to the identity's public key and
// writes both halves to disk: the ciphertext at path and the identity
// at identityPath, each mode 0600.
func WriteSealedFile(path, identityPath string, credentials Credentials, identity *Identity) error {
	ciphertext, err := Seal(credentials, identity.Public)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(ciphertext+"\n"), 0o600); err != nil {
		return fmt.Errorf("secrets: writing sealed file: %w", err)
	}
	identityLine := identity.Private.String() + "\n"
	if err := os.WriteFile(identityPath, []byte(identityLine), 0o600); err != nil {
		return fmt.Errorf("secrets: writing identity file: %w", err)
	}
	return nil
}
