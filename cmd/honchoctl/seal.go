// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/agentzero-community/honcho-bridge/lib/secrets"
)

func sealCommand() *Command {
	return &Command{
		Name:    "seal",
		Summary: "Encrypt the service API key into a sealed credentials file",
		Description: `seal writes the API key to disk in age-encrypted form so it never
sits in a dotfile or shell history. The key is read from --key-file
when given and prompted for otherwise; it is never accepted as a
command-line argument.

A fresh identity keypair is generated next to the sealed file unless
an identity already exists at the target path, in which case it is
reused and existing sealed files stay decryptable.`,
		Flags: func() *pflag.FlagSet {
			flags := commonFlags("seal")
			flags.String("key-file", "", "read the API key from this file instead of prompting")
			flags.String("output", "", "sealed file path (default: secrets.sealed_path from config)")
			flags.String("identity", "", "identity file path (default: <output>.identity)")
			return flags
		},
		Examples: []Example{
			{Description: "Prompt for the key and seal it to the configured path", Command: "honchoctl seal"},
			{Description: "Seal a key delivered by a provisioning system", Command: "honchoctl seal --key-file /run/secrets/honcho-key --output ~/.config/honcho/credentials.sealed"},
		},
		Run: runSeal,
	}
}

func runSeal(flags *pflag.FlagSet, args []string) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	outputPath, _ := flags.GetString("output")
	if outputPath == "" {
		outputPath = cfg.Secrets.SealedPath
	}
	if outputPath == "" {
		return fmt.Errorf("no sealed file path: pass --output or set secrets.sealed_path in the config")
	}

	identityPath, _ := flags.GetString("identity")
	if identityPath == "" {
		identityPath = cfg.Secrets.IdentityPath
	}
	if identityPath == "" {
		identityPath = outputPath + ".identity"
	}

	key, err := readAPIKey(flags)
	if err != nil {
		return err
	}
	defer key.Close()

	identity, fresh, err := loadOrGenerateIdentity(identityPath)
	if err != nil {
		return err
	}
	defer identity.Close()

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	credentials := secrets.Credentials{APIKey: key.String()}
	if err := secrets.WriteSealedFile(outputPath, identityPath, credentials, identity); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "sealed credentials written to %s\n", outputPath)
	if fresh {
		fmt.Fprintf(os.Stderr, "identity written to %s (public key %s)\n", identityPath, identity.Public)
	} else {
		fmt.Fprintf(os.Stderr, "reusing identity at %s\n", identityPath)
	}
	return nil
}

func readAPIKey(flags *pflag.FlagSet) (*secrets.Buffer, error) {
	if keyFile, _ := flags.GetString("key-file"); keyFile != "" {
		return readSecretFile(keyFile)
	}
	return promptSecret("Honcho API key: ")
}

// loadOrGenerateIdentity reuses the keypair at path when one exists
// so previously sealed files stay decryptable; otherwise it generates
// a new one. Reports whether the identity is freshly generated.
func loadOrGenerateIdentity(path string) (*secrets.Identity, bool, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		identity, err := secrets.GenerateIdentity()
		if err != nil {
			return nil, false, err
		}
		return identity, true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading identity %s: %w", path, err)
	}

	identity, err := secrets.ParseIdentity(raw)
	if err != nil {
		return nil, false, fmt.Errorf("identity %s: %w", path, err)
	}
	return identity, false, nil
}
