// Copyright 2026 The Honcho Bridge Authors
// SPDX-License-Identifier: Apache-2.0

package secrets

import "testing"

func TestEnvSource(t *testing.T) {
	t.Run("set", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "hk-from-env")
		key, ok := Env{}.APIKey()
		if !ok {
			t.Fatal("APIKey() ok = false with variable set")
		}
		defer key.Close()
		if got := key.String(); got != "hk-from-env" {
			t.Errorf("APIKey() = %q, want %q", got, "hk-from-env")
		}
	})

	t.Run("trims whitespace", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "  hk-padded \n")
		key, ok := Env{}.APIKey()
		if !ok {
			t.Fatal("APIKey() ok = false with padded variable")
		}
		defer key.Close()
		if got := key.String(); got != "hk-padded" {
			t.Errorf("APIKey() = %q, want %q", got, "hk-padded")
		}
	})

	t.Run("unset", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "")
		if _, ok := (Env{}).APIKey(); ok {
			t.Error("APIKey() ok = true with variable empty")
		}
	})
}

func TestStaticSource(t *testing.T) {
	key, ok := Static{Key: "hk-static"}.APIKey()
	if !ok {
		t.Fatal("APIKey() ok = false for non-empty static key")
	}
	defer key.Close()
	if got := key.String(); got != "hk-static" {
		t.Errorf("APIKey() = %q, want %q", got, "hk-static")
	}

	if _, ok := (Static{}).APIKey(); ok {
		t.Error("APIKey() ok = true for empty static key")
	}
}

func TestChainPrefersFirstConfigured(t *testing.T) {
	chain := Chain{
		Static{},
		Static{Key: "hk-second"},
		Static{Key: "hk-third"},
	}
	key, ok := chain.APIKey()
	if !ok {
		t.Fatal("APIKey() ok = false for chain with configured member")
	}
	defer key.Close()
	if got := key.String(); got != "hk-second" {
		t.Errorf("APIKey() = %q, want %q", got, "hk-second")
	}
}

func TestChainAllUnconfigured(t *testing.T) {
	if _, ok := (Chain{Static{}, Static{}}).APIKey(); ok {
		t.Error("APIKey() ok = true for chain of unconfigured sources")
	}
}
