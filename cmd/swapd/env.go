package main

import (
	"os"
	"path/filepath"
)

// env returns the value of an environment variable if provided (even if empty)
// or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}

// defaultHome returns the directory where the ledger state and the keys are
// kept unless a -home flag is given.
func defaultHome() string {
	return env("SWAPD_HOME", filepath.Join(os.Getenv("HOME"), ".swapd"))
}
