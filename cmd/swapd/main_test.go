package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"strings"
	"testing"

	"github.com/iov-one/weaveswap/weavetest/assert"
)

// run executes the command and returns its trimmed output.
func run(t testing.TB, name string, args ...string) (string, error) {
	t.Helper()
	cmd, ok := commands[name]
	if !ok {
		t.Fatalf("unknown command %q", name)
	}
	var out bytes.Buffer
	err := cmd(strings.NewReader(""), &out, args)
	return strings.TrimSpace(out.String()), err
}

func mustRun(t testing.TB, name string, args ...string) string {
	t.Helper()
	out, err := run(t, name, args...)
	if err != nil {
		t.Fatalf("%s %v: %+v", name, args, err)
	}
	return out
}

func tempHome(t testing.TB) (string, func()) {
	t.Helper()
	home, err := ioutil.TempDir("", "swapd")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}
	return home, func() { os.RemoveAll(home) }
}

func TestSwapFlow(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	mustRun(t, "init", "-home", home, "-chain", "test-swapd", "-tokens", "AAA,BBB")
	maker := mustRun(t, "keygen", "-home", home, "-name", "maker")
	taker := mustRun(t, "keygen", "-home", home, "-name", "taker")
	assert.Equal(t, maker, mustRun(t, "keyaddr", "-home", home, "-name", "maker"))

	mustRun(t, "send", "-home", home, "-key", "admin", "-dst", maker, "-amount", "100 AAA")
	mustRun(t, "send", "-home", home, "-key", "admin", "-dst", taker, "-amount", "50 BBB")

	id := mustRun(t, "make", "-home", home, "-key", "maker",
		"-seed", "1", "-deposit", "100 AAA", "-receive", "50 BBB",
		"-time", "2019-06-01T12:00:00Z", "-expires", "1h")
	assert.Equal(t, 40, len(id))

	byID := mustRun(t, "escrow", "-home", home, "-escrow", id)
	byMaker := mustRun(t, "escrow", "-home", home, "-maker", maker)
	assert.Equal(t, byID, byMaker)
	if !strings.Contains(byID, id) {
		t.Fatalf("escrow ID not found in %q", byID)
	}

	// Expired.
	_, err := run(t, "take", "-home", home, "-key", "taker", "-escrow", id, "-time", "2019-06-01T13:00:00Z")
	if err == nil {
		t.Fatal("expired escrow taken")
	}

	mustRun(t, "take", "-home", home, "-key", "taker", "-escrow", id, "-time", "2019-06-01T12:30:00Z")
	assert.Equal(t, "100 AAA", mustRun(t, "balance", "-home", home, "-key", "taker"))
	assert.Equal(t, "50 BBB", mustRun(t, "balance", "-home", home, "-addr", maker))

	_, err = run(t, "escrow", "-home", home, "-escrow", id)
	if err == nil {
		t.Fatal("taken escrow still present")
	}
}

func TestRefundFlow(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	mustRun(t, "init", "-home", home, "-chain", "test-swapd")
	maker := mustRun(t, "keygen", "-home", home, "-name", "maker")
	mustRun(t, "send", "-home", home, "-key", "admin", "-dst", maker, "-amount", "10 AAA")

	id := mustRun(t, "make", "-home", home, "-key", "maker", "-seed", "9",
		"-deposit", "10 AAA", "-receive", "1 BBB")
	assert.Equal(t, "no funds", mustRun(t, "balance", "-home", home, "-key", "maker"))

	// Only the maker can refund.
	_, err := run(t, "refund", "-home", home, "-key", "admin", "-escrow", id)
	if err == nil {
		t.Fatal("refund by a stranger accepted")
	}
	mustRun(t, "refund", "-home", home, "-key", "maker", "-escrow", id)
	assert.Equal(t, "10 AAA", mustRun(t, "balance", "-home", home, "-key", "maker"))
}

func TestWhitelistFlow(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	mustRun(t, "init", "-home", home, "-chain", "test-swapd")
	owner := mustRun(t, "keygen", "-home", home, "-name", "owner")

	assert.Equal(t, owner+" not whitelisted", mustRun(t, "whitelist", "-home", home, "-owner", owner))
	out := mustRun(t, "whitelist", "-home", home, "-owner", owner, "-add")
	if !strings.Contains(out, "whitelisted=true") {
		t.Fatalf("unexpected output %q", out)
	}
	out = mustRun(t, "whitelist", "-home", home, "-owner", owner, "-switch")
	if !strings.Contains(out, "whitelisted=false") {
		t.Fatalf("unexpected output %q", out)
	}

	// Only the administrator manages the whitelist.
	_, err := run(t, "whitelist", "-home", home, "-owner", owner, "-switch", "-key", "owner")
	if err == nil {
		t.Fatal("whitelist switched by a stranger")
	}
}

func TestInitTwice(t *testing.T) {
	home, cleanup := tempHome(t)
	defer cleanup()

	mustRun(t, "init", "-home", home, "-chain", "test-swapd")
	if _, err := run(t, "init", "-home", home, "-chain", "test-swapd"); err == nil {
		t.Fatal("ledger initialized twice")
	}
}

func TestParseTokens(t *testing.T) {
	tokens, err := parseTokens("AAA, GTD:gated,,BBB")
	if err != nil {
		t.Fatalf("parse: %s", err)
	}
	assert.Equal(t, 3, len(tokens))
	assert.Equal(t, "GTD", tokens[1].Ticker)
	assert.Equal(t, true, tokens[1].Gated)
	assert.Equal(t, false, tokens[2].Gated)

	if _, err := parseTokens("AAA:open"); err == nil {
		t.Fatal("invalid declaration accepted")
	}
}
