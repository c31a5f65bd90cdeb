package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/iov-one/weaveswap/app"
	swapapp "github.com/iov-one/weaveswap/cmd/swapd/app"
)

func cmdInit(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Initialize a new ledger in the home directory.

An administrator key is created. The administrator holds the whole supply of
every token, manages the whitelist and the escrow configuration. A token
declared with the ":gated" suffix can be moved only by whitelisted owners.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl   = fl.String("home", defaultHome(), "Directory of the ledger state and keys. You can use SWAPD_HOME environment variable to set it.")
		chainFl  = fl.String("chain", "local-swap", "Chain ID of the new ledger.")
		adminFl  = fl.String("admin", "admin", "Name of the administrator key to create.")
		supplyFl = fl.Uint64("supply", 1000000, "Amount of every token given to the administrator.")
		tokensFl = fl.String("tokens", "AAA,BBB,GTD:gated", "Comma separated list of tickers.")
	)
	fl.Parse(args)

	tokens, err := parseTokens(*tokensFl)
	if err != nil {
		return err
	}
	if _, err := os.Stat(filepath.Join(*homeFl, genesisFile)); err == nil {
		return fmt.Errorf("ledger in %q already initialized", *homeFl)
	}
	if err := os.MkdirAll(*homeFl, 0700); err != nil {
		return fmt.Errorf("cannot create home directory: %s", err)
	}

	admin, err := writeKey(*homeFl, *adminFl)
	if err != nil {
		return err
	}
	opts, err := swapapp.GenInitOptions(admin.PublicKey().Address(), *supplyFl, tokens)
	if err != nil {
		return err
	}
	gen := app.Genesis{ChainID: *chainFl, AppState: opts}
	raw, err := json.MarshalIndent(gen, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot serialize genesis: %s", err)
	}
	if err := ioutil.WriteFile(filepath.Join(*homeFl, genesisFile), raw, 0600); err != nil {
		return fmt.Errorf("cannot write genesis: %s", err)
	}

	n, err := openNode(*homeFl)
	if err != nil {
		return err
	}
	defer n.close()
	info, err := n.ledger.InitChain(&gen, swapapp.Initializers())
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "chain %s initialized at height %d, admin %s\n",
		*chainFl, info.Version, admin.PublicKey().Address())
	return nil
}

// parseTokens parses a comma separated list of tickers, each optionally
// followed by the ":gated" suffix.
func parseTokens(raw string) ([]swapapp.GenesisToken, error) {
	var tokens []swapapp.GenesisToken
	for _, chunk := range strings.Split(raw, ",") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		ticker := strings.TrimSuffix(chunk, ":gated")
		if strings.Contains(ticker, ":") {
			return nil, fmt.Errorf("invalid token declaration %q", chunk)
		}
		tokens = append(tokens, swapapp.GenesisToken{
			Ticker: ticker,
			Gated:  ticker != chunk,
		})
	}
	return tokens, nil
}
