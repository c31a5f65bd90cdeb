package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/x/whitelist"
)

func cmdWhitelist(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Manage the whitelist of owners allowed to move gated tokens.

Without -add or -switch the entry of the owner is printed. Adding and
switching must be signed by the whitelist administrator.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl   = fl.String("home", defaultHome(), "Directory of the ledger state and keys. You can use SWAPD_HOME environment variable to set it.")
		keyFl    = fl.String("key", "admin", "Name of the administrator key.")
		ownerFl  = flAddress(fl, "owner", "Address of the owner.")
		addFl    = fl.Bool("add", false, "Add the owner to the whitelist.")
		switchFl = fl.Bool("switch", false, "Toggle the whitelist entry of the owner.")
		timeFl   = flTime(fl, "time", "Block time in RFC3339 format. Current time by default.")
	)
	fl.Parse(args)

	if len(*ownerFl) == 0 {
		return fmt.Errorf("owner address required")
	}
	n, err := openNode(*homeFl)
	if err != nil {
		return err
	}
	defer n.close()

	var msg weave.Msg
	switch {
	case *addFl && *switchFl:
		return fmt.Errorf("-add and -switch cannot be used together")
	case *addFl:
		msg = &whitelist.AddMsg{Owner: *ownerFl}
	case *switchFl:
		msg = &whitelist.SwitchMsg{Owner: *ownerFl}
	default:
		return printEntry(n, output, *ownerFl)
	}

	key, err := loadKey(*homeFl, *keyFl)
	if err != nil {
		return err
	}
	if _, err := n.submit(key, msg, *timeFl); err != nil {
		return err
	}
	return printEntry(n, output, *ownerFl)
}

func printEntry(n *node, output io.Writer, owner weave.Address) error {
	models, err := n.ledger.Query("/whitelist", weave.KeyQueryMod, owner)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		fmt.Fprintf(output, "%s not whitelisted\n", owner)
		return nil
	}
	var e whitelist.Entry
	if err := e.Unmarshal(models[0].Value); err != nil {
		return err
	}
	fmt.Fprintf(output, "%s whitelisted=%t added_by=%s\n", owner, e.Whitelisted, e.AddedBy)
	return nil
}
