package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/x/cash"
)

func cmdSend(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Transfer funds from the wallet of the signing key to another address.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl   = fl.String("home", defaultHome(), "Directory of the ledger state and keys. You can use SWAPD_HOME environment variable to set it.")
		keyFl    = fl.String("key", "", "Name of the key that signs and pays.")
		destFl   = flAddress(fl, "dst", "Destination address.")
		amountFl = flCoin(fl, "amount", `Amount to transfer, for example "10 AAA".`)
		memoFl   = fl.String("memo", "", "Short description of the transfer.")
		timeFl   = flTime(fl, "time", "Block time in RFC3339 format. Current time by default.")
	)
	fl.Parse(args)

	key, err := loadKey(*homeFl, *keyFl)
	if err != nil {
		return err
	}
	n, err := openNode(*homeFl)
	if err != nil {
		return err
	}
	defer n.close()

	msg := &cash.SendMsg{
		Source:      key.PublicKey().Address(),
		Destination: *destFl,
		Amount:      amountFl,
		Memo:        *memoFl,
	}
	if _, err := n.submit(key, msg, *timeFl); err != nil {
		return err
	}
	fmt.Fprintf(output, "sent %s to %s\n", amountFl, destFl)
	return nil
}

func cmdBalance(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the balance of an address or of a stored key.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", defaultHome(), "Directory of the ledger state and keys. You can use SWAPD_HOME environment variable to set it.")
		keyFl  = fl.String("key", "", "Name of the key to print the balance of.")
		addrFl = flAddress(fl, "addr", "Address to print the balance of. Takes precedence over -key.")
	)
	fl.Parse(args)

	addr, err := addressOf(*homeFl, *addrFl, *keyFl)
	if err != nil {
		return err
	}
	n, err := openNode(*homeFl)
	if err != nil {
		return err
	}
	defer n.close()

	models, err := n.ledger.Query("/wallets", weave.KeyQueryMod, addr)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		fmt.Fprintln(output, "no funds")
		return nil
	}
	var w cash.Wallet
	if err := w.Unmarshal(models[0].Value); err != nil {
		return err
	}
	if w.Coins.IsEmpty() {
		fmt.Fprintln(output, "no funds")
		return nil
	}
	for _, c := range w.Coins {
		fmt.Fprintln(output, c)
	}
	return nil
}
