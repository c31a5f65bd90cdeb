package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/iov-one/weaveswap"
	"github.com/iov-one/weaveswap/codec"
	"github.com/iov-one/weaveswap/errors"
	"github.com/iov-one/weaveswap/x/escrow"
)

func cmdMake(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Open an escrow offering the deposit in exchange for the requested amount.

The deposit is moved to a custody account controlled by the ledger. The
escrow ID is printed on success.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl    = fl.String("home", defaultHome(), "Directory of the ledger state and keys. You can use SWAPD_HOME environment variable to set it.")
		keyFl     = fl.String("key", "", "Name of the maker key.")
		seedFl    = fl.Uint64("seed", 0, "Seed distinguishing escrows of the same maker.")
		depositFl = flCoin(fl, "deposit", `Offered amount, for example "100 AAA".`)
		receiveFl = flCoin(fl, "receive", `Requested amount, for example "50 BBB".`)
		expiresFl = fl.Duration("expires", 0, "Time after which the escrow cannot be taken. Zero means never.")
		timeFl    = flTime(fl, "time", "Block time in RFC3339 format. Current time by default.")
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

	msg := &escrow.MakeMsg{
		Maker:         key.PublicKey().Address(),
		Seed:          *seedFl,
		MintA:         depositFl.Ticker,
		MintB:         receiveFl.Ticker,
		DepositAmount: depositFl.Amount,
		ReceiveAmount: receiveFl.Amount,
		ExpiresIn:     int64(*expiresFl / time.Second),
	}
	res, err := n.submit(key, msg, *timeFl)
	if err != nil {
		return err
	}
	fmt.Fprintln(output, hex.EncodeToString(res.Data))
	return nil
}

func cmdTake(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Take an escrow: pay the requested amount to the maker and receive the deposit.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl   = fl.String("home", defaultHome(), "Directory of the ledger state and keys. You can use SWAPD_HOME environment variable to set it.")
		keyFl    = fl.String("key", "", "Name of the taker key.")
		escrowFl = flHex(fl, "escrow", "Hex encoded escrow ID.")
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

	msg := &escrow.TakeMsg{
		Taker:    key.PublicKey().Address(),
		EscrowID: *escrowFl,
	}
	if _, err := n.submit(key, msg, *timeFl); err != nil {
		return err
	}
	fmt.Fprintln(output, "escrow taken")
	return nil
}

func cmdRefund(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Cancel an escrow and return the deposit to the maker. Only the maker can
refund.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl   = fl.String("home", defaultHome(), "Directory of the ledger state and keys. You can use SWAPD_HOME environment variable to set it.")
		keyFl    = fl.String("key", "", "Name of the maker key.")
		escrowFl = flHex(fl, "escrow", "Hex encoded escrow ID.")
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

	msg := &escrow.RefundMsg{EscrowID: *escrowFl}
	if _, err := n.submit(key, msg, *timeFl); err != nil {
		return err
	}
	fmt.Fprintln(output, "escrow refunded")
	return nil
}

func cmdEscrow(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print open escrows in JSON format, either a single one by its ID or all
escrows of a maker.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl   = fl.String("home", defaultHome(), "Directory of the ledger state and keys. You can use SWAPD_HOME environment variable to set it.")
		escrowFl = flHex(fl, "escrow", "Hex encoded escrow ID.")
		makerFl  = flAddress(fl, "maker", "Address of the maker.")
	)
	fl.Parse(args)

	var (
		path string
		data []byte
	)
	switch {
	case len(*escrowFl) != 0:
		path, data = "/escrows", *escrowFl
	case len(*makerFl) != 0:
		path, data = "/escrows/maker", *makerFl
	default:
		return errors.Wrap(errors.ErrInput, "escrow ID or maker required")
	}

	n, err := openNode(*homeFl)
	if err != nil {
		return err
	}
	defer n.close()

	models, err := n.ledger.Query(path, weave.KeyQueryMod, data)
	if err != nil {
		return err
	}
	if len(models) == 0 {
		return errors.Wrap(errors.ErrNotFound, "no escrow")
	}
	for _, m := range models {
		var e escrow.Escrow
		if err := e.Unmarshal(m.Value); err != nil {
			return err
		}
		raw, err := codec.MarshalJSON(struct {
			ID     string         `json:"id"`
			Escrow *escrow.Escrow `json:"escrow"`
		}{
			ID:     hex.EncodeToString(escrowID(m.Key)),
			Escrow: &e,
		})
		if err != nil {
			return err
		}
		fmt.Fprintln(output, string(raw))
	}
	return nil
}

// escrowID strips the bucket prefix from the database key.
func escrowID(dbKey []byte) []byte {
	const prefix = "esc:"
	if len(dbKey) > len(prefix) && string(dbKey[:len(prefix)]) == prefix {
		return dbKey[len(prefix):]
	}
	return dbKey
}
