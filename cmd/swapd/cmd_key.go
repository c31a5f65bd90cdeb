package main

import (
	"flag"
	"fmt"
	"io"
)

func cmdKeygen(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Generate a new private key and print its address.

The key is stored in the keys directory of the home directory. This command
fails if a key with the same name already exists.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", defaultHome(), "Directory of the ledger state and keys. You can use SWAPD_HOME environment variable to set it.")
		nameFl = fl.String("name", "", "Name of the key.")
	)
	fl.Parse(args)

	if *nameFl == "" {
		return fmt.Errorf("key name required")
	}
	key, err := writeKey(*homeFl, *nameFl)
	if err != nil {
		return err
	}
	fmt.Fprintln(output, key.PublicKey().Address())
	return nil
}

func cmdKeyaddr(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Print the address of a stored private key.
`)
		fl.PrintDefaults()
	}
	var (
		homeFl = fl.String("home", defaultHome(), "Directory of the ledger state and keys. You can use SWAPD_HOME environment variable to set it.")
		nameFl = fl.String("name", "", "Name of the key.")
	)
	fl.Parse(args)

	key, err := loadKey(*homeFl, *nameFl)
	if err != nil {
		return err
	}
	fmt.Fprintln(output, key.PublicKey().Address())
	return nil
}
