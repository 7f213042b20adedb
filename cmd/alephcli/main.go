// alephcli exercises the Aleph ILS client from the command line: holdings of
// a record, and loans, fines and the profile of a patron. Intended for
// verifying an installation's configuration tables and DLF connectivity.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
