// Command portfolioctl holds operator tasks for the portfolio site: exporting
// the bundled data, hashing the observatory password and running migrations.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
