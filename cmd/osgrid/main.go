// Command osgrid converts between latitude/longitude and Ordnance Survey
// National Grid references.
package main

import (
	"fmt"
	"os"

	"github.com/tzneal/geodesy/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
