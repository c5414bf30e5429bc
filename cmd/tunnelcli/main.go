// Command tunnelcli reduces NACA 0018 wind-tunnel pressure tap
// measurements to pressure coefficients, Reynolds numbers and lift
// coefficients, and serves the same reduction over HTTP.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
