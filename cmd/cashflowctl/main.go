// Command cashflowctl runs forecasts from a plan file or a cashflow
// database and moves items between the two.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
