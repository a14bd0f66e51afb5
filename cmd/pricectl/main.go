// Command pricectl runs the pricing engine offline. It prices a single slot
// from flags or replays persisted pricing inputs from a YAML file, printing
// each Result as JSON.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
