// Command synapseiq browses the SynapseIQ testimonials API from the
// terminal: a carousel over featured testimonials, an admin-style list view
// and a sample data generator.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
