// paleta - dominant colour palette extraction
//
// paleta extracts a small palette of dominant colours from an image using
// median-cut quantisation.
package main

import "github.com/jmylchreest/paleta/internal/cli"

func main() {
	cli.Execute()
}
