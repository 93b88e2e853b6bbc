// Package main implements ask, a command-line client for the Sadhak
// Calculator server.
//
// Usage:
//
//	ask "What's the mean of 4, 8 and 15?"
//	ask --demo
//	ask continue the --length 10
//	ask health
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
