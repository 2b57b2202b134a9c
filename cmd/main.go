/*
Package main is the entry point for the boardroom server.

It loads configuration, initializes the global logging system, wires the stores and
services, serves the HTTP API and the shared board socket, and shuts down gracefully
on SIGINT or SIGTERM.
*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %v\n", err)
		os.Exit(1)
	}
}
