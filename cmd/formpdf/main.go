// Command formpdf serves the contact form, validates records and exports
// them as PDF documents.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(newApp(os.Stdin, os.Stdout, os.Stderr)).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "formpdf:", err)
		os.Exit(1)
	}
}
