// Command todoctl manages todos through the HTTP API.
package main

import (
	"fmt"
	"os"
	"time"
)

func main() {
	cmd := newRootCmd(os.Stdout, time.Now)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
