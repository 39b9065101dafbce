package main

import (
	"fmt"
	"os"

	"difflin-api/cmd/orderdesk/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
