package main

import (
	"fmt"
	"os"

	"github.com/justinmckeown/similitude/internal/logger"
)

func main() {
	cmd := newRootCommand()
	err := cmd.Execute()
	logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
