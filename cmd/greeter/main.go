// Command greeter serves the Agilisium DevOps team greeting pages.
package main

import (
	"context"
	"log"
	"os"
)

func main() {
	logger := log.New(os.Stderr, "greeter: ", log.Ldate|log.Ltime)
	if err := newRootCmd(logger).ExecuteContext(context.Background()); err != nil {
		logger.Print(err)
		os.Exit(1)
	}
}
