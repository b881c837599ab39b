// main is the entry point for the hangarlog CLI.
package main

import (
	"fmt"
	"os"

	"github.com/huangsam/hangarlog/cmd"
	"github.com/huangsam/hangarlog/internal/iostore"
	"github.com/huangsam/hangarlog/internal/logging"
)

func main() {
	err := cmd.Execute()

	// Deferred cleanup does not run through os.Exit, so close explicitly.
	iostore.CloseStores()
	_ = logging.Close()

	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "❌", err)
		os.Exit(1)
	}
}
