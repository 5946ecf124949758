// easymock - standalone mock HTTP server for integration testing.
package main

import (
	"fmt"
	"os"

	"github.com/jjs98/easy-server-mock/pkg/cli"
)

// Build-time variables set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

func main() {
	cli.SetVersionInfo(Version, Commit, BuildDate)
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
