package cli

import (
	"fmt"
	"runtime"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

const versionTemplate = `{{.Name}} {{.Version}}
`

func versionString() string {
	return fmt.Sprintf("%s (commit: %s, built: %s, %s %s/%s)",
		Version, Commit, BuildDate, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
