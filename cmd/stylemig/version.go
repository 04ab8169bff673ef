package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0" ./cmd/stylemig
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of stylemig",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("stylemig %s\n", resolveVersion())
	},
}

// resolveVersion falls back to the module version for `go install` builds.
func resolveVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}
