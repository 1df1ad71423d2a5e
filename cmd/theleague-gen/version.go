package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the generator version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		info := currentBuild()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "theleague-gen %s\ncommit:   %s\nbuilt at: %s\n", info.version, info.commit, info.date)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), info.version)
		return nil
	},
}

// Set with -ldflags at release time.
var (
	version = ""
	commit  = "none"
	date    = "unknown"
)

type buildInfo struct {
	version, commit, date string
}

// currentBuild prefers the linker-provided values and falls back to the module build info
// recorded by `go install`.
func currentBuild() buildInfo {
	info := buildInfo{version: version, commit: commit, date: date}
	if info.version != "" {
		return info
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi.Main.Version == "" || bi.Main.Version == "(devel)" {
		info.version = "dev"
		return info
	}
	info.version = bi.Main.Version
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.commit = s.Value
		case "vcs.time":
			info.date = s.Value
		}
	}
	return info
}

func setupVersionCmd() {
	versionCmd.Flags().BoolP("verbose", "v", false, "print commit and build date")
}
