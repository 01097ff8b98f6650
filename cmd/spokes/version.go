package main

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"
)

// Set at release time via -ldflags. Development builds leave them
// empty and fall back to the binary's embedded build info.
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildVersion assembles the one-line version string, without the
// program name, filling anything ldflags left empty from
// debug.ReadBuildInfo.
func buildVersion() string {
	v, c, d := version, commit, date

	if info, ok := debug.ReadBuildInfo(); ok {
		if v == "" && info.Main.Version != "" {
			v = info.Main.Version
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if c == "" {
					c = s.Value
				}
			case "vcs.time":
				if d == "" {
					d = s.Value
				}
			}
		}
	}
	if v == "" {
		v = "(devel)"
	}
	if len(c) > 7 {
		c = c[:7]
	}

	var b strings.Builder
	b.WriteString(v)
	if c != "" {
		fmt.Fprintf(&b, " (commit %s", c)
		if d != "" {
			fmt.Fprintf(&b, ", built %s", d)
		}
		b.WriteString(")")
	}
	fmt.Fprintf(&b, " %s/%s", runtime.GOOS, runtime.GOARCH)
	return b.String()
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit, and build date of spokes.`,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "spokes %s\n", buildVersion())
		},
	}
}
