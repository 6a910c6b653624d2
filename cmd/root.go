package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the schoolsum application
var rootCmd = &cobra.Command{
	Use:   "schoolsum",
	Short: "Emails a summary of upcoming Schoology calendar events",
	Long: `schoolsum logs into the Schoology parent portal, collects upcoming
calendar events for each configured child, and emails a two-part summary
report to the configured recipients.

Set PREVIEW_ONLY=true to print the report to stdout instead of mailing it.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// defaultArgs injects the summary subcommand when none is given, so that
// both "schoolsum" and "schoolsum --mode tomorrow" run a summary.
func defaultArgs(args []string) []string {
	if len(args) == 1 {
		return append(args, "summary")
	}
	switch args[1] {
	case "--help", "-h", "--version":
		return args
	}
	if strings.HasPrefix(args[1], "-") {
		rest := append([]string{"summary"}, args[1:]...)
		return append(args[:1:1], rest...)
	}
	return args
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "schoolsum version %s\n" .Version}}`)

	os.Args = defaultArgs(os.Args)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newVersionCmd())
}
