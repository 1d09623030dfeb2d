// Package cmd contains the CLI commands for diffscope.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version info (set from main)
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"

	// Global flags
	cfgFile   string
	verbose   bool
	vcsName   string
	rootDir   string
	sourceExt string

	// Base-revision flags, shared by the commands that take a base
	revArg      string
	branchPoint bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "diffscope",
	Short: "Uniform changed-file and diff queries across git, hg, and bzr",
	Long: `diffscope answers three questions the same way regardless of which
version control system a working tree uses: which source files changed since
a base revision, what is the line-level diff for one file, and what is the
merge base of two revisions.

The backend is auto-detected by default and every query is a read-only
subprocess call to the underlying tool.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information from the main package.
func SetVersionInfo(v, bt, gc string) {
	version = v
	buildTime = bt
	gitCommit = gc
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./diffscope.yaml or ~/.diffscope/diffscope.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().StringVar(&vcsName, "vcs", "", "version control system (auto, git, hg, bzr)")
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "working-tree root (default: detected from the current directory)")
	rootCmd.PersistentFlags().StringVar(&sourceExt, "ext", "", "source file extension to track (default: .py)")

	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(filesCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.AddCommand(mergeBaseCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// addBaseFlags registers the base-revision flags on commands that diff
// against a base.
func addBaseFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&revArg, "rev", "r", "", "base revision (default: diff against the working tree)")
	cmd.Flags().BoolVar(&branchPoint, "branch-point", false, "use the merge base of --rev and the current tip as the base")
}

// versionCmd displays version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("diffscope %s\n", version)
		fmt.Printf("  Build time: %s\n", buildTime)
		fmt.Printf("  Git commit: %s\n", gitCommit)
	},
}
