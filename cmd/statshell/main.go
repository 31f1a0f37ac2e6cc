// Package main provides the statshell CLI application entry point.
// statshell is an interactive statistical command interpreter over
// in-memory tabular data.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	_ "statshell/internal/commands/builtin" // command registration
	_ "statshell/internal/commands/est"     // command registration
	_ "statshell/internal/commands/model"   // command registration
	"statshell/internal/logger"
	"statshell/internal/shell"
	"statshell/internal/version"
)

var (
	logLevel string
	logFile  string
	testMode bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "statshell",
	Short: "statshell - interactive statistical command interpreter",
	Long: `statshell is an interactive command interpreter for statistical work
on in-memory tabular data: data management, estimation, stored results,
and text plots, driven by a terse command language.`,
	Run: runShell,
}

// shellCmd is the explicit version of the default behavior.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start interactive shell mode",
	Run:   runShell,
}

// batchCmd executes a script file without entering interactive mode.
var batchCmd = &cobra.Command{
	Use:   "batch <script.do>",
	Short: "Execute a script file in batch mode",
	Args:  cobra.ExactArgs(1),
	Run:   runBatch,
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.GetInfo().String())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&testMode, "test-mode", false, "Run in deterministic test mode")

	for _, name := range []string{"log-level", "log-file", "test-mode"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", name, err)
			os.Exit(1)
		}
	}

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := logger.Configure(logLevel, logFile, testMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

func newSession() *shell.Session {
	if err := shell.InitializeServices(testMode); err != nil {
		logger.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}
	session, err := shell.NewSession(testMode)
	if err != nil {
		logger.Error("Failed to create session", "error", err)
		os.Exit(1)
	}
	return session
}

func runShell(_ *cobra.Command, _ []string) {
	logger.Info("Starting statshell", "version", version.GetVersion())
	session := newSession()
	if err := session.Run(version.GetVersion()); err != nil {
		logger.Error("Shell terminated with error", "error", err)
		os.Exit(1)
	}
}

func runBatch(_ *cobra.Command, args []string) {
	logger.Info("Starting statshell batch mode", "version", version.GetVersion(), "script", args[0])
	session := newSession()
	if err := session.RunScript(args[0]); err != nil {
		logger.Error("Script execution failed", "error", err)
		os.Exit(1)
	}
}
