package main

import (
	"github.com/spf13/cobra"

	"github.com/blocksync-io/blocksync/cmd"
)

// rootMain is the entry point for the root command.
func rootMain(command *cobra.Command, _ []string) error {
	// If no subcommand was specified, then print help information and bail.
	command.Help()
	return nil
}

// rootCommand is the root command.
var rootCommand = &cobra.Command{
	Use:           "blocksync",
	Short:         "Blocksync transmits the difference between two versions of a file compactly using content-addressed block matching.",
	Args:          cmd.DisallowArguments,
	RunE:          rootMain,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// rootConfiguration stores configuration for the root command.
var rootConfiguration struct {
	// help indicates whether or not to show help information and exit.
	help bool
}

func init() {
	// Grab a handle for the command line flags.
	flags := rootCommand.Flags()

	// Disable alphabetical sorting of flags in help output.
	flags.SortFlags = false

	// Manually add a help flag to override the default message. Cobra will
	// still implement its logic automatically.
	flags.BoolVarP(&rootConfiguration.help, "help", "h", false, "Show help information")

	// Disable Cobra's command sorting behavior. By default, it sorts commands
	// alphabetically in the help output.
	cobra.EnableCommandSorting = false

	// Register commands. We do this here (rather than in individual init
	// functions) so that we can control the order.
	rootCommand.AddCommand(
		signatureCommand,
		deltaCommand,
		patchCommand,
		versionCommand,
	)
}

func main() {
	// Execute the root command. Error printing is silenced in the command
	// machinery, so any failure is reported (and converted to an error exit
	// code) here.
	if err := rootCommand.Execute(); err != nil {
		cmd.Fatal(err)
	}
}
