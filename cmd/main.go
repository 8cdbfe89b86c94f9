package main

import (
	"log"

	"github.com/spf13/cobra"
)

var verbose bool

// logf writes progress lines when --verbose is set
func logf(format string, v ...any) {
	if verbose {
		log.Printf(format, v...)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "ldiskfs",
		Short:         "Block file system simulator on a 64-block virtual disk",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log progress to stderr")

	root.AddCommand(
		newCreateCommand(),
		newShellCommand(),
		newListCommand(),
		newInfoCommand(),
		newAddCommand(),
		newExtractCommand(),
		newDeleteCommand(),
		newReportCommand(),
	)
	return root
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("ldiskfs: ")

	if err := newRootCommand().Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}
