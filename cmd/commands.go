package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ha1tch/ldiskfs/cmd/add"
	"github.com/ha1tch/ldiskfs/cmd/create"
	deletecmd "github.com/ha1tch/ldiskfs/cmd/delete"
	"github.com/ha1tch/ldiskfs/cmd/extract"
	"github.com/ha1tch/ldiskfs/cmd/info"
	"github.com/ha1tch/ldiskfs/cmd/list"
	"github.com/ha1tch/ldiskfs/cmd/report"
	"github.com/ha1tch/ldiskfs/cmd/shell"
)

func newCreateCommand() *cobra.Command {
	opts := create.DefaultCreateOptions()
	cmd := &cobra.Command{
		Use:   "create <image>",
		Short: "Write a freshly initialized disk image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logf("creating %s", args[0])
			return create.Create(args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.Raw, "raw", opts.Raw, "write the bare block array without a header")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", opts.Force, "overwrite an existing file")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "suppress non-error output")
	return cmd
}

func newShellCommand() *cobra.Command {
	opts := shell.DefaultShellOptions()
	opts.Logf = logf
	cmd := &cobra.Command{
		Use:   "shell [script]",
		Short: "Run shell commands (cr, de, op, cl, rd, wr, sk, dr, in, sv) from a script or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
				logf("running script %s", args[0])
			}
			return shell.Run(in, cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Transcript, "output", "o", opts.Transcript, "also write responses to this file")
	cmd.Flags().BoolVar(&opts.Echo, "echo", opts.Echo, "print each command before its response")
	return cmd
}

func newListCommand() *cobra.Command {
	opts := list.DefaultListOptions()
	cmd := &cobra.Command{
		Use:     "list <image>",
		Aliases: []string{"ls", "dir"},
		Short:   "List the files of a disk image",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Output = cmd.OutOrStdout()
			return list.List(args[0], opts)
		},
	}
	cmd.Flags().Var(&opts.Format, "format", "output format: short, long or json")
	cmd.Flags().StringVar(&opts.Sort, "sort", opts.Sort, "sort order: stored, name or size")
	cmd.Flags().BoolVarP(&opts.Reverse, "reverse", "r", opts.Reverse, "reverse the sort order")
	cmd.Flags().StringVarP(&opts.Pattern, "pattern", "p", opts.Pattern, "only list names matching this glob")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "suppress non-error output")
	return cmd
}

func newInfoCommand() *cobra.Command {
	opts := info.DefaultInfoOptions()
	cmd := &cobra.Command{
		Use:   "info <image>",
		Short: "Show usage and consistency of a disk image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Output = cmd.OutOrStdout()
			return info.Info(args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.JSON, "json", opts.JSON, "output JSON")
	cmd.Flags().BoolVar(&opts.Verbose, "blocks", opts.Verbose, "include the block map")
	cmd.Flags().BoolVar(&opts.Validate, "check", opts.Validate, "run the consistency check")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "only print problems")
	return cmd
}

func newAddCommand() *cobra.Command {
	opts := add.DefaultAddOptions()
	cmd := &cobra.Command{
		Use:   "add <image> <file>",
		Short: "Import a host file into a disk image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logf("adding %s to %s", args[1], args[0])
			return add.Add(args[0], args[1], opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Name, "name", "n", opts.Name, "name on the disk (default: from the host file name)")
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", opts.Force, "replace an existing file")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "suppress non-error output")
	return cmd
}

func newExtractCommand() *cobra.Command {
	opts := extract.DefaultExtractOptions()
	var all bool
	cmd := &cobra.Command{
		Use:   "extract <image> [name]",
		Short: "Copy files from a disk image to the host",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all || len(args) == 1 {
				logf("extracting all files from %s", args[0])
				return extract.ExtractAll(args[0], opts)
			}
			return extract.Extract(args[0], args[1], opts)
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "extract every file")
	cmd.Flags().StringVarP(&opts.OutputDir, "dir", "d", opts.OutputDir, "output directory")
	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", opts.Overwrite, "replace existing host files")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "suppress non-error output")
	return cmd
}

func newDeleteCommand() *cobra.Command {
	opts := deletecmd.DefaultDeleteOptions()
	cmd := &cobra.Command{
		Use:     "delete <image> <name>",
		Aliases: []string{"rm"},
		Short:   "Destroy a file inside a disk image",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = cmd.InOrStdin()
			return deletecmd.Delete(args[0], args[1], opts)
		},
	}
	cmd.Flags().BoolVarP(&opts.Force, "force", "f", opts.Force, "do not ask for confirmation")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "suppress non-error output")
	return cmd
}

func newReportCommand() *cobra.Command {
	opts := report.DefaultReportOptions()
	cmd := &cobra.Command{
		Use:   "report <image> <out.png>",
		Short: "Render the block map of a disk image as a PNG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logf("rendering %s", args[0])
			return report.Report(args[0], args[1], opts)
		},
	}
	cmd.Flags().StringVar(&opts.Title, "title", opts.Title, "image title")
	cmd.Flags().StringVar(&opts.FontPath, "font", opts.FontPath, "TrueType font file")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", opts.Quiet, "suppress non-error output")
	return cmd
}
