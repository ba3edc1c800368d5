// Command gowasm disassembles and decompiles WebAssembly MVP modules.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/akupila/gowasm/internal/cliutil"
)

var version = "<unknown>"

func configureCLI() *cobra.Command {
	var verbose bool

	rootCommand := &cobra.Command{
		Use:           "gowasm",
		Short:         "gowasm WebAssembly decompiler",
		Long:          "gowasm - disassemble and decompile WebAssembly MVP modules",
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				cliutil.SetLogger(l)
			}
			return nil
		},
	}

	rootCommand.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "emit debug logging")

	rootCommand.AddCommand(disasmCommand())
	rootCommand.AddCommand(dumpCommand())
	rootCommand.AddCommand(xrefsCommand())

	return rootCommand
}

func main() {
	rootCommand := configureCLI()

	if err := rootCommand.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
