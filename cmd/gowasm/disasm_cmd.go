package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/akupila/gowasm/decompile"
	"github.com/akupila/gowasm/internal/cliutil"
)

func disasmCommand() *cobra.Command {
	var structured bool
	var outPath string

	command := &cobra.Command{
		Use:   "disasm <file>",
		Short: "Render a module as flat or structured pseudocode",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one argument")
			}

			_, d, err := cliutil.LoadModule(args[0])
			if err != nil {
				return err
			}

			kind := decompile.KindFlat
			if structured {
				kind = decompile.KindStructured
			}
			cliutil.Logger().Sugar().Debugf("rendering %s as %s", args[0], kind)

			out, err := decompile.Run(d, kind, nil)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}

			_, err = w.Write([]byte(out))
			return err
		},
	}

	command.Args = cobra.ExactArgs(1)
	command.Flags().BoolVar(&structured, "structured", false, "render structured pseudocode instead of the flat opcode listing")
	command.Flags().StringVar(&outPath, "out", "", "write output to this path instead of stdout")

	return command
}
