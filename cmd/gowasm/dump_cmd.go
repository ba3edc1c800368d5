package main

import (
	"errors"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/akupila/gowasm/internal/cliutil"
)

func dumpCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "dump <file>",
		Short: "Pretty-print a module's raw parsed sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("expected exactly one argument")
			}

			mod, _, err := cliutil.LoadModule(args[0])
			if err != nil {
				return err
			}

			for _, sec := range mod.Sections {
				pretty.Println(sec)
			}

			return nil
		},
	}

	command.Args = cobra.ExactArgs(1)

	return command
}
