package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/freshen/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec [flags] -- command [args...]",
		Short: "Run a single command if its outputs are out of date",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			inputs, _ := flags.GetStringArray("input")
			outputs, _ := flags.GetStringArray("output")
			dir, _ := flags.GetString("dir")
			name, _ := flags.GetString("name")
			envPairs, _ := flags.GetStringArray("env")

			env, err := parseEnv(envPairs)
			if err != nil {
				return err
			}

			req := domain.BuildRequest{
				Name:    name,
				Command: args,
				Inputs:  inputs,
				Outputs: outputs,
				Dir:     dir,
				Env:     env,
			}
			return c.app.Exec(cmd.Context(), req, options(cmd))
		},
	}

	cmd.Flags().StringArrayP("input", "i", nil, "Input file (repeatable)")
	cmd.Flags().StringArrayP("output", "o", nil, "Output file (repeatable)")
	cmd.Flags().StringP("dir", "C", "", "Run the command in this directory")
	cmd.Flags().StringArrayP("env", "e", nil, "Set KEY=VALUE in the command environment (repeatable)")
	cmd.Flags().String("name", "", "Label for logs")
	return cmd
}

func parseEnv(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, zerr.With(zerr.New("environment entries must be KEY=VALUE"), "entry", pair)
		}
		env[k] = v
	}
	return env, nil
}
