package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// askOptions holds options for the ask command.
type askOptions struct {
	configPath string
	jsonOutput bool
}

// newAskCmd creates the one-shot question command.
func (a *App) newAskCmd() *cobra.Command {
	opts := &askOptions{}

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Ask a single question and print the answer",
		Long: `Ask one question without an interactive session.

Examples:
  advisor ask "{고향***} 프로필 보여줘"
  advisor ask -c config.yaml --json "요일별 매출 분석해줘"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runAsk(cmd.Context(), opts, args[0])
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the full turn state as JSON")
	return cmd
}

func (a *App) runAsk(ctx context.Context, opts *askOptions, question string) error {
	rt, err := buildRuntime(opts.configPath)
	if err != nil {
		return err
	}
	defer rt.cleanup()

	session := rt.sessions.Create()
	answer, err := rt.engine.Chat(ctx, session, question)
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		data, err := json.MarshalIndent(session.State(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, string(data))
		return nil
	}
	fmt.Fprintln(a.stdout, answer)
	return nil
}
