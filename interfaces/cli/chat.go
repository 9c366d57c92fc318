package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// chatOptions holds options for the chat command.
type chatOptions struct {
	configPath string
}

// newChatCmd creates the interactive chat command.
func (a *App) newChatCmd() *cobra.Command {
	opts := &chatOptions{}

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive consulting session",
		Long: `Start an interactive consulting session. Each line is one question;
the session keeps conversation history and the resolved store binding
across questions.

Mention your store as {name***} to bind the session to its profile:

  > {고향***} 프로필 보여줘

Exit with "exit", "quit", or Ctrl-D.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runChat(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	return cmd
}

func (a *App) runChat(ctx context.Context, opts *chatOptions) error {
	rt, err := buildRuntime(opts.configPath)
	if err != nil {
		return err
	}
	defer rt.cleanup()

	session := rt.sessions.Create()
	fmt.Fprintf(a.stdout, "Session %s started. Ask away.\n", session.ID)

	scanner := bufio.NewScanner(a.stdin)
	for {
		fmt.Fprint(a.stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}

		answer, err := rt.engine.Chat(ctx, session, line)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			fmt.Fprintf(a.stderr, "error: %v\n", err)
			continue
		}
		fmt.Fprintf(a.stdout, "%s\n\n", answer)
	}
	return scanner.Err()
}
