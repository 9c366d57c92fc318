package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

// storesOptions holds options for the stores command.
type storesOptions struct {
	configPath string
}

// newStoresCmd creates the stores command.
func (a *App) newStoresCmd() *cobra.Command {
	opts := &storesOptions{}

	cmd := &cobra.Command{
		Use:   "stores",
		Short: "List the stores with profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStores(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file")
	return cmd
}

func (a *App) runStores(ctx context.Context, opts *storesOptions) error {
	rt, err := buildRuntime(opts.configPath)
	if err != nil {
		return err
	}
	defer rt.cleanup()

	ids, err := rt.profiles.List(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(a.stdout, "No profiles loaded.")
		return nil
	}

	for _, id := range ids {
		p, err := rt.profiles.Get(ctx, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "%s\t%s\t%s\t%s\n",
			id, p.StoreName(), p.Core.BasicInfo.Industry, p.Core.BasicInfo.District)
	}
	return nil
}
