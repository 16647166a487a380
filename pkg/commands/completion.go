package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(riverline completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(riverline completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
	registerIDCompletions(topLevel)
}

// registerIDCompletions completes --boat and --stop with known ids.
func registerIDCompletions(root *cobra.Command) {
	walk(root, func(c *cobra.Command) {
		if c.Flags().Lookup("boat") != nil {
			_ = c.RegisterFlagCompletionFunc("boat", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
				return boatCompletions(), cobra.ShellCompDirectiveNoFileComp
			})
		}
		if c.Flags().Lookup("stop") != nil {
			_ = c.RegisterFlagCompletionFunc("stop", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
				return stopCompletions(), cobra.ShellCompDirectiveNoFileComp
			})
		}
	})
}

func walk(c *cobra.Command, fn func(*cobra.Command)) {
	fn(c)
	for _, sub := range c.Commands() {
		walk(sub, fn)
	}
}

func boatCompletions() []string {
	var out []string
	_ = withEnv(context.Background(), func(e *env) error {
		boats, err := e.app.Boats(context.Background())
		for _, b := range boats {
			out = append(out, b.ID+"\t"+b.Name)
		}
		return err
	})
	return out
}

func stopCompletions() []string {
	var out []string
	_ = withEnv(context.Background(), func(e *env) error {
		stops, err := e.app.Stops(context.Background())
		for _, s := range stops {
			out = append(out, s.ID+"\t"+s.Name)
		}
		return err
	})
	return out
}
