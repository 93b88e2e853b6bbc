package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/GriffinCanCode/sadhak/backend/internal/client"
	"github.com/GriffinCanCode/sadhak/backend/internal/domain/query"
)

type rootOptions struct {
	server   string
	timeout  time.Duration
	demo     bool
	parallel int
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "ask [prompt...]",
		Short: "Ask the Sadhak Calculator a math question",
		Long: `Sends a natural-language prompt to a running Sadhak Calculator server
and prints the explanation it returns.`,
		Args:         cobra.ArbitraryArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			c := opts.client()
			if opts.demo {
				return runDemo(cmd, c, opts.timeout, opts.parallel)
			}
			if len(args) == 0 {
				return fmt.Errorf("a prompt is required (or use --demo)")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			answer, err := c.Ask(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), answer)
			return nil
		},
	}

	defaultServer := os.Getenv("SADHAK_URL")
	if defaultServer == "" {
		defaultServer = client.DefaultBaseURL
	}
	root.PersistentFlags().StringVarP(&opts.server, "server", "s", defaultServer, "Server base URL (env SADHAK_URL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 30*time.Second, "Overall request timeout")
	root.Flags().BoolVar(&opts.demo, "demo", false, "Run the sample prompts")
	root.Flags().IntVar(&opts.parallel, "parallel", 4, "Sample prompts in flight at once with --demo")

	root.AddCommand(newContinueCmd(opts), newHealthCmd(opts))
	return root
}

func (o *rootOptions) client() *client.Client {
	return client.New(o.server)
}

// runDemo asks every sample prompt, at most parallel at a time, and prints
// the answers in sample order.
func runDemo(cmd *cobra.Command, c *client.Client, timeout time.Duration, parallel int) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	answers := make([]string, len(query.SamplePrompts))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(parallel, 1))
	for i, prompt := range query.SamplePrompts {
		g.Go(func() error {
			answer, err := c.Ask(ctx, prompt)
			if err != nil {
				return fmt.Errorf("sample %d: %w", i+1, err)
			}
			answers[i] = answer
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, prompt := range query.SamplePrompts {
		fmt.Fprintf(out, "\nTest case %d:\n", i+1)
		fmt.Fprintln(out, "Input:", prompt)
		fmt.Fprintln(out, "Result:", answers[i])
	}
	return nil
}

func newContinueCmd(opts *rootOptions) *cobra.Command {
	var length int

	cmd := &cobra.Command{
		Use:   "continue <seed>",
		Short: "Continue text from a seed word with the bigram generator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			text, err := opts.client().Continue(ctx, args[0], length)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().IntVarP(&length, "length", "n", 0, "Number of words (server default when 0)")
	return cmd
}

func newHealthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			h, err := opts.client().Health(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) instance=%s uptime=%.0fs vocabulary=%d\n",
				h.Status, h.Service, h.InstanceID, h.UptimeSeconds, h.Vocabulary)
			return nil
		},
	}
}
