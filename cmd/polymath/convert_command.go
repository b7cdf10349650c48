package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <id> <task description>",
		Short: "Archive an item and create an actionable task from it",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			taskContent := strings.TrimSpace(strings.Join(args[1:], " "))
			if taskContent == "" {
				return fmt.Errorf("task description is required")
			}

			resp, err := ctx.client().Convert(cmd.Context(), id, taskContent)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Archived item %d and created task %d\n\n", id, resp.Task.ID)
			fmt.Fprintln(out, resp.Task.Content)
			return nil
		},
	}
}

func newRecommendCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "recommend <id>",
		Short: "Show follow-up recommendations for an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			resp, err := ctx.client().Recommendations(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(resp.Recommendations) == 0 {
				fmt.Fprintln(out, "No recommendations available.")
				return nil
			}
			for i, rec := range resp.Recommendations {
				fmt.Fprintf(out, "%d. %s\n", i+1, rec)
			}
			return nil
		},
	}
}
