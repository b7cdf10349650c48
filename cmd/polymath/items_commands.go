package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/api"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/store"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/textutil"
)

const listSummaryWidth = 60

func newItemsCommand(ctx *commandContext) *cobra.Command {
	var statusFlags []string

	cmd := &cobra.Command{
		Use:   "items",
		Short: "List inbox items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, status := range statusFlags {
				if _, ok := store.ParseStatus(status); !ok {
					return fmt.Errorf("unknown status %q (expected new, archived, or deleted)", status)
				}
			}

			resp, err := ctx.client().ListItems(cmd.Context(), statusFlags...)
			if err != nil {
				return err
			}
			if len(resp.Items) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No items found.")
				return nil
			}

			rows := make([][]string, 0, len(resp.Items))
			for _, item := range resp.Items {
				rows = append(rows, []string{
					strconv.FormatInt(item.ID, 10),
					item.Type,
					titleCase(item.Status),
					item.Tags,
					listSummary(item),
					item.CreatedAt.Local().Format("2006-01-02 15:04"),
				})
			}
			headers := []string{"ID", "Type", "Status", "Tags", "Summary", "Created"}
			aligns := []columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignLeft}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&statusFlags, "status", "s", nil, "Filter by status (repeatable)")
	return cmd
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single item in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}

			resp, err := ctx.client().GetItem(cmd.Context(), id)
			if err != nil {
				return err
			}
			printItem(cmd, resp.Item)
			return nil
		},
	}
}

func newStatusSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set-status <id> <new|archived|deleted>",
		Short: "Change an item's lifecycle status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseItemID(args[0])
			if err != nil {
				return err
			}
			status, ok := store.ParseStatus(args[1])
			if !ok {
				return fmt.Errorf("unknown status %q (expected new, archived, or deleted)", args[1])
			}

			resp, err := ctx.client().UpdateStatus(cmd.Context(), id, string(status))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Item %d is now %s\n", resp.Item.ID, resp.Item.Status)
			return nil
		},
	}
}

func parseItemID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid item id %q", raw)
	}
	return id, nil
}

func listSummary(item api.Item) string {
	summary := textutil.CollapseWhitespace(item.Summary)
	if len([]rune(summary)) <= listSummaryWidth {
		return summary
	}
	return textutil.Truncate(summary, listSummaryWidth)
}

func printItem(cmd *cobra.Command, item api.Item) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:      %d\n", item.ID)
	fmt.Fprintf(out, "Type:    %s\n", item.Type)
	fmt.Fprintf(out, "Status:  %s\n", titleCase(item.Status))
	fmt.Fprintf(out, "Tags:    %s\n", item.Tags)
	fmt.Fprintf(out, "Created: %s\n", item.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "Updated: %s\n", item.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(out, "\nSummary:\n%s\n", item.Summary)
	fmt.Fprintf(out, "\nContent:\n%s\n", item.Content)
}
