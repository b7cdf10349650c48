package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chukwumaonyeije/polymaths-inbox/internal/api"
	"github.com/chukwumaonyeije/polymaths-inbox/internal/store"
)

func newAddCommand(ctx *commandContext) *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "add <content>",
		Short: "Submit a note, URL, or PDF path for ingestion",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content := strings.TrimSpace(strings.Join(args, " "))
			if content == "" {
				return fmt.Errorf("submission content is required")
			}

			itemType, ok := store.ParseItemType(typeFlag)
			if !ok {
				return fmt.Errorf("unknown item type %q (expected text, url, or pdf)", typeFlag)
			}

			req := api.SubmitRequest{Type: string(itemType), Content: content}
			if itemType == store.TypePDF {
				// PDF submissions reference a file on the daemon host.
				absPath, err := filepath.Abs(content)
				if err != nil {
					return fmt.Errorf("resolve pdf path: %w", err)
				}
				req.Content = absPath
				req.FilePath = absPath
			}

			resp, err := ctx.client().Submit(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Accepted %s submission (job %s)\n", itemType, resp.JobID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&typeFlag, "type", "t", "text", "Submission type: text, url, or pdf")
	return cmd
}

func newUploadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file.pdf>",
		Short: "Upload a PDF file to the daemon for ingestion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := ctx.client().Upload(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %s (job %s)\n", filepath.Base(args[0]), resp.JobID)
			return nil
		},
	}
}
