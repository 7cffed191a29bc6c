package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hyecheol/ragchat/internal/models"
)

var ingestUserID string

var ingestCmd = &cobra.Command{
	Use:   "ingest <object-key>",
	Short: "Index an uploaded document and print its summary",
	Long: `Ingest loads the object from the configured S3 bucket, chunks and
indexes it into a fresh collection, and prints the generated summary.
Supported extensions: pdf, txt, csv.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svcs, err := buildServices(ctx)
		if err != nil {
			return err
		}

		resp, err := svcs.dispatcher.Handle(ctx, models.Request{
			UserID:    ingestUserID,
			RequestID: uuid.NewString(),
			Type:      models.RequestTypeDocument,
			Body:      args[0],
		})
		if err != nil {
			return err
		}

		fmt.Println(resp.Msg)
		return nil
	},
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestUserID, "user", "u", "cli", "user id owning the new collection")
	rootCmd.AddCommand(ingestCmd)
}
