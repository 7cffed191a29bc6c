package cli

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hyecheol/ragchat/internal/models"
)

var askUserID string

var askCmd = &cobra.Command{
	Use:   "ask <query>",
	Short: "Send one text query through the pipeline",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		svcs, err := buildServices(ctx)
		if err != nil {
			return err
		}

		resp, err := svcs.dispatcher.Handle(ctx, models.Request{
			UserID:    askUserID,
			RequestID: uuid.NewString(),
			Type:      models.RequestTypeText,
			Body:      strings.Join(args, " "),
		})
		if err != nil {
			return err
		}

		fmt.Println(resp.Msg)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&askUserID, "user", "u", "cli", "user id for conversation memory")
	rootCmd.AddCommand(askCmd)
}
