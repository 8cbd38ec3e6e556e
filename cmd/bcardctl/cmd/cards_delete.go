package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

var cardsDeleteCmd = &cobra.Command{
	Use:   "delete <card-id>",
	Short: "Delete a card (admin accounts only)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv()
		if err != nil {
			fatal("%v", err)
		}
		ctx := cmd.Context()

		sess := loadSession(ctx, env)
		if !sess.IsLoggedIn {
			fatal("sign in first: bcardctl login --email <email>")
		}

		if err := env.cards.Delete(ctx, sess, args[0]); err != nil {
			switch {
			case apperrors.HasCode(err, apperrors.CodeNotFound):
				fatal("no card with id %q", args[0])
			case apperrors.HasCode(err, apperrors.CodeUnauthenticated):
				fatal("the directory rejected the stored session, sign in again")
			default:
				fatal("delete card: %v", err)
			}
		}
		fmt.Printf("Deleted card %s\n", args[0])
	},
}

func init() {
	cardsCmd.AddCommand(cardsDeleteCmd)
}
