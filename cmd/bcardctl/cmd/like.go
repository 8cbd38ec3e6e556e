package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

var likeCmd = &cobra.Command{
	Use:   "like <card-id>",
	Short: "Toggle a like on a card",
	Long: `Toggle the signed-in account's like on a card. The directory decides
the resulting state; the local liked-card cache follows its answer.`,
	Args: cobra.ExactArgs(1),
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

		result, err := env.likes.Toggle(ctx, env.state, sess, args[0])
		if err != nil {
			switch {
			case apperrors.HasCode(err, apperrors.CodeNotFound):
				fatal("no card with id %q", args[0])
			case apperrors.HasCode(err, apperrors.CodeUnauthenticated):
				fatal("the directory rejected the stored session, sign in again")
			default:
				fatal("toggle like: %v", err)
			}
		}

		if jsonOutput {
			printJSON(result)
			return
		}
		if result.Liked {
			fmt.Printf("Liked %q (%d likes)\n", result.Card.Title, len(result.Card.Likes))
		} else {
			fmt.Printf("Unliked %q (%d likes)\n", result.Card.Title, len(result.Card.Likes))
		}
	},
}

func init() {
	rootCmd.AddCommand(likeCmd)
}
