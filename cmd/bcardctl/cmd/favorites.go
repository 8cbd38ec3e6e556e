package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/bcard-portal/internal/service"
)

var favoritesCmd = &cobra.Command{
	Use:   "favorites",
	Short: "List cards liked by the signed-in account",
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv()
		if err != nil {
			fatal("%v", err)
		}
		ctx := cmd.Context()

		sess := loadSession(ctx, env)
		cards, err := env.likes.Favorites(ctx, sess)
		if err != nil {
			if errors.Is(err, service.ErrNotLoggedIn) {
				fatal("sign in first: bcardctl login --email <email>")
			}
			fatal("list favorites: %v", err)
		}

		liked, err := env.likes.ReconcileLikedSet(ctx, env.state, sess, cards)
		if err != nil {
			fatal("reconcile liked cards: %v", err)
		}

		if jsonOutput {
			printJSON(cards)
			return
		}
		if len(cards) == 0 {
			fmt.Println("No liked cards yet")
			return
		}
		printCardTable(cards, liked)
	},
}

func init() {
	rootCmd.AddCommand(favoritesCmd)
}
