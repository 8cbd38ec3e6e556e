package cmd

import (
	"github.com/spf13/cobra"

	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

var cardsGetCmd = &cobra.Command{
	Use:   "get <card-id>",
	Short: "Show one card",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv()
		if err != nil {
			fatal("%v", err)
		}

		card, err := env.cards.Get(cmd.Context(), args[0])
		if err != nil {
			if apperrors.HasCode(err, apperrors.CodeNotFound) {
				fatal("no card with id %q", args[0])
			}
			fatal("get card: %v", err)
		}

		if jsonOutput {
			printJSON(card)
			return
		}
		printCardDetail(card)
	},
}

func init() {
	cardsCmd.AddCommand(cardsGetCmd)
}
