package cmd

import (
	"github.com/spf13/cobra"
)

// cardsCmd groups the card directory subcommands.
var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Browse and manage business cards",
	Long: `Browse the remote card directory and, when signed in with the right
account, create or delete cards.

Examples:
  bcardctl cards list
  bcardctl cards list --query "tel aviv"
  bcardctl cards get 64f1c2...
  bcardctl cards create --title "Acme" --phone 050-1234567 --country IL --city "Tel Aviv" --street Rothschild --house-number 1 --zip 61000
  bcardctl cards delete 64f1c2...`,
}

func init() {
	rootCmd.AddCommand(cardsCmd)
}
