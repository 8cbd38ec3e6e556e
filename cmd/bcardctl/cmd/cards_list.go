package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/bcard-portal/internal/service"
)

var listQuery string

var cardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List directory cards",
	Long: `Fetch the full card listing and filter it locally. The query matches
title, phone, country, city and street, case-insensitively.`,
	Run: cardsListHandler,
}

func cardsListHandler(cmd *cobra.Command, args []string) {
	env, err := newEnv()
	if err != nil {
		fatal("%v", err)
	}
	ctx := cmd.Context()

	cards, err := env.cards.List(ctx, listQuery)
	if err != nil {
		fatal("list cards: %v", err)
	}

	sess := loadSession(ctx, env)
	liked := service.LikedSetOf(cards, sess)
	if listQuery == "" {
		liked, err = env.likes.ReconcileLikedSet(ctx, env.state, sess, cards)
		if err != nil {
			fatal("reconcile liked cards: %v", err)
		}
	}

	if jsonOutput {
		printJSON(cards)
		return
	}
	if len(cards) == 0 {
		if listQuery != "" {
			fmt.Printf("No cards matching %q\n", listQuery)
		} else {
			fmt.Println("No cards found")
		}
		return
	}
	printCardTable(cards, liked)
}

func init() {
	cardsCmd.AddCommand(cardsListCmd)

	cardsListCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Filter cards by title, phone or address")
}
