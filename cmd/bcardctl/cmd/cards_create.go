package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/bcard-portal/internal/bcard"
	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

var createInput bcard.CardInput

var cardsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new card (business accounts only)",
	Run:   cardsCreateHandler,
}

func cardsCreateHandler(cmd *cobra.Command, args []string) {
	env, err := newEnv()
	if err != nil {
		fatal("%v", err)
	}
	ctx := cmd.Context()

	sess := loadSession(ctx, env)
	if !sess.IsLoggedIn {
		fatal("sign in first: bcardctl login --email <email>")
	}
	if !canPublish(ctx, env, sess) {
		fatal("a business account is required to create cards")
	}

	card, err := env.cards.Create(ctx, sess, createInput)
	if err != nil {
		switch {
		case apperrors.HasCode(err, apperrors.CodeValidationFailed):
			clientErr := apperrors.ToClientError(err)
			fmt.Println("Invalid input:")
			for field, tag := range clientErr.Details {
				fmt.Printf("  %s: %v\n", field, tag)
			}
			fatal("card rejected")
		case apperrors.HasCode(err, apperrors.CodeUnauthenticated):
			fatal("the directory rejected the stored session, sign in again")
		default:
			fatal("create card: %v", err)
		}
	}

	if jsonOutput {
		printJSON(card)
		return
	}
	fmt.Printf("Created card %s (%s)\n", card.ID, card.Title)
}

func init() {
	cardsCmd.AddCommand(cardsCreateCmd)

	cardsCreateCmd.Flags().StringVar(&createInput.Title, "title", "", "Card title")
	cardsCreateCmd.Flags().StringVar(&createInput.Subtitle, "subtitle", "", "Card subtitle")
	cardsCreateCmd.Flags().StringVar(&createInput.Description, "description", "", "Card description")
	cardsCreateCmd.Flags().StringVar(&createInput.Phone, "phone", "", "Business phone")
	cardsCreateCmd.Flags().StringVar(&createInput.Email, "email", "", "Business email")
	cardsCreateCmd.Flags().StringVar(&createInput.Web, "web", "", "Business website")
	cardsCreateCmd.Flags().StringVar(&createInput.Image.URL, "image-url", "", "Illustration URL")
	cardsCreateCmd.Flags().StringVar(&createInput.Image.Alt, "image-alt", "", "Illustration alt text")
	cardsCreateCmd.Flags().StringVar(&createInput.Address.State, "state", "", "State")
	cardsCreateCmd.Flags().StringVar(&createInput.Address.Country, "country", "", "Country")
	cardsCreateCmd.Flags().StringVar(&createInput.Address.City, "city", "", "City")
	cardsCreateCmd.Flags().StringVar(&createInput.Address.Street, "street", "", "Street")
	cardsCreateCmd.Flags().StringVar(&createInput.Address.HouseNumber, "house-number", "", "House number")
	cardsCreateCmd.Flags().StringVar(&createInput.Address.Zip, "zip", "", "Zip code")

	cardsCreateCmd.MarkFlagRequired("title") //nolint:errcheck
	cardsCreateCmd.MarkFlagRequired("phone") //nolint:errcheck
}
