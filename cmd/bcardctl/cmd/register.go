package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/bcard-portal/internal/bcard"
	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

var registerInput bcard.RegisterInput

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a directory account",
	Long: `Create an account on the remote directory. Registration does not sign
in; run "bcardctl login" afterwards.`,
	Run: registerHandler,
}

func registerHandler(cmd *cobra.Command, args []string) {
	env, err := newEnv()
	if err != nil {
		fatal("%v", err)
	}

	user, err := env.auth.Register(cmd.Context(), registerInput)
	if err != nil {
		switch {
		case apperrors.HasCode(err, apperrors.CodeConflict):
			fatal("an account with that email already exists")
		case apperrors.HasCode(err, apperrors.CodeValidationFailed):
			clientErr := apperrors.ToClientError(err)
			fmt.Println("Invalid input:")
			for field, tag := range clientErr.Details {
				fmt.Printf("  %s: %v\n", field, tag)
			}
			fatal("registration rejected")
		default:
			fatal("register: %v", err)
		}
	}

	if jsonOutput {
		printJSON(user)
		return
	}
	if user != nil {
		fmt.Printf("Registered %s\n", user.Email)
	} else {
		fmt.Println("Registered")
	}
}

func init() {
	rootCmd.AddCommand(registerCmd)

	registerCmd.Flags().StringVar(&registerInput.Name.First, "first-name", "", "First name")
	registerCmd.Flags().StringVar(&registerInput.Name.Middle, "middle-name", "", "Middle name")
	registerCmd.Flags().StringVar(&registerInput.Name.Last, "last-name", "", "Last name")
	registerCmd.Flags().StringVarP(&registerInput.Email, "email", "e", "", "Account email")
	registerCmd.Flags().StringVarP(&registerInput.Password, "password", "p", "", "Account password")
	registerCmd.Flags().StringVar(&registerInput.Phone, "phone", "", "Phone number")
	registerCmd.Flags().StringVar(&registerInput.Address.State, "state", "", "State")
	registerCmd.Flags().StringVar(&registerInput.Address.Country, "country", "", "Country")
	registerCmd.Flags().StringVar(&registerInput.Address.City, "city", "", "City")
	registerCmd.Flags().StringVar(&registerInput.Address.Street, "street", "", "Street")
	registerCmd.Flags().StringVar(&registerInput.Address.HouseNumber, "house-number", "", "House number")
	registerCmd.Flags().StringVar(&registerInput.Address.Zip, "zip", "", "Zip code")
	registerCmd.Flags().StringVar(&registerInput.Image.URL, "image-url", "", "Avatar URL")
	registerCmd.Flags().StringVar(&registerInput.Image.Alt, "image-alt", "", "Avatar alt text")
	registerCmd.Flags().BoolVar(&registerInput.IsBusiness, "business", false, "Register as a business account")

	registerCmd.MarkFlagRequired("email")    //nolint:errcheck
	registerCmd.MarkFlagRequired("password") //nolint:errcheck
}
