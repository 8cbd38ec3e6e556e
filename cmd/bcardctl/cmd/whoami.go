package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the stored session",
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv()
		if err != nil {
			fatal("%v", err)
		}
		ctx := cmd.Context()

		sess := loadSession(ctx, env)
		if !sess.IsLoggedIn {
			fmt.Println("Not signed in")
			return
		}

		user, err := env.state.User(ctx)
		if err != nil {
			fatal("load cached account: %v", err)
		}

		if jsonOutput {
			printJSON(map[string]any{
				"isLoggedIn": sess.IsLoggedIn,
				"isAdmin":    sess.IsAdmin,
				"userId":     sess.UserID,
				"user":       user,
			})
			return
		}

		if user != nil {
			fmt.Printf("Signed in as %s (%s)\n", user.DisplayName(), user.Email)
		} else {
			fmt.Println("Signed in")
		}
		if sess.UserID != "" {
			fmt.Printf("User id: %s\n", sess.UserID)
		}
		if sess.IsAdmin {
			fmt.Println("Role: admin")
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
