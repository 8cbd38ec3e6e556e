package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the stored session",
	Long: `Clear the token, cached account and liked-card set from the local state
file. The dark-mode preference survives.`,
	Run: func(cmd *cobra.Command, args []string) {
		env, err := newEnv()
		if err != nil {
			fatal("%v", err)
		}
		ctx := cmd.Context()

		sess := loadSession(ctx, env)
		if err := env.auth.SignOut(ctx, env.state, sess); err != nil {
			fatal("sign out: %v", err)
		}
		fmt.Println("Signed out")
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
