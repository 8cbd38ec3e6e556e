package cmd

import (
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/spec-kit/bcard-portal/internal/bcard"
	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the directory and store the session locally",
	Long: `Sign in against the remote directory. On success the bearer token and
the account object are written to the local state file and reused by every
other command until "bcardctl logout".

The password is read from --password or, when omitted, prompted without echo.`,
	Run: loginHandler,
}

func loginHandler(cmd *cobra.Command, args []string) {
	env, err := newEnv()
	if err != nil {
		fatal("%v", err)
	}
	ctx := cmd.Context()

	password := loginPassword
	if password == "" {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			fatal("read password: %v", err)
		}
		password = string(raw)
	}

	sess, err := env.auth.SignIn(ctx, env.state, bcard.Credentials{
		Email:    loginEmail,
		Password: password,
	})
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeUnauthenticated) {
			fatal("invalid email or password")
		}
		fatal("sign in: %v", err)
	}

	if jsonOutput {
		printJSON(sess)
		return
	}
	who := loginEmail
	if user, err := env.state.User(ctx); err == nil && user != nil {
		who = user.DisplayName()
	}
	fmt.Printf("Signed in as %s", who)
	if sess.IsAdmin {
		fmt.Print(" (admin)")
	}
	fmt.Println()
}

func init() {
	rootCmd.AddCommand(loginCmd)

	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "Account email")
	loginCmd.Flags().StringVarP(&loginPassword, "password", "p", "", "Account password (prompted when omitted)")
	loginCmd.MarkFlagRequired("email") //nolint:errcheck
}
