package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spec-kit/bcard-portal/internal/bcard"
	"github.com/spec-kit/bcard-portal/internal/config"
	"github.com/spec-kit/bcard-portal/internal/domain"
	"github.com/spec-kit/bcard-portal/internal/events"
	"github.com/spec-kit/bcard-portal/internal/observability"
	"github.com/spec-kit/bcard-portal/internal/persistence"
	"github.com/spec-kit/bcard-portal/internal/service"
	"github.com/spec-kit/bcard-portal/internal/session"
	apperrors "github.com/spec-kit/bcard-portal/pkg/util"
)

var (
	jsonOutput bool
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "bcardctl",
	Short: "Command-line client for the business card directory",
	Long: `bcardctl talks to the remote business card directory from the terminal.

It keeps a local state file (token, cached account, liked cards) so sessions
survive between invocations, the same way the web portal keeps per-browser
state.

Use "bcardctl [command] --help" for more information about a specific command.`,
}

// Execute executes the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Emit machine-readable JSON instead of tables")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log outgoing directory calls")
}

// cliEnv bundles everything a subcommand needs: the local state manager and
// the services wired against the remote directory.
type cliEnv struct {
	cfg    *config.Config
	logger *zap.Logger
	state  *session.Manager
	cards  *service.CardService
	likes  *service.LikeService
	auth   *service.AuthService
}

func newEnv() (*cliEnv, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := zap.NewNop()
	if verbose {
		logger, err = observability.NewLogger(config.LoggerConfig{Level: "debug"})
		if err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
	}

	store := persistence.NewFileStore(cfg.State.FilePath)
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	api := bcard.NewClient(cfg.Remote, logger, metrics)

	return &cliEnv{
		cfg:    cfg,
		logger: logger,
		state:  session.NewManager(store),
		cards:  service.NewCardService(api, dispatcher, logger),
		likes:  service.NewLikeService(api, dispatcher, logger),
		auth:   service.NewAuthService(api, dispatcher, logger),
	}, nil
}

// loadSession loads the stored session, tolerating tokens whose payload does
// not decode (they still authenticate against the directory).
func loadSession(ctx context.Context, env *cliEnv) session.Session {
	sess, err := env.state.Load(ctx)
	if err != nil && !apperrors.HasCode(err, apperrors.CodeDecodeFailure) {
		fatal("load state: %v", err)
	}
	if err != nil {
		env.logger.Warn("stored token payload did not decode", zap.Error(err))
	}
	return sess
}

// canPublish mirrors the portal's create gate: admins, tokens carrying the
// business claim, and cached business profiles.
func canPublish(ctx context.Context, env *cliEnv, sess session.Session) bool {
	if sess.IsAdmin || sess.IsBusiness {
		return true
	}
	user, err := env.state.User(ctx)
	return err == nil && user != nil && user.IsBusiness
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fatal("encode JSON: %v", err)
	}
}

func printCardTable(cards []domain.Card, liked session.LikedSet) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPHONE\tCITY\tLIKES\tLIKED")
	for _, card := range cards {
		mark := ""
		if liked.Contains(card.ID) {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
			card.ID, card.Title, card.Phone, card.Address.City, len(card.Likes), mark)
	}
	w.Flush()
}

func printCardDetail(card *domain.Card) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", card.ID)
	fmt.Fprintf(w, "Title:\t%s\n", card.Title)
	if card.Subtitle != "" {
		fmt.Fprintf(w, "Subtitle:\t%s\n", card.Subtitle)
	}
	if card.Description != "" {
		fmt.Fprintf(w, "Description:\t%s\n", card.Description)
	}
	fmt.Fprintf(w, "Phone:\t%s\n", card.Phone)
	if card.Email != "" {
		fmt.Fprintf(w, "Email:\t%s\n", card.Email)
	}
	if card.Web != "" {
		fmt.Fprintf(w, "Web:\t%s\n", card.Web)
	}
	fmt.Fprintf(w, "Address:\t%s %s, %s, %s\n",
		card.Address.Street, string(card.Address.HouseNumber), card.Address.City, card.Address.Country)
	if card.BizNumber != 0 {
		fmt.Fprintf(w, "Biz number:\t%d\n", card.BizNumber)
	}
	fmt.Fprintf(w, "Likes:\t%d\n", len(card.Likes))
	w.Flush()
}
