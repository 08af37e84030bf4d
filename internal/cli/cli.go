// Package cli implements the boardctl command line client.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"issueboard/internal/board"
	"issueboard/internal/client"
	"issueboard/internal/logging"
	"issueboard/internal/render"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "BOARDCTL"

type app struct {
	v      *viper.Viper
	out    io.Writer
	logger *slog.Logger
}

// NewRootCommand builds boardctl. Flags may also be given as BOARDCTL_*
// environment variables, e.g. BOARDCTL_TOKEN.
func NewRootCommand(out io.Writer) *cobra.Command {
	a := &app{v: viper.New(), out: out, logger: logging.Discard()}

	root := &cobra.Command{
		Use:           "boardctl",
		Short:         "Work with your issue board from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.logger = logging.New(os.Stderr, a.v.GetString("log-level"), "text")
			return nil
		},
	}
	root.SetOut(out)

	flags := root.PersistentFlags()
	flags.String("server", "http://localhost:8080", "Board API base URL")
	flags.String("token", "", "Bearer token from register or login")
	flags.Duration("timeout", 10*time.Second, "Request timeout")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")

	a.v.SetEnvPrefix(envPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	_ = a.v.BindPFlags(flags)

	root.AddCommand(a.registerCmd())
	root.AddCommand(a.loginCmd())
	root.AddCommand(a.whoamiCmd())
	root.AddCommand(a.showCmd())
	root.AddCommand(a.dragCmd())
	root.AddCommand(a.columnCmd())
	root.AddCommand(a.issueCmd())

	return root
}

func (a *app) client() *client.Client {
	return client.New(
		a.v.GetString("server"),
		client.WithToken(a.v.GetString("token")),
		client.WithHTTPClient(&http.Client{Timeout: a.v.GetDuration("timeout")}),
	)
}

// loadBoard returns actions over a freshly fetched board.
func (a *app) loadBoard(ctx context.Context) (*board.Actions, *board.Store, *client.Client, error) {
	c := a.client()
	store := board.NewStore()
	actions := board.NewActions(store, c, a.logger)
	if err := actions.Refresh(ctx); err != nil {
		return nil, nil, nil, err
	}
	return actions, store, c, nil
}

func (a *app) printBoard(store *board.Store, view render.View) {
	renderer := render.NewRenderer(render.DefaultTheme, 28)
	fmt.Fprintln(a.out, renderer.Board(store.Snapshot(), view))
}

func parseID(raw, what string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s ID %q", what, raw)
	}
	return id, nil
}
