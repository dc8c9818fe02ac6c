// Package cli implements the interactive terminal views of the msgquota
// client: login/signup prompts, the user dashboard and the admin
// dashboard, all driven by a small REPL.
package cli

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/dmitrijs2005/msgquota/internal/client/api"
	"github.com/dmitrijs2005/msgquota/internal/client/config"
	"github.com/dmitrijs2005/msgquota/internal/client/services"
	"github.com/dmitrijs2005/msgquota/internal/client/session"
	"github.com/dmitrijs2005/msgquota/internal/logging"
)

// App wires the view-model services to the terminal.
type App struct {
	config *config.Config
	log    logging.Logger
	api    api.API
	auth   *services.AuthService

	reader *bufio.Reader
	out    io.Writer

	dashboard *services.Dashboard
	admin     *services.AdminBoard
	poller    *services.Poller
	stopPoll  context.CancelFunc
}

// NewApp builds the application: session store, API client, auth service.
// A previously persisted session is restored automatically.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	store, err := session.NewFileStore(cfg.SessionFile)
	if err != nil {
		return nil, err
	}

	apiClient := api.New(cfg.ServerBaseURL)

	return &App{
		config: cfg,
		log:    log,
		api:    apiClient,
		auth:   services.NewAuthService(apiClient, store, log),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}, nil
}

// Run starts the REPL and blocks until the user exits or the context is
// cancelled.
func (a *App) Run(ctx context.Context) {
	a.syncViews(ctx)
	defer a.teardownViews()

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.auth.Session().LoggedIn()
}

func (a *App) isAdmin() bool {
	return a.auth.Session().IsAdmin()
}

func (a *App) getStatus() string {
	sess := a.auth.Session()
	if !sess.LoggedIn() {
		return ""
	}
	return "(" + string(sess.Role) + ")"
}

// syncViews aligns the view state with the session: builds the dashboard
// matching the role on login, tears everything down on logout. The poller
// re-fetches the active view every PollInterval; a forced logout is
// noticed here on the next REPL iteration.
func (a *App) syncViews(ctx context.Context) {
	loggedIn := a.auth.Session().LoggedIn()

	if !loggedIn {
		a.teardownViews()
		return
	}
	if a.dashboard != nil || a.admin != nil {
		return
	}

	var view services.Refresher
	if a.isAdmin() {
		a.admin = services.NewAdminBoard(a.api, a.log)
		view = a.admin
	} else {
		a.dashboard = services.NewDashboard(a.api, a.log)
		view = a.dashboard
	}

	pollCtx, cancel := context.WithCancel(ctx)
	a.stopPoll = cancel
	a.poller = services.NewPoller(view, a.config.PollInterval, a.log)
	go a.poller.Run(pollCtx)
}

// teardownViews stops the poller and drops view state. In-flight requests
// are not aborted; their responses simply have no live state container to
// land in.
func (a *App) teardownViews() {
	if a.stopPoll != nil {
		a.stopPoll()
		a.stopPoll = nil
	}
	a.poller = nil
	a.dashboard = nil
	a.admin = nil
}

// wake asks the poller for an immediate refresh, the terminal analog of
// the page regaining foreground visibility.
func (a *App) wake() {
	if a.poller != nil {
		a.poller.Wake()
	}
}
