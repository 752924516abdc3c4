package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/client/client"
	"github.com/dmitrijs2005/vendorrisk/internal/client/config"
	"github.com/dmitrijs2005/vendorrisk/internal/client/dashboard"
	"github.com/dmitrijs2005/vendorrisk/internal/client/review"
	"github.com/dmitrijs2005/vendorrisk/internal/client/submission"
	"github.com/dmitrijs2005/vendorrisk/internal/client/ui"
	"github.com/dmitrijs2005/vendorrisk/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
	ModeSample  Mode = "sample"
)

// backend is what the review commands need from the data side.
type backend interface {
	dashboard.DataSource
	DocumentURL(ctx context.Context, id, name string) (string, error)
}

type pinger interface {
	Ping(ctx context.Context) error
}

// newClient is a test seam for the gRPC client constructor.
var newClient = func(addr string) (client.Client, error) {
	return client.NewReviewClientService(addr)
}

type App struct {
	config    *config.Config
	logger    logging.Logger
	backend   backend
	pinger    pinger
	closer    io.Closer
	dashboard *dashboard.Dashboard
	modal     *review.Modal
	intake    *submission.Controller
	reader    *bufio.Reader
	out       io.Writer
	color     bool

	mu   sync.RWMutex
	mode Mode
}

// NewApp connects to the configured server, or serves the built-in sample
// data when c.Offline is set.
func NewApp(c *config.Config) (*App, error) {
	logger := logging.NewJSON(os.Stderr, slog.LevelWarn)

	if c.Offline {
		src := dashboard.NewMemorySource(assessment.SampleAssessments())
		a := newApp(c, logger, src, submission.NewDelayedSubmitter(src), os.Stdin, os.Stdout)
		a.mode = ModeSample
		return a, nil
	}

	cl, err := newClient(c.ServerEndpointAddr)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", c.ServerEndpointAddr, err)
	}

	a := newApp(c, logger, cl, cl, os.Stdin, os.Stdout)
	a.pinger = cl
	a.closer = cl
	return a, nil
}

func newApp(c *config.Config, logger logging.Logger, b backend, s submission.Submitter, in io.Reader, out io.Writer) *App {
	return &App{
		config:    c,
		logger:    logger,
		backend:   b,
		dashboard: dashboard.New(b),
		intake:    submission.NewController(s, logger),
		reader:    bufio.NewReader(in),
		out:       out,
		color:     ui.ColorEnabled(out),
		mode:      ModeOffline,
	}
}

// Run loads the dashboard and blocks in the REPL until the user exits or ctx
// is done.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.close()

	fmt.Fprintln(a.out, "Vendor Risk Assessments (type 'help' for commands)")

	if a.pinger != nil {
		a.checkOnline(ctx)
		go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)
	}

	_ = a.Refresh(ctx)

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) close() {
	if a.closer == nil {
		return
	}
	if err := a.closer.Close(); err != nil {
		a.logger.Warn(context.Background(), "close client", "error", err.Error())
	}
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()

	if changed {
		a.logger.Info(context.Background(), "mode changed", "mode", string(mode))
		fmt.Fprintf(a.out, "Switched to %s mode\n", mode)
	}
}

func (a *App) getStatus() string {
	s := string(a.Mode())
	f := a.dashboard.Filter()
	if f.Search != "" {
		s += fmt.Sprintf(" search=%q", f.Search)
	}
	if f.Status != nil {
		s += " status=" + f.Status.String()
	}
	if a.modal != nil {
		s += " open=" + a.modal.Assessment().ID
	}
	return "(" + s + ")"
}

func (a *App) checkOnline(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	err := a.pinger.Ping(ctx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
}

// StartOnlineStatusWatcher pings the server every interval until ctx is done.
// A non-positive interval disables the watcher.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		a.logger.Warn(ctx, "online status watcher disabled", "interval", interval.String())
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}
