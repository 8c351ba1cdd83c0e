// Package scrape implements the capture loop: it periodically executes
// the status command on a remote host, parses the tabular output into
// login entries, persists them, and hands each batch to an observer.
package scrape

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wscrape/wscrape/internal/config"
	"github.com/wscrape/wscrape/internal/errors"
	"github.com/wscrape/wscrape/internal/logger"
	"github.com/wscrape/wscrape/internal/store"
	"github.com/wscrape/wscrape/pkg/sshutil"
)

// dialTimeout bounds the initial TCP connect to the remote host.
const dialTimeout = 10 * time.Second

type scraperState int

const (
	stateIdle scraperState = iota
	stateRunning
	stateStopped
	stateDisposed
)

func (s scraperState) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateRunning:
		return "running"
	case stateStopped:
		return "stopped"
	case stateDisposed:
		return "disposed"
	}
	return "unknown"
}

// Scraper owns the remote session and the store connection for its whole
// lifetime and runs the capture loop as a single background task. No other
// component may use or close either handle. Exactly one cycle is ever in
// flight: the next cycle starts strictly after the previous one finishes,
// including the inter-capture sleep.
type Scraper struct {
	client   sshutil.SSHClient
	st       *store.Store
	repo     store.LoginRepository
	observer Observer
	interval time.Duration
	log      logger.Logger

	mu     sync.Mutex
	state  scraperState
	cancel context.CancelFunc
	done   chan struct{}

	closeOnce sync.Once
}

// Option configures a Scraper.
type Option func(*Scraper)

// WithObserver sets the per-batch observer callback.
func WithObserver(obs Observer) Option {
	return func(s *Scraper) {
		s.observer = obs
	}
}

// WithLogger replaces the default logger.
func WithLogger(log logger.Logger) Option {
	return func(s *Scraper) {
		s.log = log
	}
}

// New assembles a scraper from an already-connected client and store.
// Capturing does not begin until Start.
func New(client sshutil.SSHClient, st *store.Store, interval time.Duration, opts ...Option) *Scraper {
	s := &Scraper{
		client:   client,
		st:       st,
		interval: interval,
		log:      logger.NewEnvLogger("[scrape]"),
		state:    stateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.repo = store.NewLoginRepository(st.DB(), s.log)
	return s
}

// Connect establishes the remote session and the store connection eagerly.
// Both must succeed, otherwise no scraper is returned and anything already
// opened is released. Capturing does not begin until Start.
func Connect(cfg *config.Config, opts ...Option) (*Scraper, error) {
	storeCreds, err := config.LoadCredentials(cfg.Store.Credentials)
	if err != nil {
		return nil, err
	}
	remoteCreds, err := config.LoadCredentials(cfg.Remote.Credentials)
	if err != nil {
		return nil, err
	}

	client, err := sshutil.Dial(cfg.Remote.Host, remoteCreds, dialTimeout)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.Store.DSN, storeCreds, nil)
	if err != nil {
		client.Close()
		return nil, err
	}

	return New(client, st, cfg.Capture.Interval(), opts...), nil
}

// Start begins the repeating capture cycle in a background task.
// Idempotent while running; a no-op once disposed. After Stop, Start runs
// a fresh task over the still-open session and store.
func (s *Scraper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.state {
	case stateRunning:
		s.log.Debug("start ignored: already running")
		return
	case stateDisposed:
		s.log.Warn("start ignored: scraper is disposed")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	s.state = stateRunning

	s.log.Info("capture loop started host=%s interval=%s", s.client.GetHost(), s.interval)
	go s.run(ctx, s.done)
}

// Stop cancels the capture loop and waits for the background task to
// unwind at its next suspension point (the remote I/O wait or the
// inter-capture sleep). The remote session and store connection stay
// open, so a later Start resumes capturing. A no-op unless running —
// in particular, Stop before the first Start does nothing.
func (s *Scraper) Stop() {
	s.mu.Lock()
	if s.state != stateRunning {
		s.mu.Unlock()
		s.log.Debug("stop ignored: state is %s", s.state)
		return
	}
	s.state = stateStopped
	s.cancel()
	done := s.done
	s.mu.Unlock()

	<-done
	s.log.Info("capture loop stopped")
}

// Dispose stops the loop if it is running and releases both owned
// resources. Safe to call multiple times: the remote session and the
// store connection are each closed exactly once.
func (s *Scraper) Dispose() {
	s.Stop()

	s.mu.Lock()
	s.state = stateDisposed
	s.mu.Unlock()

	s.closeOnce.Do(func() {
		if err := s.client.Close(); err != nil {
			s.log.Warn("closing remote session: %v", err)
		}
		if err := s.st.Close(); err != nil {
			s.log.Warn("closing store: %v", err)
		}
		s.log.Info("scraper disposed")
	})
}

// CaptureOnce performs a single synchronous capture cycle. It is meant
// for one-shot use on an idle scraper and refuses to overlap a running
// loop or to run after disposal.
func (s *Scraper) CaptureOnce() ([]store.LoginEntry, error) {
	s.mu.Lock()
	if s.state == stateRunning || s.state == stateDisposed {
		state := s.state
		s.mu.Unlock()
		return nil, errors.New(errors.ErrExec,
			fmt.Sprintf("Capture refused: scraper is %s", state),
			"Use the running loop, or construct a fresh scraper")
	}
	s.mu.Unlock()

	return s.capture(context.Background())
}

// run is the background task: capture, sleep, repeat until cancelled.
// A failed cycle never stops the schedule.
func (s *Scraper) run(ctx context.Context, done chan<- struct{}) {
	defer close(done)

	for {
		if _, err := s.capture(ctx); err != nil && ctx.Err() == nil {
			s.log.Warn("capture cycle abandoned: %v", err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.interval):
		}
	}
}

// capture runs one execute → parse → persist → notify cycle.
func (s *Scraper) capture(ctx context.Context) ([]store.LoginEntry, error) {
	type execResult struct {
		out string
		err error
	}

	// The remote command runs aside the select so a cancellation delivered
	// during the I/O wait abandons the cycle instead of blocking on it.
	// An abandoned cycle persists nothing and notifies nobody.
	ch := make(chan execResult, 1)
	go func() {
		out, err := Execute(s.client)
		ch <- execResult{out: out, err: err}
	}()

	var res execResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}

	if res.err != nil {
		return nil, res.err
	}

	entries := Parse(res.out)

	// Best-effort per-record persistence: one record's failure never
	// aborts the rest of the batch.
	for i := range entries {
		if err := s.repo.Save(&entries[i]); err != nil {
			if store.IsDuplicate(err) {
				s.log.Debug("duplicate entry skipped: %s@%s", entries[i].User, entries[i].TTY)
			} else {
				s.log.Warn("save failed for %s@%s: %v", entries[i].User, entries[i].TTY, err)
			}
		}
	}

	// The observer always receives the full parsed batch, regardless of
	// persistence outcome.
	if s.observer != nil {
		s.observer.ReceiveBatch(entries)
	}

	return entries, nil
}
