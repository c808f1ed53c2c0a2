// Package frontend runs the front-end development server alongside the API.
package frontend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
)

// Status is the dev server process state.
type Status string

const (
	StatusStopped Status = "stopped"
	StatusRunning Status = "running"
	StatusExited  Status = "exited"
)

// ErrExited is returned while waiting for readiness if the process is gone.
var ErrExited = errors.New("dev server process exited")

// Config holds dev server settings.
type Config struct {
	// Command is the program and its arguments (default: yarn start).
	Command []string
	// Dir is the working directory for the command.
	Dir string
	// URL is polled until it answers (default: http://localhost:3000).
	URL string
	// ReadyTimeout bounds WaitReady (default: 60s).
	ReadyTimeout time.Duration
	// PollInterval is the delay between readiness probes (default: 1s).
	PollInterval time.Duration
	// Stdout and Stderr receive process output (default: os.Stdout/os.Stderr).
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// DevServer supervises a single front-end dev server process.
type DevServer struct {
	cfg    Config
	logger *slog.Logger

	mu   sync.Mutex
	cmd  *exec.Cmd
	done chan struct{}
}

// NewDevServer validates cfg and applies defaults.
func NewDevServer(cfg Config) (*DevServer, error) {
	if len(cfg.Command) == 0 {
		cfg.Command = []string{"yarn", "start"}
	}
	if cfg.URL == "" {
		cfg.URL = "http://localhost:3000"
	}
	if cfg.ReadyTimeout <= 0 {
		cfg.ReadyTimeout = 60 * time.Second
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if _, err := exec.LookPath(cfg.Command[0]); err != nil {
		return nil, fmt.Errorf("dev server command %q not found: %w", cfg.Command[0], err)
	}

	return &DevServer{cfg: cfg, logger: cfg.Logger}, nil
}

// URL returns the address the dev server is expected to serve on.
func (d *DevServer) URL() string {
	return d.cfg.URL
}

// Start launches the process and waits until it serves requests.
func (d *DevServer) Start(ctx context.Context) error {
	d.mu.Lock()
	if d.cmd != nil && d.statusLocked() == StatusRunning {
		d.mu.Unlock()
		return nil
	}

	cmd := exec.Command(d.cfg.Command[0], d.cfg.Command[1:]...)
	cmd.Dir = d.cfg.Dir
	cmd.Stdout = d.cfg.Stdout
	cmd.Stderr = d.cfg.Stderr
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		d.mu.Unlock()
		return fmt.Errorf("failed to start dev server: %w", err)
	}

	done := make(chan struct{})
	d.cmd = cmd
	d.done = done
	d.mu.Unlock()

	d.logger.Info("dev server started", "command", d.cfg.Command, "pid", cmd.Process.Pid)

	go func() {
		if err := cmd.Wait(); err != nil {
			d.logger.Debug("dev server exited", "error", err)
		}
		close(done)
	}()

	if err := d.WaitReady(ctx); err != nil {
		_ = d.Stop(context.Background())
		return err
	}
	d.logger.Info("dev server is ready", "url", d.cfg.URL)
	return nil
}

// WaitReady polls the dev server URL until it answers with a non-5xx status.
func (d *DevServer) WaitReady(ctx context.Context) error {
	d.mu.Lock()
	done := d.done
	d.mu.Unlock()

	httpClient := &http.Client{Timeout: 2 * time.Second}
	attempts := uint(d.cfg.ReadyTimeout / d.cfg.PollInterval)
	if attempts == 0 {
		attempts = 1
	}

	return retry.Do(
		func() error {
			if done != nil {
				select {
				case <-done:
					return retry.Unrecoverable(ErrExited)
				default:
				}
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.cfg.URL, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			resp, err := httpClient.Do(req)
			if err != nil {
				return err
			}
			_ = resp.Body.Close()
			if resp.StatusCode >= http.StatusInternalServerError {
				return fmt.Errorf("unhealthy status: %d", resp.StatusCode)
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(d.cfg.PollInterval),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
}

// Stop terminates the process and its children, escalating to a kill if it
// has not exited by the time ctx is done (or after 10s).
func (d *DevServer) Stop(ctx context.Context) error {
	d.mu.Lock()
	cmd, done := d.cmd, d.done
	d.mu.Unlock()

	if cmd == nil || cmd.Process == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	default:
	}

	if err := terminate(cmd); err != nil && !errors.Is(err, os.ErrProcessDone) {
		d.logger.Warn("dev server terminate failed", "error", err)
	}

	timer := time.NewTimer(10 * time.Second)
	defer timer.Stop()

	select {
	case <-done:
	case <-ctx.Done():
		_ = kill(cmd)
		<-done
	case <-timer.C:
		_ = kill(cmd)
		<-done
	}
	d.logger.Info("dev server stopped")
	return nil
}

// Status reports the process state.
func (d *DevServer) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.statusLocked()
}

func (d *DevServer) statusLocked() Status {
	if d.cmd == nil {
		return StatusStopped
	}
	select {
	case <-d.done:
		return StatusExited
	default:
		return StatusRunning
	}
}
