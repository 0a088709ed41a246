package niri

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mitchellh/go-ps"
	"golang.org/x/time/rate"

	"github.com/FrozenTear/Nirify-sub003/internal/constants"
	"github.com/FrozenTear/Nirify-sub003/internal/logger"
)

var (
	processesFunc = ps.Processes
	lookPathFunc  = exec.LookPath
)

// Running reports whether a compositor process exists
func Running() bool {
	procs, err := processesFunc()
	if err != nil {
		return false
	}
	for _, p := range procs {
		if p.Executable() == constants.CompositorProcess {
			return true
		}
	}
	return false
}

type configLoader interface {
	LoadConfigFile(ctx context.Context) error
}

// Reloader asks the compositor to reload after saves. Requests are
// dropped, not queued, when they come faster than the interval.
type Reloader struct {
	client  configLoader
	limiter *rate.Limiter
	enabled bool
	log     *log.Logger
	running func() bool
	wg      sync.WaitGroup
}

func NewReloader(client *Client, enabled bool, interval time.Duration, l *log.Logger) *Reloader {
	if interval <= 0 {
		interval = constants.DefaultReloadInterval
	}
	return &Reloader{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
		enabled: enabled,
		log:     logger.OrDefault(l),
		running: Running,
	}
}

// Notify requests a reload in the background. It never blocks on the
// compositor and never returns an error; failures are logged.
func (r *Reloader) Notify() {
	if r == nil || !r.enabled {
		return
	}
	if !r.limiter.Allow() {
		r.log.Debug("reload skipped, rate limited")
		return
	}
	if !r.running() {
		r.log.Debug("reload skipped, compositor not running")
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := r.client.LoadConfigFile(ctx); err != nil {
			r.log.Warn("compositor reload failed", "err", err)
		}
	}()
}

// Wait blocks until in-flight reload requests finish
func (r *Reloader) Wait() {
	if r != nil {
		r.wg.Wait()
	}
}

var ErrNotInstalled = errors.New("niri binary not found in PATH")

// Validate runs `niri validate` on path and returns its combined output
func Validate(ctx context.Context, path string) (string, error) {
	bin, err := lookPathFunc(constants.CompositorProcess)
	if err != nil {
		return "", ErrNotInstalled
	}
	out, err := exec.CommandContext(ctx, bin, "validate", "-c", path).CombinedOutput()
	return strings.TrimSpace(string(out)), err
}
