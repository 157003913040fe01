package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerOut receives spinner frames. Frames are only drawn on a terminal.
var spinnerOut io.Writer = os.Stderr

// spinner animates a status line on stderr while a pipeline operation runs.
// It stops by itself when its context ends.
type spinner struct {
	message string
	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{}
	once    sync.Once
	mu      sync.Mutex
}

// startSpinner begins animating message until Stop or ctx ends.
func startSpinner(ctx context.Context, message string) *spinner {
	sctx, cancel := context.WithCancel(ctx)
	s := &spinner{message: message, parent: ctx, ctx: sctx, cancel: cancel, stopped: make(chan struct{})}
	go s.run(drawable(spinnerOut))
	return s
}

// drawable reports whether w is a terminal.
func drawable(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

func (s *spinner) run(draw bool) {
	defer close(s.stopped)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.ctx.Done():
			if draw {
				s.clear()
			}
			return
		case <-ticker.C:
			if !draw {
				continue
			}
			s.mu.Lock()
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(spinnerOut, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
			s.mu.Unlock()
		}
	}
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(spinnerOut, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// Stop halts the animation and waits for the line to be cleared. It is
// safe to call more than once.
func (s *spinner) Stop() {
	s.once.Do(s.cancel)
	<-s.stopped
}

// StopWithSuccess stops and prints a success line.
func (s *spinner) StopWithSuccess(format string, args ...any) {
	s.Stop()
	printSuccess(format, args...)
}

// StopWithError stops and prints a failure line.
func (s *spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Interrupted reports whether the caller's context ended.
func (s *spinner) Interrupted() bool {
	return s.parent.Err() != nil
}
