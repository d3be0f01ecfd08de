package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a status line with the elapsed time until it is stopped
// or its context ends.
type spinner struct {
	w       io.Writer
	message string
	began   time.Time

	mu    sync.Mutex
	width int // visible width of the last frame

	quit chan struct{}
	done chan struct{}
	once sync.Once
}

// startSpinner starts a spinner on w.
func startSpinner(ctx context.Context, w io.Writer, message string) *spinner {
	s := &spinner{
		w:       w,
		message: message,
		began:   time.Now(),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go s.run(ctx)
	return s
}

func (s *spinner) run(ctx context.Context) {
	defer close(s.done)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			s.clear()
			return
		case <-s.quit:
			return
		case <-ticker.C:
			s.draw(spinnerFrames[i%len(spinnerFrames)])
		}
	}
}

func (s *spinner) draw(frame string) {
	elapsed := time.Since(s.began).Round(100 * time.Millisecond)
	line := styleAccent.Render(frame) + " " + styleDim.Render(fmt.Sprintf("%s %s", s.message, elapsed))

	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprint(s.w, "\r"+line)
	s.width = lipgloss.Width(line)
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprint(s.w, "\r"+strings.Repeat(" ", s.width)+"\r")
		s.width = 0
	}
}

// stop ends the animation and clears the line. It is safe to call more than once.
func (s *spinner) stop() {
	s.once.Do(func() { close(s.quit) })
	<-s.done
	s.clear()
}

// fail stops the spinner and prints message as an error.
func (s *spinner) fail(message string) {
	s.stop()
	printError("%s", message)
}
