package cli

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// busyIndicator animates a spinner on a terminal while extraction runs.
type busyIndicator struct {
	w    io.Writer
	stop chan struct{}
	wg   sync.WaitGroup
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// startBusy starts a spinner on w when w is a terminal. The returned
// indicator is nil otherwise; Stop on nil is a no-op.
func startBusy(w io.Writer, label string) *busyIndicator {
	if !isTerminal(w) {
		return nil
	}

	b := &busyIndicator{w: w, stop: make(chan struct{})}
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			fmt.Fprintf(b.w, "\r%s %s", spinnerFrames[i%len(spinnerFrames)], label)
			select {
			case <-b.stop:
				fmt.Fprint(b.w, "\r\033[K")
				return
			case <-ticker.C:
			}
		}
	}()
	return b
}

// Stop halts the spinner and clears its line.
func (b *busyIndicator) Stop() {
	if b == nil {
		return
	}
	close(b.stop)
	b.wg.Wait()
}
