package cli

import (
	"fmt"
	"io"
	"sync"
)

// printer is the terminal pages.Notifier.
type printer struct {
	mu sync.Mutex
	w  io.Writer
}

func newPrinter(w io.Writer) *printer {
	return &printer{w: w}
}

func (p *printer) Success(title, message string) {
	p.print(successStyle.Render("✓ "+title), message)
}

func (p *printer) Error(title, message string) {
	p.print(errorStyle.Render("✗ "+title), message)
}

func (p *printer) print(badge, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintf(p.w, "%s %s\n", badge, message)
}
