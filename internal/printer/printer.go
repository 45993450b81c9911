// Package printer writes styled, human-readable command output.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/colonyops/herald/internal/core/styles"
)

type ctxKey struct{}

// Printer writes status lines to a single writer.
type Printer struct {
	out io.Writer
}

// New returns a Printer writing to out.
func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

// NewContext returns a copy of ctx carrying p.
func NewContext(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or one writing to stderr.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok && p != nil {
		return p
	}
	return New(os.Stderr)
}

// Printf writes an unstyled line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Section writes a bold heading.
func (p *Printer) Section(title string) {
	p.Printf("%s", styles.CommandHeaderStyle.Render(title))
}

func (p *Printer) Successf(format string, args ...any) {
	p.Printf("%s %s", styles.SuccessTextStyle.Render(styles.IconSuccess), fmt.Sprintf(format, args...))
}

func (p *Printer) Infof(format string, args ...any) {
	p.Printf("%s %s", styles.MutedStyle.Render(styles.IconInfo), fmt.Sprintf(format, args...))
}

func (p *Printer) Warnf(format string, args ...any) {
	p.Printf("%s %s", styles.WarningTextStyle.Render(styles.IconWarning), fmt.Sprintf(format, args...))
}

func (p *Printer) Errorf(format string, args ...any) {
	p.Printf("%s %s", styles.ErrorTextStyle.Render(styles.IconError), fmt.Sprintf(format, args...))
}
