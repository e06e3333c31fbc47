package fetch

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Section is any loader, regardless of its data type.
type Section interface {
	Section() string
	Refresh(ctx context.Context)
	Close()
}

// Group loads several independent sections of one page together.
type Group struct {
	sections []Section
}

// NewGroup collects sections. Nil entries are skipped.
func NewGroup(sections ...Section) *Group {
	g := &Group{}
	for _, s := range sections {
		if s != nil {
			g.sections = append(g.sections, s)
		}
	}
	return g
}

// Load refreshes every section concurrently and waits for all of them.
// A failing section records its own error and never affects the others,
// so the only error returned is the cancellation of ctx itself.
func (g *Group) Load(ctx context.Context) error {
	eg, gctx := errgroup.WithContext(ctx)
	for _, s := range g.sections {
		eg.Go(func() error {
			s.Refresh(gctx)
			return ctx.Err()
		})
	}
	return eg.Wait()
}

// Close closes every section.
func (g *Group) Close() {
	for _, s := range g.sections {
		s.Close()
	}
}
