package tabledraw

import (
	"fmt"
	"io"
	"sort"
	"sync"
)

// Sink receives drawing primitives, typically to persist them in a vector
// file format. The table never inspects what a sink does with them.
type Sink interface {
	AddLine(l Line)
	AddSolid(s Solid)
	AddText(t Text)
	AddBlockRef(b BlockRef)
}

// WriterSink is a Sink that can serialize what it received.
type WriterSink interface {
	Sink

	// WriteTo writes the accumulated output to w.
	WriteTo(w io.Writer) (int64, error)
}

// Recorder is a Sink that keeps primitives in arrival order.
// The zero value is ready to use.
type Recorder struct {
	prims []Primitive
}

func (r *Recorder) AddLine(l Line)         { r.prims = append(r.prims, l) }
func (r *Recorder) AddSolid(s Solid)       { r.prims = append(r.prims, s) }
func (r *Recorder) AddText(t Text)         { r.prims = append(r.prims, t) }
func (r *Recorder) AddBlockRef(b BlockRef) { r.prims = append(r.prims, b) }

// Primitives returns the recorded primitives.
func (r *Recorder) Primitives() []Primitive { return r.prims }

// Len returns the number of recorded primitives.
func (r *Recorder) Len() int { return len(r.prims) }

// Reset drops all recorded primitives.
func (r *Recorder) Reset() { r.prims = nil }

// Playback replays prims into s in order.
func Playback(prims []Primitive, s Sink) {
	for _, p := range prims {
		switch p := p.(type) {
		case Line:
			s.AddLine(p)
		case Solid:
			s.AddSolid(p)
		case Text:
			s.AddText(p)
		case BlockRef:
			s.AddBlockRef(p)
		}
	}
}

// SinkFactory creates a new sink instance.
type SinkFactory func() WriterSink

var (
	sinkMu sync.RWMutex
	sinks  = make(map[string]SinkFactory)
)

// RegisterSink makes a sink available by name, following the database/sql
// driver pattern:
//
//	func init() {
//	    tabledraw.RegisterSink("svg", func() tabledraw.WriterSink { return New() })
//	}
//
// It panics if factory is nil or name is already registered.
func RegisterSink(name string, factory SinkFactory) {
	sinkMu.Lock()
	defer sinkMu.Unlock()

	if factory == nil {
		panic("tabledraw: RegisterSink factory is nil")
	}
	if _, dup := sinks[name]; dup {
		panic("tabledraw: RegisterSink called twice for " + name)
	}
	sinks[name] = factory
}

// NewSink creates a registered sink by name.
func NewSink(name string) (WriterSink, error) {
	sinkMu.RLock()
	factory, ok := sinks[name]
	sinkMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("tabledraw: unknown sink %q (forgotten import?)", name)
	}
	return factory(), nil
}

// Sinks returns the sorted names of all registered sinks.
func Sinks() []string {
	sinkMu.RLock()
	defer sinkMu.RUnlock()

	names := make([]string, 0, len(sinks))
	for name := range sinks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
