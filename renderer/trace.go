package renderer

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// TraceFileName is the file written inside the trace directory.
const TraceFileName = "trace.jsonl"

// tracer writes renderer lifecycle events as JSON lines.
// A nil *tracer discards everything.
type tracer struct {
	file *os.File
	log  *slog.Logger
}

func openTrace(dir string) (*tracer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("renderer: create trace dir: %w", err)
	}
	f, err := os.Create(filepath.Join(dir, TraceFileName))
	if err != nil {
		return nil, fmt.Errorf("renderer: create trace file: %w", err)
	}
	return &tracer{
		file: f,
		log:  slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})),
	}, nil
}

func (t *tracer) record(event string, args ...any) {
	if t == nil {
		return
	}
	t.log.Debug(event, args...)
}

func (t *tracer) close() {
	if t == nil || t.file == nil {
		return
	}
	_ = t.file.Close()
	t.file = nil
}
