package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/newthinker/evaldash/internal/core"
	"go.uber.org/zap"
)

// LatestName is the report overwritten on every export.
const LatestName = "latest.html"

const timestampLayout = "20060102-150405"

// Renderer writes the current dashboard as a standalone HTML document.
type Renderer interface {
	RenderReport(w io.Writer) error
}

// Exporter writes rendered reports to a Sink.
type Exporter struct {
	sink     Sink
	renderer Renderer
	logger   *zap.Logger
	now      func() time.Time
}

// NewExporter creates an exporter. A nil logger is replaced by a no-op one.
func NewExporter(sink Sink, renderer Renderer, logger *zap.Logger) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{sink: sink, renderer: renderer, logger: logger, now: time.Now}
}

// Export renders once and writes <timestamp>.html and latest.html. It
// returns the paths written, timestamped first.
func (e *Exporter) Export(ctx context.Context) ([]string, error) {
	var buf bytes.Buffer
	if err := e.renderer.RenderReport(&buf); err != nil {
		return nil, core.WrapError(core.ErrReportFailed, fmt.Errorf("rendering: %w", err))
	}

	name := e.now().UTC().Format(timestampLayout) + ".html"
	paths := []string{name, LatestName}
	for _, p := range paths {
		if err := e.sink.Write(ctx, p, buf.Bytes()); err != nil {
			return nil, core.WrapError(core.ErrReportFailed, fmt.Errorf("writing %s: %w", p, err))
		}
	}

	e.logger.Info("report exported", zap.Strings("paths", paths), zap.Int("bytes", buf.Len()))
	return paths, nil
}
