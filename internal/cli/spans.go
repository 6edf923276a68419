// SPDX-License-Identifier: MIT

package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// spanPrinter is a SpanExporter that writes one line per span and per span
// event to w.
type spanPrinter struct {
	mu sync.Mutex
	w  io.Writer
}

var _ sdktrace.SpanExporter = (*spanPrinter)(nil)

func newSpanPrinter(w io.Writer) *spanPrinter {
	return &spanPrinter{w: w}
}

// ExportSpans implements sdktrace.SpanExporter.
func (p *spanPrinter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, s := range spans {
		if err := ctx.Err(); err != nil {
			return err
		}
		var attrs strings.Builder
		for _, kv := range s.Attributes() {
			fmt.Fprintf(&attrs, " %s=%s", kv.Key, kv.Value.Emit())
		}
		if _, err := fmt.Fprintf(p.w, "span %s trace=%s status=%s duration=%s%s\n",
			s.Name(), s.SpanContext().TraceID(), s.Status().Code, s.EndTime().Sub(s.StartTime()), attrs.String()); err != nil {
			return err
		}
		for _, ev := range s.Events() {
			attrs.Reset()
			for _, kv := range ev.Attributes {
				fmt.Fprintf(&attrs, " %s=%s", kv.Key, kv.Value.Emit())
			}
			if _, err := fmt.Fprintf(p.w, "  event %s%s\n", ev.Name, attrs.String()); err != nil {
				return err
			}
		}
	}

	return nil
}

// Shutdown implements sdktrace.SpanExporter.
func (p *spanPrinter) Shutdown(context.Context) error { return nil }
