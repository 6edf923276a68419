package plangraph

import (
	"context"

	"go.opentelemetry.io/otel/trace/noop"
)

// Rebuild reruns level construction on an existing graph.
func Rebuild(g *Graph) error {
	_, span := noop.NewTracerProvider().Tracer(tracerName).Start(context.Background(), "rebuild")
	defer span.End()

	return g.create(context.Background(), span)
}
