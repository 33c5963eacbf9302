package filter

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/s0up4200/edinet/edinet"
)

// EvaluatorOption configures an evaluator
type EvaluatorOption func(*ConcurrentEvaluator)

// WithWorkers sets the number of worker goroutines
func WithWorkers(workers int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if workers > 0 {
			e.workerCount = workers
		}
	}
}

// WithBatchSize sets the batch size for chunked processing
func WithBatchSize(size int) EvaluatorOption {
	return func(e *ConcurrentEvaluator) {
		if size > 0 {
			e.batchSize = size
		}
	}
}

// ConcurrentEvaluator implements Evaluator, splitting large lists into
// chunks evaluated in parallel
type ConcurrentEvaluator struct {
	workerCount int
	batchSize   int
}

// NewConcurrentEvaluator creates a new concurrent evaluator
func NewConcurrentEvaluator(opts ...EvaluatorOption) *ConcurrentEvaluator {
	e := &ConcurrentEvaluator{
		workerCount: runtime.GOMAXPROCS(0),
		batchSize:   200,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Evaluate returns the documents matching filter in their original order
func (e *ConcurrentEvaluator) Evaluate(ctx context.Context, filter CompiledFilter, docs []edinet.Document) ([]edinet.Document, error) {
	if len(docs) == 0 {
		return []edinet.Document{}, nil
	}

	// A day rarely has more than a few thousand filings
	if len(docs) < e.batchSize || e.workerCount == 1 {
		return evaluateSequential(filter, docs), nil
	}

	return e.evaluateConcurrent(ctx, filter, docs)
}

func evaluateSequential(filter CompiledFilter, docs []edinet.Document) []edinet.Document {
	matches := make([]edinet.Document, 0, len(docs)/4)
	for _, doc := range docs {
		if filter.Evaluate(doc) {
			matches = append(matches, doc)
		}
	}
	return matches
}

func (e *ConcurrentEvaluator) evaluateConcurrent(ctx context.Context, filter CompiledFilter, docs []edinet.Document) ([]edinet.Document, error) {
	chunkSize := max(len(docs)/e.workerCount, e.batchSize)
	chunks := make([][]edinet.Document, (len(docs)+chunkSize-1)/chunkSize)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workerCount)

	for i := range chunks {
		start := i * chunkSize
		end := min(start+chunkSize, len(docs))

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			// each goroutine owns its own slot
			chunks[i] = evaluateSequential(filter, docs[start:end])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var matches []edinet.Document
	for _, chunk := range chunks {
		matches = append(matches, chunk...)
	}
	if matches == nil {
		matches = []edinet.Document{}
	}
	return matches, nil
}
