package scheduler

import (
	"context"
	"io"
	"sync"

	"github.com/arminghobadi/alarm-scheduler/internal/clock"
	"github.com/arminghobadi/alarm-scheduler/internal/queue"
)

// Options configures a scheduler service.
type Options struct {
	// Input supplies request lines, one per line.
	Input io.Reader
	// Output receives the insertion, rejection and fire event lines.
	Output io.Writer
	// Prompt is written to Output before each read. Empty disables it.
	Prompt string
	// Clock provides time and timers; defaults to the system clock.
	Clock clock.Clock
}

// Service owns the queue and runs the dispatcher and worker loops.
type Service struct {
	queue  *queue.Queue
	clock  clock.Clock
	events *eventWriter
	input  io.Reader
	prompt string
}

// New constructs a service from the provided options.
func New(opts *Options) *Service {
	clk := opts.Clock
	if clk == nil {
		clk = clock.Real{}
	}

	return &Service{
		queue:  queue.New(),
		clock:  clk,
		events: newEventWriter(opts.Output),
		input:  opts.Input,
		prompt: opts.Prompt,
	}
}

// Run starts the worker and processes input until the reader is exhausted or
// the context is canceled. The worker is stopped before Run returns.
func (s *Service) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		s.runWorker(ctx)
	}()

	err := s.runDispatcher(ctx)

	cancel()
	wg.Wait()

	return err
}
