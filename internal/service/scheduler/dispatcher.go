package scheduler

import (
	"bufio"
	"context"
	"errors"
	"fmt"

	"github.com/arminghobadi/alarm-scheduler/internal/logger"
	"github.com/arminghobadi/alarm-scheduler/internal/parser"
)

// scanResult carries one input line, or the scanner's terminal error.
type scanResult struct {
	line string
	err  error
}

// runDispatcher reads lines until EOF or cancellation. Malformed lines and
// validation rejections are reported and skipped; the loop never stops for
// them.
func (s *Service) runDispatcher(ctx context.Context) error {
	ctx = logger.WithName(ctx, "dispatcher")

	results := make(chan scanResult)

	go func() {
		defer close(results)

		scanner := bufio.NewScanner(s.input)
		for scanner.Scan() {
			select {
			case results <- scanResult{line: scanner.Text()}:
			case <-ctx.Done():
				return
			}
		}

		if err := scanner.Err(); err != nil {
			select {
			case results <- scanResult{err: err}:
			case <-ctx.Done():
			}
		}
	}()

	for {
		s.events.prompt(s.prompt)

		select {
		case <-ctx.Done():
			return nil
		case res, ok := <-results:
			if !ok {
				// Input exhausted; the session ends cleanly.
				return nil
			}

			if res.err != nil {
				return fmt.Errorf("read input: %w", res.err)
			}

			s.handleLine(ctx, res.line)
		}
	}
}

// handleLine runs one line through parse, validate and insert.
func (s *Service) handleLine(ctx context.Context, line string) {
	req, err := parser.Parse(line)
	if err != nil {
		if errors.Is(err, parser.ErrEmptyLine) {
			return
		}

		s.events.badCommand(err)
		logger.WarnKV(ctx, "bad command", "line", line, "err", err.Error())

		return
	}

	now := s.clock.Now()
	req = req.WithExpiryAt(now)

	if reason := validate(s.queue.Snapshot(), req); reason != nil {
		s.events.rejected(req, reason)
		logger.InfoKV(ctx, "request rejected",
			"kind", req.Kind.String(),
			"identifier", req.Identifier(),
			"reason", reason.Error())

		return
	}

	result := s.queue.Insert(req)
	s.events.inserted(req, result.Replaced, now)

	logger.DebugKV(ctx, "request inserted",
		"kind", req.Kind.String(),
		"identifier", req.Identifier(),
		"expiry", req.AbsoluteExpiry,
		"replaced", result.Replaced,
		"signaled", result.Signaled)
}
