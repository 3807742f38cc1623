package calendar

import (
	"context"
	"fmt"
	"sync"

	"github.com/hupe1980/a2acal/core"
	"github.com/hupe1980/a2acal/logging"
)

// Outcome is the caller-visible terminal result of a booking request.
// Conflict is an expected, common result and therefore a value rather than an
// error.
type Outcome int

const (
	// OutcomeSuccess indicates the interval was committed.
	OutcomeSuccess Outcome = iota
	// OutcomeConflict indicates the interval overlaps an existing active booking.
	OutcomeConflict
	// OutcomeError indicates validation or persistence failure.
	OutcomeError
)

// String returns the literal wire token for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "SUCCESS"
	case OutcomeConflict:
		return "CONFLICT"
	default:
		return "ERROR"
	}
}

// Request describes one requested interval.
type Request struct {
	Requester string
	Start     string // ISO-8601 timestamp
	Duration  int    // minutes, must be > 0
	Message   string
}

// Options holds configuration overrides for NewBookingService.
type Options struct {
	Logger logging.Logger
}

// BookingService arbitrates booking requests against one owner's Store.
//
// The read-check-write sequence is serialized per service instance with a
// mutex: without it two near-simultaneous requests could both read a
// conflict-free calendar and both write, producing an overlapping pair.
// Construct exactly one BookingService per calendar store.
type BookingService struct {
	store  Store
	logger logging.Logger

	mu sync.Mutex
}

// NewBookingService creates a booking service over the given store.
func NewBookingService(store Store, optFns ...func(o *Options)) *BookingService {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &BookingService{store: store, logger: opts.Logger}
}

// Book validates the request, checks it against every existing active
// interval and either commits it or rejects it. The returned error carries
// detail only when the outcome is OutcomeError; Conflict and Success return a
// nil error. A rejected booking leaves the persisted calendar unchanged.
func (s *BookingService) Book(ctx context.Context, req Request) (Outcome, error) {
	if req.Duration <= 0 {
		return OutcomeError, fmt.Errorf("%w: duration must be positive, got %d", core.ErrInvalidInput, req.Duration)
	}

	start, err := ParseStart(req.Start)
	if err != nil {
		return OutcomeError, fmt.Errorf("%w: start %q: %v", core.ErrInvalidInput, req.Start, err)
	}

	candidate := Event{
		Requester: req.Requester,
		Start:     start,
		Duration:  req.Duration,
		Message:   req.Message,
		Status:    StatusActive,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cal, err := s.store.Load(ctx)
	if err != nil {
		s.logger.Error("booking load failed", "requester", req.Requester, "error", err)
		return OutcomeError, err
	}

	if existing := cal.Conflict(candidate); existing != nil {
		s.logger.Info("booking conflict",
			"requester", req.Requester,
			"start", req.Start,
			"existing_requester", existing.Requester)
		return OutcomeConflict, nil
	}

	cal.Events = append(cal.Events, candidate)
	if err := s.store.Save(ctx, cal); err != nil {
		s.logger.Error("booking save failed", "requester", req.Requester, "error", err)
		return OutcomeError, err
	}

	s.logger.Info("booking committed", "requester", req.Requester, "start", req.Start, "duration", req.Duration)
	return OutcomeSuccess, nil
}

// Cancel flips the matching active event to cancelled. Missing events report
// OutcomeError; the event set is never physically reduced.
func (s *BookingService) Cancel(ctx context.Context, requester, startValue string) (Outcome, error) {
	start, err := ParseStart(startValue)
	if err != nil {
		return OutcomeError, fmt.Errorf("%w: start %q: %v", core.ErrInvalidInput, startValue, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cal, err := s.store.Load(ctx)
	if err != nil {
		return OutcomeError, err
	}
	if !cal.Cancel(requester, start) {
		return OutcomeError, fmt.Errorf("no active booking for %s at %s", requester, startValue)
	}
	if err := s.store.Save(ctx, cal); err != nil {
		return OutcomeError, err
	}

	s.logger.Info("booking cancelled", "requester", requester, "start", startValue)
	return OutcomeSuccess, nil
}
