package calendar

import "context"

// Store persists one owner's calendar as a single document. Load returns
// events in stored order (no sort guarantee); Save replaces the full document
// atomically, so a failed write leaves the previous contents intact.
//
// Store implementations do not arbitrate conflicts; that is the
// BookingService's job. They must however refuse to load unparseable state
// (ErrCorruptStorage) rather than drop records.
type Store interface {
	Load(ctx context.Context) (Calendar, error)
	Save(ctx context.Context, cal Calendar) error
}
