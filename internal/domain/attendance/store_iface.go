package attendance

import (
	"context"
	"time"
)

type StoreAPI interface {
	// FindDay returns the record for (employeeID, day) or ErrNotFound.
	FindDay(ctx context.Context, employeeID string, day time.Time) (Record, error)
	// CreateRecord fails with ErrDuplicateRecord when the day already exists.
	CreateRecord(ctx context.Context, rec Record) error
	// SetClockIn succeeds only while clock-in is unset; ErrAlreadyClockedIn otherwise.
	SetClockIn(ctx context.Context, id string, at time.Time) (Record, error)
	// SetClockOut succeeds only while clock-out is unset; ErrAlreadyClockedOut otherwise.
	SetClockOut(ctx context.Context, id string, at time.Time, totalMinutes int) (Record, error)
	// ListRecords returns matching records, most recent day first.
	ListRecords(ctx context.Context, filter Filter) ([]Record, error)
}
