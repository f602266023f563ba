package audit

import "context"

type StoreAPI interface {
	InsertEntry(ctx context.Context, entry Entry) error
	CountEntries(ctx context.Context, filter Filter) (int, error)
	ListEntries(ctx context.Context, filter Filter, limit, offset int) ([]Entry, error)
}
