package audit

import "context"

// Service is the read side of the audit log.
type Service struct {
	Store StoreAPI
}

func New(store StoreAPI) *Service {
	return &Service{Store: store}
}

type Page struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

func (s *Service) List(ctx context.Context, filter Filter, limit, offset int) (Page, error) {
	total, err := s.Store.CountEntries(ctx, filter)
	if err != nil {
		return Page{}, err
	}
	entries, err := s.Store.ListEntries(ctx, filter, limit, offset)
	if err != nil {
		return Page{}, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return Page{Entries: entries, Total: total}, nil
}
