package usecase

import "feat/internal/domain"

// ListEntry is one line of the feature listing.
type ListEntry struct {
	Feature domain.Feature
	// Files and Items are only filled in when counts are requested.
	Files int
	Items int
}

// ListUseCase enumerates the resolved features.
type ListUseCase struct {
	resolver  *Resolver
	collector *Collector
}

func NewListUseCase(resolver *Resolver, collector *Collector) *ListUseCase {
	return &ListUseCase{resolver: resolver, collector: collector}
}

// List returns the features in name order, scanning each one when counts
// is set.
func (u *ListUseCase) List(counts bool) ([]ListEntry, error) {
	features, err := u.resolver.Resolve()
	if err != nil {
		return nil, err
	}

	var entries []ListEntry
	for _, name := range Names(features) {
		entry := ListEntry{Feature: features[name]}
		if counts {
			coll := u.collector.CollectItems(entry.Feature)
			entry.Files = len(coll.Files)
			entry.Items = len(coll.Items)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
