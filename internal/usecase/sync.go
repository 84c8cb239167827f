package usecase

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"feat/internal/domain"
	"feat/internal/port"
	"feat/internal/repo"
)

// SyncEntry is the outcome for one feature of a bulk sync.
type SyncEntry struct {
	Feature string
	DocPath string
	Action  domain.SyncAction
	Stub    bool
	Skipped bool
	Err     error
}

// SyncResult contains the results of a bulk sync. Every feature lands in
// exactly one of the counters.
type SyncResult struct {
	RunID     string
	DryRun    bool
	Updated   int
	Stubs     int
	Unchanged int
	Skipped   int
	Failed    int
	Entries   []SyncEntry
}

// SyncUseCase refreshes the documentation of every feature that has a
// document.
type SyncUseCase struct {
	repo      repo.Context
	resolver  *Resolver
	collector *Collector
	locator   *Locator
	sync      *Synchronizer
	history   port.HistoryStore
	logger    *log.Logger
}

// NewSyncUseCase creates a new sync use case. history may be nil.
func NewSyncUseCase(
	rc repo.Context,
	resolver *Resolver,
	collector *Collector,
	locator *Locator,
	sync *Synchronizer,
	history port.HistoryStore,
	logger *log.Logger,
) *SyncUseCase {
	return &SyncUseCase{
		repo:      rc,
		resolver:  resolver,
		collector: collector,
		locator:   locator,
		sync:      sync,
		history:   history,
		logger:    logger,
	}
}

// SyncAll processes features in name order. A failing feature is counted
// and the run continues. With dryRun nothing is written. progressCallback
// is called after each feature with the number processed so far.
func (u *SyncUseCase) SyncAll(dryRun bool, progressCallback func(done, total int, feature string)) (*SyncResult, error) {
	features, err := u.resolver.Resolve()
	if err != nil {
		return nil, err
	}

	names := Names(features)
	result := &SyncResult{RunID: uuid.NewString(), DryRun: dryRun}

	for i, name := range names {
		entry := u.syncOne(features[name], dryRun, result.RunID)
		result.Entries = append(result.Entries, entry)

		switch {
		case entry.Skipped:
			result.Skipped++
		case entry.Err != nil:
			result.Failed++
		case entry.Stub:
			result.Stubs++
		case entry.Action == domain.ActionUnchanged:
			result.Unchanged++
		default:
			result.Updated++
		}

		if progressCallback != nil {
			progressCallback(i+1, len(names), name)
		}
	}

	return result, nil
}

func (u *SyncUseCase) syncOne(f domain.Feature, dryRun bool, runID string) SyncEntry {
	entry := SyncEntry{Feature: f.Name}

	docPath, ok := u.locator.Locate(f.Name, true)
	if !ok {
		u.logger.Debug("no doc file found", "feature", f.Name)
		entry.Skipped = true
		return entry
	}
	entry.DocPath = docPath
	entry.Stub = IsStub(docPath)

	coll := u.collector.CollectItems(f)

	if dryRun {
		plan, err := u.sync.Plan(f, coll.Items, docPath)
		if err != nil {
			entry.Err = err
			entry.Action = domain.ActionFailed
			return entry
		}
		entry.Action = plan.Action
		return entry
	}

	if entry.Stub {
		u.logger.Warn("updating stub", "path", u.repo.Rel(docPath), "rename_to", FinalName(docPath))
	}

	plan, err := u.sync.Sync(f, coll.Items, docPath)
	recordRun(u.history, u.logger, runID, f, docPath, plan, len(coll.Items), err)
	if err != nil {
		u.logger.Error("failed to update doc", "feature", f.Name, "err", err)
		entry.Err = err
		entry.Action = domain.ActionFailed
		return entry
	}
	entry.Action = plan.Action
	return entry
}
