package usecase

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"feat/internal/adapter/fs"
	"feat/internal/domain"
	"feat/internal/port"
	"feat/internal/repo"
)

// UpdateResult describes the outcome of updating one feature's document.
type UpdateResult struct {
	Feature domain.Feature
	DocPath string
	Action  domain.SyncAction
	Items   int
	Stub    bool
}

// UpdateUseCase refreshes the documentation block of a single feature.
type UpdateUseCase struct {
	repo      repo.Context
	resolver  *Resolver
	collector *Collector
	locator   *Locator
	sync      *Synchronizer
	history   port.HistoryStore
	logger    *log.Logger
}

// NewUpdateUseCase creates a new update use case. history may be nil.
func NewUpdateUseCase(
	rc repo.Context,
	resolver *Resolver,
	collector *Collector,
	locator *Locator,
	sync *Synchronizer,
	history port.HistoryStore,
	logger *log.Logger,
) *UpdateUseCase {
	return &UpdateUseCase{
		repo:      rc,
		resolver:  resolver,
		collector: collector,
		locator:   locator,
		sync:      sync,
		history:   history,
		logger:    logger,
	}
}

// Update writes the block for name into its document. docOverride, when
// set, names the target document, which must already exist. Without a
// document a stub is created under the docs root.
func (u *UpdateUseCase) Update(name, docOverride string) (*UpdateResult, error) {
	f, err := u.resolver.Lookup(name)
	if err != nil {
		return nil, err
	}

	coll := u.collector.CollectItems(f)
	result := &UpdateResult{Feature: f, Items: len(coll.Items)}
	runID := uuid.NewString()

	var docPath string
	if docOverride != "" {
		docPath = u.repo.Abs(docOverride)
		if !fs.IsFile(docPath) {
			return nil, fmt.Errorf("%w: %s", ErrDocNotFound, docPath)
		}
	} else {
		found, ok := u.locator.Locate(f.Name, true)
		if !ok {
			stubPath := u.locator.StubPath(f.Name)
			plan, err := u.sync.CreateStub(f, stubPath, coll.Items)
			if err != nil {
				recordRun(u.history, u.logger, runID, f, stubPath, nil, len(coll.Items), err)
				return nil, err
			}
			u.logger.Info("created stub documentation", "path", u.repo.Rel(stubPath), "rename_to", FinalName(stubPath))
			recordRun(u.history, u.logger, runID, f, stubPath, plan, len(coll.Items), nil)
			result.DocPath = stubPath
			result.Action = plan.Action
			result.Stub = true
			return result, nil
		}
		docPath = found
	}

	if IsStub(docPath) {
		u.logger.Warn("updating stub documentation", "path", u.repo.Rel(docPath), "rename_to", FinalName(docPath))
		result.Stub = true
	}

	plan, err := u.sync.Sync(f, coll.Items, docPath)
	recordRun(u.history, u.logger, runID, f, docPath, plan, len(coll.Items), err)
	if err != nil {
		return nil, err
	}

	result.DocPath = docPath
	result.Action = plan.Action
	return result, nil
}

// recordRun appends one entry to the history log. Failures to record are
// logged and never fail the update itself.
func recordRun(history port.HistoryStore, logger *log.Logger, runID string, f domain.Feature, docPath string, plan *Plan, items int, syncErr error) {
	if history == nil {
		return
	}

	rec := domain.SyncRecord{
		RunID:   runID,
		Feature: f.Name,
		DocPath: docPath,
		Items:   items,
		At:      time.Now().UTC(),
	}
	if syncErr != nil {
		rec.Action = domain.ActionFailed
		rec.Error = syncErr.Error()
	} else if plan != nil {
		rec.Action = plan.Action
		rec.Digest = Digest(plan.Block)
	}

	if err := history.Record(rec); err != nil {
		logger.Warn("failed to record sync history", "feature", f.Name, "err", err)
	}
}
