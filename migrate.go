package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

type rowOutcome int

const (
	outcomeSkipped rowOutcome = iota
	outcomeCacheHit
	outcomeSuccess
	outcomeFailed
)

func (o rowOutcome) String() string {
	switch o {
	case outcomeSkipped:
		return "skipped"
	case outcomeCacheHit:
		return "cache_hit"
	case outcomeSuccess:
		return "success"
	case outcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RowResult is what processing a single row produced
type RowResult struct {
	Outcome rowOutcome
	// Hosted URL for cache hits and successes
	URL string
	// Why a row was skipped
	Reason string
	Err    error
}

// MigrationContext holds the per-run URL cache and counters
type MigrationContext struct {
	cache map[string]string

	Migrated int
	Skipped  int
	Failed   int
}

func newMigrationContext() *MigrationContext {
	return &MigrationContext{cache: make(map[string]string)}
}

// Migrator moves the first image of every row from Drive to the storage provider
type Migrator struct {
	downloader Downloader
	storage    StorageProvider
	baseFolder string
	delay      time.Duration
}

// NewMigrator creates a migrator that waits delay after every successful upload
func NewMigrator(downloader Downloader, storage StorageProvider, baseFolder string, delay time.Duration) *Migrator {
	return &Migrator{
		downloader: downloader,
		storage:    storage,
		baseFolder: baseFolder,
		delay:      delay,
	}
}

// Run processes every row in order, rewriting images in place.
// A failed row never stops the batch; only ctx cancellation does.
func (m *Migrator) Run(ctx context.Context, sheet *Sheet) (*MigrationContext, error) {
	mc := newMigrationContext()
	total := len(sheet.Rows)

	for i, row := range sheet.Rows {
		if err := ctx.Err(); err != nil {
			return mc, fmt.Errorf("migration interrupted after %d of %d rows: %w", i, total, err)
		}

		index := i + 1
		result := m.processRow(ctx, mc, index, row)
		rowsProcessed.WithLabelValues(result.Outcome.String()).Inc()

		switch result.Outcome {
		case outcomeSkipped:
			mc.Skipped++
			log.Debugf("[%d/%d] SKIP %s: %s", index, total, rowID(row, index), result.Reason)
		case outcomeCacheHit:
			mc.Migrated++
			log.Debugf("[%d/%d] CACHED %s -> %s", index, total, rowID(row, index), result.URL)
		case outcomeSuccess:
			mc.Migrated++
			log.Infof("[%d/%d] OK %s -> %s", index, total, rowID(row, index), result.URL)
			m.wait(ctx)
		case outcomeFailed:
			mc.Failed++
			log.Errorf("[%d/%d] FAIL %s: %v", index, total, rowID(row, index), result.Err)
		}
	}

	return mc, nil
}

func (m *Migrator) processRow(ctx context.Context, mc *MigrationContext, index int, row Row) RowResult {
	firstURL := firstImageURL(row["images"])
	if firstURL == "" {
		return RowResult{Outcome: outcomeSkipped, Reason: "no image"}
	}

	if isHostedURL(firstURL) {
		return RowResult{Outcome: outcomeSkipped, Reason: "already on " + cloudinaryDeliveryHost}
	}

	if hosted, ok := mc.cache[firstURL]; ok {
		row["images"] = hosted
		return RowResult{Outcome: outcomeCacheHit, URL: hosted}
	}

	data, err := m.downloader.Download(ctx, firstURL)
	if err != nil {
		return RowResult{Outcome: outcomeFailed, Err: err}
	}

	folder := inferFolder(m.baseFolder, row["category"])
	publicID := publicIDFor(rowID(row, index), strings.TrimSpace(row["name"]))

	hosted, err := m.storage.Upload(ctx, data, folder, publicID)
	if err != nil {
		return RowResult{Outcome: outcomeFailed, Err: err}
	}

	row["images"] = hosted
	mc.cache[firstURL] = hosted
	return RowResult{Outcome: outcomeSuccess, URL: hosted}
}

// wait applies the post-upload rate limit delay, returning early on cancellation
func (m *Migrator) wait(ctx context.Context) {
	if m.delay <= 0 {
		return
	}
	timer := time.NewTimer(m.delay)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

func rowID(row Row, index int) string {
	if id := strings.TrimSpace(row["id"]); id != "" {
		return id
	}
	return fmt.Sprintf("row-%d", index)
}
