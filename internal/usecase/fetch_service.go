package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/matchday-etl/internal/domain/rawdata"
	"github.com/riskibarqy/matchday-etl/internal/domain/snapshot"
	"github.com/riskibarqy/matchday-etl/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
)

type FetchService struct {
	feed        MatchFeed
	parser      FeedParser
	store       snapshot.Store
	archive     rawdata.Repository
	concurrency int
	logger      *logging.Logger
}

// FetchResult is the outcome of one summary request. Err is nil when Snapshot was written.
type FetchResult struct {
	MatchID  string
	Snapshot snapshot.Snapshot
	Err      error
}

// NewFetchService accepts a nil archive; snapshots are then kept on disk only.
func NewFetchService(
	feed MatchFeed,
	parser FeedParser,
	store snapshot.Store,
	archive rawdata.Repository,
	concurrency int,
	logger *logging.Logger,
) *FetchService {
	if logger == nil {
		logger = logging.Default()
	}
	return &FetchService{
		feed:        feed,
		parser:      parser,
		store:       store,
		archive:     archive,
		concurrency: max(concurrency, 1),
		logger:      logger,
	}
}

// FetchListing persists the scoreboard of date and returns its match identifiers.
// Any failure here aborts the run.
func (s *FetchService) FetchListing(ctx context.Context, date time.Time) ([]string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchService.FetchListing")
	defer span.End()

	if date.IsZero() {
		return nil, fmt.Errorf("%w: listing date is required", ErrInvalidInput)
	}
	day := date.UTC().Format("20060102")
	span.SetAttributes(attribute.String("matchday.date", day))

	raw, err := s.feed.FetchScoreboard(ctx, date)
	if err != nil {
		s.logger.ErrorContext(ctx, "fetch scoreboard failed", "stage", "fetch_listing", "date", day, "error", err)
		return nil, fmt.Errorf("fetch scoreboard date=%s: %w", day, err)
	}

	saved, err := s.store.Save(ctx, snapshot.KindScoreboard, "", raw)
	if err != nil {
		s.logger.ErrorContext(ctx, "persist scoreboard failed", "stage", "fetch_listing", "date", day, "error", err)
		return nil, fmt.Errorf("persist scoreboard date=%s: %w", day, err)
	}
	s.archiveSnapshot(ctx, saved, day, raw)

	ids, err := s.parser.ParseScoreboard(raw)
	if err != nil {
		return nil, fmt.Errorf("parse scoreboard date=%s: %w", day, err)
	}

	s.logger.InfoContext(ctx, "scoreboard fetched", "date", day, "path", saved.Path, "match_count", len(ids))
	return ids, nil
}

// FetchSummaries requests every summary and persists each success. A failure is
// recorded on its result and never stops the remaining requests.
func (s *FetchService) FetchSummaries(ctx context.Context, matchIDs []string) []FetchResult {
	ctx, span := startUsecaseSpan(ctx, "usecase.FetchService.FetchSummaries")
	defer span.End()
	span.SetAttributes(attribute.Int("matchday.match_count", len(matchIDs)))

	results := make([]FetchResult, len(matchIDs))
	p := pool.New().WithMaxGoroutines(s.concurrency)
	for i, matchID := range matchIDs {
		p.Go(func() {
			results[i] = s.fetchSummary(ctx, strings.TrimSpace(matchID))
		})
	}
	p.Wait()

	return results
}

func (s *FetchService) fetchSummary(ctx context.Context, matchID string) FetchResult {
	result := FetchResult{MatchID: matchID}
	if matchID == "" {
		result.Err = fmt.Errorf("%w: match id is required", ErrInvalidInput)
		return result
	}
	if err := ctx.Err(); err != nil {
		result.Err = err
		return result
	}

	raw, err := s.feed.FetchSummary(ctx, matchID)
	if err != nil {
		s.logger.WarnContext(ctx, "fetch summary failed", "stage", "fetch_summary", "match_id", matchID, "error", err)
		result.Err = fmt.Errorf("fetch summary match_id=%s: %w", matchID, err)
		return result
	}

	saved, err := s.store.Save(ctx, snapshot.KindSummary, matchID, raw)
	if err != nil {
		s.logger.WarnContext(ctx, "persist summary failed", "stage", "fetch_summary", "match_id", matchID, "error", err)
		result.Err = fmt.Errorf("persist summary match_id=%s: %w", matchID, err)
		return result
	}
	s.archiveSnapshot(ctx, saved, matchID, raw)

	result.Snapshot = saved
	return result
}

// archiveSnapshot copies the payload into the raw_snapshots table. It is best-effort:
// the file on disk stays the source of truth for extraction.
func (s *FetchService) archiveSnapshot(ctx context.Context, saved snapshot.Snapshot, entityKey string, raw []byte) {
	if s.archive == nil {
		return
	}
	sum := sha256.Sum256(raw)
	item := rawdata.Payload{
		Source:      rawdata.SourceESPN,
		Kind:        string(saved.Kind),
		EntityKey:   entityKey,
		MatchID:     saved.MatchID,
		FilePath:    saved.Path,
		PayloadJSON: string(raw),
		PayloadHash: hex.EncodeToString(sum[:]),
		FetchedAt:   saved.FetchedAt,
	}
	if err := s.archive.Upsert(ctx, item); err != nil {
		s.logger.WarnContext(ctx, "archive snapshot failed", "kind", item.Kind, "entity_key", entityKey, "error", err)
	}
}
