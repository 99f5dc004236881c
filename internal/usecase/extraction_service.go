package usecase

import (
	"context"
	"fmt"
	"strings"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday-etl/internal/domain/snapshot"
	"github.com/riskibarqy/matchday-etl/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

const (
	SkipReasonNoSnapshot   = "snapshot_not_found"
	SkipReasonUnrecognized = "unrecognized_schema"
	SkipReasonInvalidMatch = "invalid_match"
	SkipReasonReadFailed   = "read_failed"
)

type ExtractionService struct {
	store  snapshot.Store
	parser FeedParser
	logger *logging.Logger
}

type SkippedMatch struct {
	MatchID string
	Reason  string
	Err     error
}

func NewExtractionService(store snapshot.Store, parser FeedParser, logger *logging.Logger) *ExtractionService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ExtractionService{store: store, parser: parser, logger: logger}
}

// Extract resolves each identifier against its latest summary snapshot. Identifiers that
// cannot be resolved are reported as skipped; only cancellation returns an error.
func (s *ExtractionService) Extract(ctx context.Context, matchIDs []string) ([]MatchRecord, []SkippedMatch, error) {
	records := make([]MatchRecord, 0, len(matchIDs))
	skipped := make([]SkippedMatch, 0)
	for _, matchID := range matchIDs {
		if err := ctx.Err(); err != nil {
			return records, skipped, err
		}
		record, skip := s.ExtractOne(ctx, matchID)
		if skip != nil {
			skipped = append(skipped, *skip)
			continue
		}
		records = append(records, record)
	}
	return records, skipped, nil
}

// ExtractOne returns a non-nil skip when matchID has no usable snapshot.
func (s *ExtractionService) ExtractOne(ctx context.Context, matchID string) (MatchRecord, *SkippedMatch) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ExtractionService.ExtractOne")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	span.SetAttributes(attribute.String("matchday.match_id", matchID))

	skip := func(reason string, err error) (MatchRecord, *SkippedMatch) {
		s.logger.WarnContext(ctx, "skip match", "stage", "extract", "match_id", matchID, "reason", reason, "error", err)
		return MatchRecord{}, &SkippedMatch{MatchID: matchID, Reason: reason, Err: err}
	}

	if matchID == "" {
		return skip(SkipReasonInvalidMatch, fmt.Errorf("%w: match id is required", ErrInvalidInput))
	}

	latest, err := s.store.Latest(ctx, snapshot.KindSummary, matchID)
	if crerr.Is(err, snapshot.ErrNotFound) {
		return skip(SkipReasonNoSnapshot, err)
	}
	if err != nil {
		return skip(SkipReasonReadFailed, err)
	}

	raw, err := s.store.Read(ctx, latest)
	if err != nil {
		return skip(SkipReasonReadFailed, err)
	}

	record, err := s.parser.ParseSummary(matchID, raw)
	if crerr.Is(err, ErrUnrecognizedSchema) {
		return skip(SkipReasonUnrecognized, err)
	}
	if err != nil {
		return skip(SkipReasonReadFailed, err)
	}
	if err := record.Info.Validate(); err != nil {
		return skip(SkipReasonInvalidMatch, err)
	}

	s.logger.DebugContext(ctx, "match extracted",
		"match_id", matchID,
		"snapshot", latest.Path,
		"located_by", record.LocatedBy,
		"teams", len(record.Teams),
		"players", len(record.Players),
	)
	return record, nil
}
