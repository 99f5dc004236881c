package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/matchday-etl/internal/platform/logging"
	"github.com/riskibarqy/matchday-etl/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

const (
	StageFetch   = "fetch"
	StageExtract = "extract"
	StageLoad    = "load"
)

// MatchBatch is the hand-off of one run's discovered identifiers to downstream consumers.
type MatchBatch struct {
	RunID    string    `json:"run_id"`
	Date     string    `json:"date"`
	MatchIDs []string  `json:"match_ids"`
	FoundAt  time.Time `json:"found_at"`
}

type Handoff interface {
	Publish(ctx context.Context, batch MatchBatch) error
}

type MatchOutcome struct {
	MatchID string `json:"match_id"`
	Stage   string `json:"stage"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type RunReport struct {
	RunID       string         `json:"run_id"`
	Date        string         `json:"date,omitempty"`
	Discovered  int            `json:"discovered"`
	Fetched     int            `json:"fetched"`
	FetchFailed int            `json:"fetch_failed"`
	Processed   int            `json:"processed"`
	Partial     int            `json:"partial"`
	Skipped     int            `json:"skipped"`
	Failed      int            `json:"failed"`
	WorkerCount int            `json:"worker_count"`
	DurationMs  int64          `json:"duration_ms"`
	Matches     []MatchOutcome `json:"matches"`
}

type PipelineService struct {
	fetch   *FetchService
	extract *ExtractionService
	load    *LoadService
	handoff Handoff
	workers int
	logger  *logging.Logger
	flight  resilience.SingleFlight[RunReport]
	newID   func() string
}

func NewPipelineService(
	fetch *FetchService,
	extract *ExtractionService,
	load *LoadService,
	handoff Handoff,
	workers int,
	logger *logging.Logger,
) *PipelineService {
	if logger == nil {
		logger = logging.Default()
	}
	return &PipelineService{
		fetch:   fetch,
		extract: extract,
		load:    load,
		handoff: handoff,
		workers: max(workers, 1),
		logger:  logger,
		newID:   uuid.NewString,
	}
}

// Run executes listing, hand-off, summaries, extraction and load for one day.
// Concurrent runs for the same day share a single execution.
func (s *PipelineService) Run(ctx context.Context, date time.Time) (RunReport, error) {
	day := date.UTC().Format("20060102")
	report, err, shared := s.flight.Do(day, func() (RunReport, error) {
		return s.run(ctx, date, true)
	})
	if shared {
		s.logger.InfoContext(ctx, "joined in-flight run", "date", day, "run_id", report.RunID)
	}
	return report, err
}

// FetchOnly stops after raw snapshots are written.
func (s *PipelineService) FetchOnly(ctx context.Context, date time.Time) (RunReport, error) {
	return s.run(ctx, date, false)
}

func (s *PipelineService) run(ctx context.Context, date time.Time, load bool) (RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.Run")
	defer span.End()

	start := time.Now()
	report := RunReport{RunID: s.newID(), Date: date.UTC().Format("20060102")}
	span.SetAttributes(attribute.String("matchday.run_id", report.RunID), attribute.String("matchday.date", report.Date))
	logger := s.logger.With("run_id", report.RunID, "date", report.Date)

	ids, err := s.fetch.FetchListing(ctx, date)
	if err != nil {
		return report, fmt.Errorf("run %s: %w", report.RunID, err)
	}
	report.Discovered = len(ids)
	s.publish(ctx, logger, MatchBatch{RunID: report.RunID, Date: report.Date, MatchIDs: ids, FoundAt: start.UTC()})

	fetchErrs := make(map[string]error)
	for _, result := range s.fetch.FetchSummaries(ctx, ids) {
		if result.Err != nil {
			fetchErrs[result.MatchID] = result.Err
			continue
		}
		report.Fetched++
	}
	report.FetchFailed = len(fetchErrs)

	if !load {
		for _, matchID := range ids {
			report.Matches = append(report.Matches, fetchOutcome(matchID, fetchErrs[matchID]))
		}
		report.Failed = report.FetchFailed
	} else if err := s.loadInto(ctx, &report, ids, fetchErrs); err != nil {
		return report, err
	}

	report.DurationMs = time.Since(start).Milliseconds()
	logger.InfoContext(ctx, "run finished",
		"discovered", report.Discovered,
		"fetched", report.Fetched,
		"fetch_failed", report.FetchFailed,
		"processed", report.Processed,
		"partial", report.Partial,
		"skipped", report.Skipped,
		"failed", report.Failed,
		"duration_ms", report.DurationMs,
	)
	return report, nil
}

// LoadMatches extracts and loads identifiers from any source, typically a hand-off consumer or the CLI.
func (s *PipelineService) LoadMatches(ctx context.Context, matchIDs []string) (RunReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PipelineService.LoadMatches")
	defer span.End()

	start := time.Now()
	ids := normalizeMatchIDs(matchIDs)
	if len(ids) == 0 {
		return RunReport{}, fmt.Errorf("%w: at least one match id is required", ErrInvalidInput)
	}

	report := RunReport{RunID: s.newID(), Discovered: len(ids)}
	if err := s.loadInto(ctx, &report, ids, nil); err != nil {
		return report, err
	}
	report.DurationMs = time.Since(start).Milliseconds()
	s.logger.InfoContext(ctx, "load finished",
		"run_id", report.RunID,
		"processed", report.Processed,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return report, nil
}

// loadInto records exactly one outcome per id. Identifiers whose fetch failed still go
// through extraction since an older snapshot may exist; without one they count as failed.
func (s *PipelineService) loadInto(ctx context.Context, report *RunReport, ids []string, fetchErrs map[string]error) error {
	workerCount := min(s.workers, max(len(ids), 1))
	report.WorkerCount = workerCount
	if len(ids) == 0 {
		return nil
	}

	var processed, partial, skipped, failed atomic.Int32
	outcomes := make([]MatchOutcome, len(ids))

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for i, matchID := range ids {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			outcome := s.processMatch(ctx, matchID)
			if fetchErr, ok := fetchErrs[matchID]; ok {
				outcome = mergeFetchFailure(outcome, fetchErr)
			}
			switch outcome.Status {
			case LoadStatusLoaded:
				processed.Add(1)
			case LoadStatusPartial:
				processed.Add(1)
				partial.Add(1)
			case statusSkipped:
				skipped.Add(1)
			default:
				failed.Add(1)
			}
			outcomes[i] = outcome
		}); err != nil {
			workers.Done()
			workers.Wait()
			return fmt.Errorf("submit match %s to worker pool: %w", matchID, err)
		}
	}
	workers.Wait()

	report.Matches = append(report.Matches, outcomes...)
	report.Processed = int(processed.Load())
	report.Partial = int(partial.Load())
	report.Skipped = int(skipped.Load())
	report.Failed = int(failed.Load())
	return nil
}

const (
	statusSkipped = "skipped"
	statusFetched = "fetched"
)

func fetchOutcome(matchID string, err error) MatchOutcome {
	if err != nil {
		return MatchOutcome{MatchID: matchID, Stage: StageFetch, Status: LoadStatusFailed, Message: err.Error()}
	}
	return MatchOutcome{MatchID: matchID, Stage: StageFetch, Status: statusFetched}
}

// mergeFetchFailure folds a failed fetch into the extract or load outcome of the same id.
func mergeFetchFailure(outcome MatchOutcome, fetchErr error) MatchOutcome {
	if outcome.Status == statusSkipped {
		return MatchOutcome{
			MatchID: outcome.MatchID,
			Stage:   StageFetch,
			Status:  LoadStatusFailed,
			Message: fmt.Sprintf("%v; %s", fetchErr, outcome.Message),
		}
	}
	note := "fetch failed, loaded earlier snapshot: " + fetchErr.Error()
	if outcome.Message != "" {
		note += "; " + outcome.Message
	}
	outcome.Message = note
	return outcome
}

func (s *PipelineService) processMatch(ctx context.Context, matchID string) MatchOutcome {
	if err := ctx.Err(); err != nil {
		return MatchOutcome{MatchID: matchID, Stage: StageExtract, Status: LoadStatusFailed, Message: err.Error()}
	}

	record, skip := s.extract.ExtractOne(ctx, matchID)
	if skip != nil {
		return MatchOutcome{MatchID: matchID, Stage: StageExtract, Status: statusSkipped, Message: skip.Reason}
	}

	result := s.load.Load(ctx, record)
	outcome := MatchOutcome{MatchID: matchID, Stage: StageLoad, Status: result.Status}
	if len(result.Failures) > 0 {
		first := result.Failures[0]
		outcome.Message = fmt.Sprintf("%d statement(s) failed, first %s %s: %v", len(result.Failures), first.Entity, first.Key, first.Err)
	}
	return outcome
}

func (s *PipelineService) publish(ctx context.Context, logger *logging.Logger, batch MatchBatch) {
	if s.handoff == nil {
		return
	}
	if err := s.handoff.Publish(ctx, batch); err != nil {
		logger.WarnContext(ctx, "publish match hand-off failed", "match_count", len(batch.MatchIDs), "error", err)
	}
}

func normalizeMatchIDs(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		id := strings.TrimSpace(value)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// NopHandoff discards batches. It is used when no downstream consumer is configured.
type NopHandoff struct{}

func (NopHandoff) Publish(context.Context, MatchBatch) error { return nil }
