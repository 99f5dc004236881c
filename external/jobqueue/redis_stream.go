package jobqueue

import (
	"context"
	"fmt"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/matchday-etl/internal/platform/logging"
	"github.com/riskibarqy/matchday-etl/internal/usecase"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultStream  = "matchday:match-ids"
	defaultMaxLen  = 10000
	connectTimeout = 5 * time.Second
)

var tracer = otel.Tracer("matchday-etl/external/jobqueue")

type streamClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
	Close() error
}

type RedisStreamConfig struct {
	URL    string
	Stream string
	MaxLen int64
}

// RedisStreamPublisher hands each run's discovered match ids to downstream consumers
// through one XADD per run.
type RedisStreamPublisher struct {
	client streamClient
	stream string
	maxLen int64
	logger *logging.Logger
}

// NewRedisStreamPublisher connects and pings before returning.
func NewRedisStreamPublisher(ctx context.Context, cfg RedisStreamConfig, logger *logging.Logger) (*RedisStreamPublisher, error) {
	opt, err := redis.ParseURL(strings.TrimSpace(cfg.URL))
	if err != nil {
		return nil, fmt.Errorf("%w: parse redis url: %v", usecase.ErrInvalidInput, err)
	}

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Mark(fmt.Errorf("ping redis: %w", err), usecase.ErrDependencyUnavailable)
	}

	return newRedisStreamPublisher(client, cfg, logger), nil
}

func newRedisStreamPublisher(client streamClient, cfg RedisStreamConfig, logger *logging.Logger) *RedisStreamPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	stream := strings.TrimSpace(cfg.Stream)
	if stream == "" {
		stream = DefaultStream
	}
	maxLen := cfg.MaxLen
	if maxLen <= 0 {
		maxLen = defaultMaxLen
	}
	return &RedisStreamPublisher{client: client, stream: stream, maxLen: maxLen, logger: logger}
}

func (p *RedisStreamPublisher) Publish(ctx context.Context, batch usecase.MatchBatch) error {
	ctx, span := tracer.Start(ctx, "jobqueue.RedisStreamPublisher.Publish")
	defer span.End()
	span.SetAttributes(
		attribute.String("messaging.system", "redis"),
		attribute.String("messaging.destination.name", p.stream),
		attribute.Int("matchday.match_count", len(batch.MatchIDs)),
	)

	values, err := streamValues(batch)
	if err != nil {
		span.RecordError(err)
		return err
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: values,
	}).Result()
	if err != nil {
		span.RecordError(err)
		return crerr.Mark(fmt.Errorf("xadd stream=%s run_id=%s: %w", p.stream, batch.RunID, err), usecase.ErrDependencyUnavailable)
	}

	p.logger.InfoContext(ctx, "match hand-off published",
		"stream", p.stream,
		"entry_id", id,
		"run_id", batch.RunID,
		"match_count", len(batch.MatchIDs),
	)
	return nil
}

func (p *RedisStreamPublisher) Close() error {
	return p.client.Close()
}

func streamValues(batch usecase.MatchBatch) (map[string]any, error) {
	ids := batch.MatchIDs
	if ids == nil {
		ids = []string{}
	}
	encoded, err := jsoniter.MarshalToString(ids)
	if err != nil {
		return nil, fmt.Errorf("encode match ids: %w", err)
	}

	foundAt := batch.FoundAt
	if foundAt.IsZero() {
		foundAt = time.Now()
	}
	return map[string]any{
		"run_id":       batch.RunID,
		"date":         batch.Date,
		"match_ids":    encoded,
		"match_count":  len(ids),
		"published_at": foundAt.UTC().Format(time.RFC3339),
	}, nil
}
