package snapshot

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/matchday-etl/internal/domain/snapshot"
	"github.com/valyala/bytebufferpool"
)

// Numbers are kept as json.Number so the pretty-printed copy carries the upstream digits.
var prettyJSON = sonic.Config{
	UseNumber:   true,
	SortMapKeys: true,
}.Froze()

const maxNameCollisions = 5

// FileStore keeps snapshots as pretty-printed JSON files in a single directory.
type FileStore struct {
	dir string
	now func() time.Time
}

func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir, now: time.Now}
}

func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) Save(ctx context.Context, kind snapshot.Kind, matchID string, raw []byte) (snapshot.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return snapshot.Snapshot{}, err
	}

	var doc any
	if err := prettyJSON.Unmarshal(raw, &doc); err != nil {
		return snapshot.Snapshot{}, crerr.Wrapf(err, "decode %s payload match_id=%s", kind, matchID)
	}
	body, err := prettyJSON.MarshalIndent(doc, "", "  ")
	if err != nil {
		return snapshot.Snapshot{}, crerr.Wrapf(err, "encode %s payload match_id=%s", kind, matchID)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return snapshot.Snapshot{}, crerr.Wrapf(err, "create raw data dir %s", s.dir)
	}

	fetchedAt := s.now().UTC().Truncate(time.Second)
	for attempt := 0; attempt < maxNameCollisions; attempt++ {
		path := filepath.Join(s.dir, fileName(kind, matchID, fetchedAt))
		err := writeNew(path, body)
		if errors.Is(err, fs.ErrExist) {
			// Two fetches within the same second: the later one takes the next free second.
			fetchedAt = fetchedAt.Add(time.Second)
			continue
		}
		if err != nil {
			return snapshot.Snapshot{}, crerr.Wrapf(err, "write snapshot %s", path)
		}
		return snapshot.Snapshot{Kind: kind, MatchID: matchID, FetchedAt: fetchedAt, Path: path}, nil
	}
	return snapshot.Snapshot{}, crerr.Newf("no free snapshot name for %s match_id=%s", kind, matchID)
}

func (s *FileStore) Latest(ctx context.Context, kind snapshot.Kind, matchID string) (snapshot.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return snapshot.Snapshot{}, err
	}

	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return snapshot.Snapshot{}, crerr.Wrapf(snapshot.ErrNotFound, "%s match_id=%s", kind, matchID)
	}
	if err != nil {
		return snapshot.Snapshot{}, crerr.Wrapf(err, "list raw data dir %s", s.dir)
	}

	prefix := namePrefix(kind, matchID)
	latest := ""
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".json") {
			continue
		}
		if name > latest {
			latest = name
		}
	}
	if latest == "" {
		return snapshot.Snapshot{}, crerr.Wrapf(snapshot.ErrNotFound, "%s match_id=%s", kind, matchID)
	}

	stamp := strings.TrimSuffix(strings.TrimPrefix(latest, prefix), ".json")
	fetchedAt, _ := time.Parse(snapshot.TimestampLayout, stamp)
	return snapshot.Snapshot{
		Kind:      kind,
		MatchID:   matchID,
		FetchedAt: fetchedAt,
		Path:      filepath.Join(s.dir, latest),
	}, nil
}

func (s *FileStore) Read(ctx context.Context, item snapshot.Snapshot) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	raw, err := os.ReadFile(item.Path)
	if err != nil {
		return nil, crerr.Wrapf(err, "read snapshot %s", item.Path)
	}
	return raw, nil
}

func writeNew(path string, body []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	return f.Close()
}

// namePrefix ends with "_" so that match 401 never matches files of match 4011.
func namePrefix(kind snapshot.Kind, matchID string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(string(kind))
	_ = buf.WriteByte('_')
	if matchID != "" {
		_, _ = buf.WriteString(matchID)
		_ = buf.WriteByte('_')
	}
	return buf.String()
}

func fileName(kind snapshot.Kind, matchID string, fetchedAt time.Time) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString(namePrefix(kind, matchID))
	buf.B = fetchedAt.UTC().AppendFormat(buf.B, snapshot.TimestampLayout)
	_, _ = buf.WriteString(".json")
	return buf.String()
}
