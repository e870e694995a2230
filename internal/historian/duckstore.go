// Package historian stores raw trend samples in DuckDB and serves them as
// the time-series source of the engine.
package historian

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/marcboeker/go-duckdb"
	"github.com/techequipments/engine/internal/metrics"
	"github.com/techequipments/engine/internal/models"
)

// Options tunes the DuckDB store.
type Options struct {
	MemoryLimit string // e.g. "1GB"
	Threads     int
	MaxQueries  int // concurrent queries
	BatchSize   int // samples buffered before an Appender flush
	MaxRows     int // safety limit of one fetch
}

// DefaultOptions returns the settings used by the server.
func DefaultOptions() Options {
	return Options{
		MemoryLimit: "1GB",
		Threads:     4,
		MaxQueries:  3,
		BatchSize:   50000,
		MaxRows:     500000,
	}
}

type sampleRow struct {
	tag     string
	ts      int64
	value   float64
	quality string
}

// TagInfo summarizes the stored samples of one tag.
type TagInfo struct {
	Tag   string    `json:"tag"`
	Count int64     `json:"count"`
	First time.Time `json:"first"`
	Last  time.Time `json:"last"`
}

// DuckStore is a DuckDB-backed sample store.
type DuckStore struct {
	db     *sql.DB
	dbPath string
	opts   Options

	mu        sync.Mutex // guards batch and lastError
	batch     []sampleRow
	lastError error

	// Semaphore to limit concurrent queries
	querySem chan struct{}
}

func normalizeTag(tag string) string {
	return strings.ToUpper(strings.TrimSpace(tag))
}

// Open opens or creates the historian database at dbPath.
func Open(dbPath string, opts Options) (*DuckStore, error) {
	d := DefaultOptions()
	if opts.MemoryLimit == "" {
		opts.MemoryLimit = d.MemoryLimit
	}
	if opts.Threads <= 0 {
		opts.Threads = d.Threads
	}
	if opts.MaxQueries <= 0 {
		opts.MaxQueries = d.MaxQueries
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = d.BatchSize
	}
	if opts.MaxRows <= 0 {
		opts.MaxRows = d.MaxRows
	}

	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create historian directory: %w", err)
		}
	}

	fmt.Printf("[Historian] Opening database at: %s\n", dbPath)
	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		pragmas := []string{
			fmt.Sprintf("PRAGMA memory_limit='%s'", opts.MemoryLimit),
			fmt.Sprintf("PRAGMA threads=%d", opts.Threads),
			"PRAGMA enable_progress_bar=false",
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				fmt.Printf("[Historian] Pragma error: %v\n", err)
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS samples (
			tag     VARCHAR NOT NULL,
			ts      BIGINT  NOT NULL,
			value   DOUBLE  NOT NULL,
			quality VARCHAR NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	if _, err := db.Exec("CREATE INDEX IF NOT EXISTS idx_samples_tag_ts ON samples(tag, ts)"); err != nil {
		fmt.Printf("[Historian] Warning: index creation failed: %v\n", err)
	}

	return &DuckStore{
		db:       db,
		dbPath:   dbPath,
		opts:     opts,
		batch:    make([]sampleRow, 0, opts.BatchSize),
		querySem: make(chan struct{}, opts.MaxQueries),
	}, nil
}

// Path returns the database file path.
func (ds *DuckStore) Path() string {
	return ds.dbPath
}

// Append buffers samples of a tag. Full batches are flushed with the Appender API.
func (ds *DuckStore) Append(tag string, samples ...models.Sample) error {
	key := normalizeTag(tag)
	if key == "" {
		return fmt.Errorf("empty tag")
	}

	ds.mu.Lock()
	defer ds.mu.Unlock()

	for _, s := range samples {
		q := s.Quality
		if q == "" {
			q = models.QualityGood
		}
		ds.batch = append(ds.batch, sampleRow{tag: key, ts: s.Time.UnixMilli(), value: s.Value, quality: string(q)})
		if len(ds.batch) >= ds.opts.BatchSize {
			if err := ds.flushLocked(); err != nil {
				ds.lastError = err
				return err
			}
		}
	}
	return nil
}

// Flush writes buffered samples.
func (ds *DuckStore) Flush() error {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.flushLocked()
}

// LastError returns the last error that occurred during batch flush
func (ds *DuckStore) LastError() error {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.lastError
}

func (ds *DuckStore) flushLocked() error {
	if len(ds.batch) == 0 {
		return nil
	}

	startTime := time.Now()
	conn, err := ds.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("failed to get connection: %w", err)
	}
	defer conn.Close()

	err = conn.Raw(func(driverConn interface{}) error {
		dConn, ok := driverConn.(*duckdb.Conn)
		if !ok {
			return fmt.Errorf("failed to cast to duckdb.Conn")
		}

		appender, err := duckdb.NewAppenderFromConn(dConn, "", "samples")
		if err != nil {
			return fmt.Errorf("failed to create appender: %w", err)
		}
		defer appender.Close()

		for i, r := range ds.batch {
			if err := appender.AppendRow(r.tag, r.ts, r.value, r.quality); err != nil {
				return fmt.Errorf("failed to append row %d: %w", i, err)
			}
		}
		return appender.Flush()
	})
	if err != nil {
		return fmt.Errorf("appender error: %w", err)
	}

	n := len(ds.batch)
	metrics.HistorianSamplesAppended.Add(float64(n))
	fmt.Printf("[Historian] Flushed %d samples in %v\n", n, time.Since(startTime))
	ds.batch = ds.batch[:0]
	return nil
}

func (ds *DuckStore) acquire(ctx context.Context) error {
	select {
	case ds.querySem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (ds *DuckStore) release() {
	<-ds.querySem
}

// FetchSamples returns the samples of tag with from <= time <= to, oldest first.
func (ds *DuckStore) FetchSamples(ctx context.Context, tag string, from, to time.Time) ([]models.Sample, error) {
	if err := ds.acquire(ctx); err != nil {
		return nil, err
	}
	defer ds.release()

	query := fmt.Sprintf(`
		SELECT ts, value, quality FROM samples
		WHERE tag = ? AND ts >= ? AND ts <= ?
		ORDER BY ts
		LIMIT %d
	`, ds.opts.MaxRows)
	rows, err := ds.db.QueryContext(ctx, query, normalizeTag(tag), from.UnixMilli(), to.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("sample query failed: %w", err)
	}
	defer rows.Close()

	samples := make([]models.Sample, 0, 256)
	for rows.Next() {
		var ts int64
		var s models.Sample
		var quality string
		if err := rows.Scan(&ts, &s.Value, &quality); err != nil {
			return nil, err
		}
		s.Time = time.UnixMilli(ts).UTC()
		s.Quality = models.ParseQuality(quality)
		samples = append(samples, s)
	}
	if len(samples) == ds.opts.MaxRows {
		fmt.Printf("[Historian] Warning: fetch of %s truncated at %d samples\n", tag, ds.opts.MaxRows)
	}
	return samples, rows.Err()
}

// Tags lists stored tags with their sample counts and time range.
func (ds *DuckStore) Tags(ctx context.Context) ([]TagInfo, error) {
	if err := ds.acquire(ctx); err != nil {
		return nil, err
	}
	defer ds.release()

	rows, err := ds.db.QueryContext(ctx, `
		SELECT tag, COUNT(*), MIN(ts), MAX(ts) FROM samples
		GROUP BY tag ORDER BY tag
	`)
	if err != nil {
		return nil, fmt.Errorf("tag query failed: %w", err)
	}
	defer rows.Close()

	var tags []TagInfo
	for rows.Next() {
		var info TagInfo
		var first, last int64
		if err := rows.Scan(&info.Tag, &info.Count, &first, &last); err != nil {
			return nil, err
		}
		info.First = time.UnixMilli(first).UTC()
		info.Last = time.UnixMilli(last).UTC()
		tags = append(tags, info)
	}
	return tags, rows.Err()
}

// TimeRange returns the stored time range of a tag, or nil when it has no samples.
func (ds *DuckStore) TimeRange(ctx context.Context, tag string) (*models.TimeRange, error) {
	if err := ds.acquire(ctx); err != nil {
		return nil, err
	}
	defer ds.release()

	var first, last sql.NullInt64
	err := ds.db.QueryRowContext(ctx, "SELECT MIN(ts), MAX(ts) FROM samples WHERE tag = ?", normalizeTag(tag)).Scan(&first, &last)
	if err != nil {
		return nil, fmt.Errorf("range query failed: %w", err)
	}
	if !first.Valid || !last.Valid {
		return nil, nil
	}
	return &models.TimeRange{
		Start: time.UnixMilli(first.Int64).UTC(),
		End:   time.UnixMilli(last.Int64).UTC(),
	}, nil
}

// Prune deletes samples older than before and returns how many were removed.
func (ds *DuckStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	if err := ds.acquire(ctx); err != nil {
		return 0, err
	}
	defer ds.release()

	res, err := ds.db.ExecContext(ctx, "DELETE FROM samples WHERE ts < ?", before.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("prune failed: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		fmt.Printf("[Historian] Pruned %d samples older than %s\n", n, before.Format(time.RFC3339))
	}
	return n, nil
}

// Close flushes pending samples and closes the database. The file is kept.
func (ds *DuckStore) Close() error {
	flushErr := ds.Flush()
	if ds.db != nil {
		if err := ds.db.Close(); err != nil {
			return err
		}
	}
	return flushErr
}
