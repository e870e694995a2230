package trend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/techequipments/engine/internal/metrics"
	"github.com/techequipments/engine/internal/models"
)

// SampleSource reads raw samples of a trend tag.
type SampleSource interface {
	FetchSamples(ctx context.Context, tag string, from, to time.Time) ([]models.Sample, error)
}

// TagResolver maps an equipment parameter item to its trend tag.
// An empty tag means the item has no trend.
type TagResolver interface {
	ResolveTrendTag(ctx context.Context, equipment, item string) (string, error)
}

// ScaleSource provides the MinR/MaxR scale of an equipment.
type ScaleSource interface {
	BaseRange(ctx context.Context, equipment string) (lo, hi float64, ok bool)
}

// Config holds the controller tuning.
type Config struct {
	WindowMinutes  int
	HistoryChunk   time.Duration
	RetentionHours int // 0 disables the history trim
	NavDebounce    time.Duration
	EdgeFraction   float64
	Overlap        time.Duration // re-read margin of incremental polls
	Location       *time.Location
	Now            func() time.Time
}

// DefaultConfig returns the settings of the parameter trend view.
func DefaultConfig() Config {
	return Config{
		WindowMinutes:  60,
		HistoryChunk:   60 * time.Minute,
		RetentionHours: 24,
		NavDebounce:    250 * time.Millisecond,
		EdgeFraction:   0.15,
		Overlap:        2 * time.Second,
		Location:       time.Local,
		Now:            time.Now,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.WindowMinutes < 1 {
		c.WindowMinutes = d.WindowMinutes
	}
	if c.HistoryChunk <= 0 {
		c.HistoryChunk = d.HistoryChunk
	}
	if c.RetentionHours < 0 {
		c.RetentionHours = 0
	}
	if c.NavDebounce <= 0 {
		c.NavDebounce = d.NavDebounce
	}
	if c.EdgeFraction <= 0 {
		c.EdgeFraction = d.EdgeFraction
	}
	if c.Overlap < 0 {
		c.Overlap = 0
	}
	if c.Location == nil {
		c.Location = d.Location
	}
	if c.Now == nil {
		c.Now = d.Now
	}
	return c
}

// Snapshot is a read-only copy of the controller state.
type Snapshot struct {
	Equipment string                `json:"equipment"`
	Group     models.TypeGroup      `json:"group"`
	Mode      models.TrendMode      `json:"mode"`
	Axis      models.TrendAxisState `json:"axis"`
	Series    []SeriesSpec          `json:"series"`
	Points    []models.TrendPoint   `json:"points"`
	Status    string                `json:"status"`
	Cycles    int                   `json:"cycles"`
}

// Controller owns the point buffer and axes of one trend view.
//
// Polls, backfills and live switches run one at a time behind gate.
// The buffer and axes are guarded by mu so readers never wait on I/O.
type Controller struct {
	source  SampleSource
	tags    TagResolver
	scale   ScaleSource
	catalog *Catalog
	cfg     Config
	nav     *Debouncer

	gate chan struct{}

	// owned by the gate holder
	trendEquip string
	tagCache   map[string]string
	lastFetch  map[string]time.Time

	mu            sync.RWMutex
	equipment     string
	group         models.TypeGroup
	windowMinutes int
	points        []models.TrendPoint
	axis          models.TrendAxisState
	status        string
	cycles        int
	onUpdate      func()

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewController creates a controller in live mode. scale may be nil.
func NewController(source SampleSource, tags TagResolver, scale ScaleSource, catalog *Catalog, cfg Config) *Controller {
	cfg = cfg.withDefaults()
	if catalog == nil {
		catalog = NewCatalog()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		source:        source,
		tags:          tags,
		scale:         scale,
		catalog:       catalog,
		cfg:           cfg,
		nav:           NewDebouncer(cfg.NavDebounce, cfg.Now),
		gate:          make(chan struct{}, 1),
		tagCache:      make(map[string]string),
		lastFetch:     make(map[string]time.Time),
		windowMinutes: cfg.WindowMinutes,
		ctx:           ctx,
		cancel:        cancel,
	}
	c.mu.Lock()
	c.resetStateLocked()
	c.mu.Unlock()
	return c
}

func (c *Controller) acquire(ctx context.Context) error {
	select {
	case c.gate <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *Controller) release() {
	<-c.gate
}

// Select sets the equipment shown by the view. The buffer is reset by the
// next poll when the name differs from the one being trended.
func (c *Controller) Select(equipment string, group models.TypeGroup) {
	c.nav.Cancel()
	c.mu.Lock()
	c.equipment = strings.TrimSpace(equipment)
	c.group = group
	c.mu.Unlock()
}

// SetWindowMinutes changes the live window. Values below 1 become 1.
func (c *Controller) SetWindowMinutes(n int) {
	if n < 1 {
		n = 1
	}
	c.mu.Lock()
	c.windowMinutes = n
	c.mu.Unlock()
}

// OnUpdate registers a callback run after every state change.
func (c *Controller) OnUpdate(fn func()) {
	c.mu.Lock()
	c.onUpdate = fn
	c.mu.Unlock()
}

func (c *Controller) notify() {
	c.mu.RLock()
	fn := c.onUpdate
	c.mu.RUnlock()
	if fn != nil {
		fn()
	}
}

func (c *Controller) windowLocked() time.Duration {
	return time.Duration(c.windowMinutes) * time.Minute
}

// Reset clears the buffer and the per-series caches, returns to live mode
// and pins the visible window to the last WindowMinutes.
func (c *Controller) Reset() {
	c.gate <- struct{}{}
	c.resetLocked()
	c.release()
	c.notify()
}

// resetLocked requires the gate.
func (c *Controller) resetLocked() {
	c.trendEquip = ""
	c.tagCache = make(map[string]string)
	c.lastFetch = make(map[string]time.Time)

	c.mu.Lock()
	c.resetStateLocked()
	c.mu.Unlock()
}

func (c *Controller) resetStateLocked() {
	c.points = nil
	c.axis.Live = true
	c.pinLiveLocked(c.cfg.Now())
	c.axis.WholeMin, c.axis.WholeMax = c.axis.VisualMin, c.axis.VisualMax
}

// pinLiveLocked pins the visual and whole range to the live window.
func (c *Controller) pinLiveLocked(now time.Time) {
	now = now.In(c.cfg.Location)
	c.axis.VisualMax = now
	c.axis.VisualMin = now.Add(-c.windowLocked())
	c.axis.WholeMin, c.axis.WholeMax = c.axis.VisualMin, c.axis.VisualMax
}

func (c *Controller) updateWholeLocked() {
	if oldest, newest, ok := Extent(c.points); ok {
		c.axis.WholeMin, c.axis.WholeMax = oldest, newest
	}
}

func (c *Controller) trimLocked() {
	if c.cfg.RetentionHours <= 0 {
		return
	}
	_, newest, ok := Extent(c.points)
	if !ok {
		return
	}
	c.points = EvictBefore(c.points, newest.Add(-time.Duration(c.cfg.RetentionHours)*time.Hour))
	c.updateWholeLocked()
}

// SetLiveMode returns to live mode. With reset the buffer is cleared as by
// Reset; otherwise the axes are pinned and points outside the window dropped.
func (c *Controller) SetLiveMode(ctx context.Context, reset bool) error {
	c.nav.Cancel()
	if err := c.acquire(ctx); err != nil {
		return err
	}
	if reset {
		c.resetLocked()
	} else {
		c.mu.Lock()
		c.axis.Live = true
		c.pinLiveLocked(c.cfg.Now())
		c.points = EvictBefore(c.points, c.axis.VisualMin)
		c.mu.Unlock()
	}
	c.release()
	c.notify()
	return nil
}

type fetched struct {
	key     string
	points  []models.TrendPoint
	newest  time.Time
	hasData bool
}

// PollOnce reads new samples for every series of the selected equipment and
// applies them together. A cancelled poll changes nothing and returns nil.
// Other failures are reported in the status text and returned.
func (c *Controller) PollOnce(ctx context.Context) error {
	if err := c.acquire(ctx); err != nil {
		metrics.TrendPollsTotal.WithLabelValues(metrics.OutcomeCancelled).Inc()
		return nil
	}
	err := c.poll(ctx)
	c.release()

	switch {
	case err == nil:
		metrics.TrendPollsTotal.WithLabelValues(metrics.OutcomeOK).Inc()
	case ctx.Err() != nil && (errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)):
		metrics.TrendPollsTotal.WithLabelValues(metrics.OutcomeCancelled).Inc()
		return nil
	default:
		metrics.TrendPollsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		c.mu.Lock()
		c.status = fmt.Sprintf("Trend error: %v", err)
		c.mu.Unlock()
		c.notify()
		return err
	}
	c.notify()
	return nil
}

func (c *Controller) poll(ctx context.Context) error {
	c.mu.RLock()
	equip, group, win := c.equipment, c.group, c.windowLocked()
	c.mu.RUnlock()

	if equip == "" {
		return nil
	}

	if !strings.EqualFold(c.trendEquip, equip) {
		c.trendEquip = equip
		c.tagCache = make(map[string]string)
		c.lastFetch = make(map[string]time.Time)

		c.mu.Lock()
		c.points = nil
		c.axis.Live = true
		c.mu.Unlock()
	}

	specs := c.catalog.Series(group)
	baseMin, baseMax := c.baseRange(ctx, equip, specs[0])
	end := c.cfg.Now().UTC()

	batches := make([]fetched, 0, len(specs))
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return err
		}

		tag, err := c.resolveTag(ctx, equip, spec.Key)
		if err != nil {
			return err
		}
		if tag == "" {
			continue
		}

		key := strings.ToUpper(spec.Key)
		start := end.Add(-win)
		if last, ok := c.lastFetch[key]; ok {
			start = last.Add(-c.cfg.Overlap)
		}

		samples, err := c.source.FetchSamples(ctx, tag, start, end)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", tag, err)
		}
		batches = append(batches, c.toPoints(spec, samples, baseMin, baseMax))
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	for _, b := range batches {
		if b.hasData {
			c.points = AppendNewer(c.points, b.points, b.key)
		}
	}
	c.axis.YMin, c.axis.YMax = baseMin, baseMax

	now := c.cfg.Now()
	if c.axis.Live {
		c.pinLiveLocked(now)
		c.points = EvictBefore(c.points, c.axis.VisualMin)
	} else {
		c.updateWholeLocked()
		c.trimLocked()
	}
	c.cycles++
	c.status = fmt.Sprintf("Trends=%d, Points=%d | %s | %d cycles",
		len(specs), len(c.points), now.In(c.cfg.Location).Format("15:04:05"), c.cycles)
	c.mu.Unlock()

	for _, b := range batches {
		if b.hasData {
			c.lastFetch[strings.ToUpper(b.key)] = b.newest
		}
	}
	return nil
}

// baseRange picks the Y axis: the base series range, then the equipment
// scale, then 0..1.
func (c *Controller) baseRange(ctx context.Context, equip string, base SeriesSpec) (float64, float64) {
	if lo, hi, ok := base.Range(); ok {
		return lo, hi
	}
	if c.scale != nil {
		if lo, hi, ok := c.scale.BaseRange(ctx, equip); ok {
			return ordered(lo, hi)
		}
	}
	return 0, 1
}

func (c *Controller) resolveTag(ctx context.Context, equip, item string) (string, error) {
	key := strings.ToUpper(item)
	if tag, ok := c.tagCache[key]; ok {
		return tag, nil
	}
	tag, err := c.tags.ResolveTrendTag(ctx, equip, item)
	if err != nil {
		return "", fmt.Errorf("resolve trend %s.%s: %w", equip, item, err)
	}
	tag = strings.TrimSpace(tag)
	if tag != "" {
		c.tagCache[key] = tag
	}
	return tag, nil
}

func (c *Controller) toPoints(spec SeriesSpec, samples []models.Sample, baseMin, baseMax float64) fetched {
	out := fetched{key: spec.Key, points: make([]models.TrendPoint, 0, len(samples))}

	fromMin, fromMax := baseMin, baseMax
	if lo, hi, ok := spec.Range(); ok && !spec.Base {
		fromMin, fromMax = lo, hi
	}

	for _, s := range samples {
		v := s.Value
		if !spec.Base {
			v = MapToBase(s.Value, fromMin, fromMax, baseMin, baseMax)
		}
		out.points = append(out.points, models.TrendPoint{
			Series:   spec.Key,
			Time:     s.Time.In(c.cfg.Location),
			Value:    v,
			RawValue: s.Value,
		})
		if !out.hasData || s.Time.After(out.newest) {
			out.newest = s.Time.UTC()
			out.hasData = true
		}
	}
	sort.SliceStable(out.points, func(i, j int) bool {
		return out.points[i].Time.Before(out.points[j].Time)
	})
	return out
}

// OnUserRangeChanged handles a scroll or zoom of the visible range. It
// switches to history mode and checks for a backfill in the background.
// Calls closer than the navigation debounce return false; the latest of
// them is applied once navigation has been quiet for the debounce period.
func (c *Controller) OnUserRangeChanged(visMin, visMax time.Time) bool {
	return c.nav.Do(func() { c.applyRange(visMin, visMax) })
}

func (c *Controller) applyRange(visMin, visMax time.Time) {
	if c.ctx.Err() != nil {
		return
	}

	c.mu.Lock()
	c.axis.Live = false
	c.axis.VisualMin = visMin.In(c.cfg.Location)
	c.axis.VisualMax = visMax.In(c.cfg.Location)
	c.mu.Unlock()
	c.notify()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		if _, err := c.BackfillIfNeeded(c.ctx, visMin, visMax); err != nil && c.ctx.Err() == nil {
			fmt.Printf("[Trend] backfill failed: %v\n", err)
		}
	}()
}

// BackfillIfNeeded loads one HistoryChunk before the oldest buffered point
// when visMin is within EdgeFraction of the visible span from it. The
// visible range is not changed and nothing is loaded in live mode. It
// reports whether a chunk was merged.
func (c *Controller) BackfillIfNeeded(ctx context.Context, visMin, visMax time.Time) (bool, error) {
	if err := c.acquire(ctx); err != nil {
		return false, err
	}
	defer c.release()

	c.mu.RLock()
	live := c.axis.Live
	loadedMin, _, ok := Extent(c.points)
	win := c.windowLocked()
	c.mu.RUnlock()
	if live || !ok {
		return false, nil
	}

	span := visMax.Sub(visMin)
	if span <= 0 {
		span = win
	}
	threshold := loadedMin.Add(time.Duration(float64(span) * c.cfg.EdgeFraction))
	if visMin.After(threshold) {
		return false, nil
	}

	to := loadedMin.UTC()
	from := to.Add(-c.cfg.HistoryChunk)
	merged, err := c.loadHistoryWindow(ctx, from, to)
	if err != nil {
		return false, err
	}
	if merged {
		metrics.TrendBackfillsTotal.Inc()
		c.notify()
	}
	return merged, nil
}

// loadHistoryWindow fetches [from, to] for every series and merges it into
// the buffer. Requires the gate.
func (c *Controller) loadHistoryWindow(ctx context.Context, from, to time.Time) (bool, error) {
	c.mu.RLock()
	equip, group := c.equipment, c.group
	c.mu.RUnlock()

	if equip == "" || !strings.EqualFold(c.trendEquip, equip) {
		return false, nil
	}

	specs := c.catalog.Series(group)
	baseMin, baseMax := c.baseRange(ctx, equip, specs[0])

	var incoming []models.TrendPoint
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		tag, err := c.resolveTag(ctx, equip, spec.Key)
		if err != nil {
			return false, err
		}
		if tag == "" {
			continue
		}
		samples, err := c.source.FetchSamples(ctx, tag, from, to)
		if err != nil {
			return false, fmt.Errorf("fetch %s: %w", tag, err)
		}
		incoming = append(incoming, c.toPoints(spec, samples, baseMin, baseMax).points...)
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if len(incoming) == 0 {
		return false, nil
	}

	c.mu.Lock()
	c.points = MergePoints(c.points, incoming)
	c.updateWholeLocked()
	c.trimLocked()
	c.mu.Unlock()
	return true, nil
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	mode := models.ModeHistory
	if c.axis.Live {
		mode = models.ModeLive
	}
	points := make([]models.TrendPoint, len(c.points))
	copy(points, c.points)
	return Snapshot{
		Equipment: c.equipment,
		Group:     c.group,
		Mode:      mode,
		Axis:      c.axis,
		Series:    c.catalog.Series(c.group),
		Points:    points,
		Status:    c.status,
		Cycles:    c.cycles,
	}
}

// Mode returns the navigation mode.
func (c *Controller) Mode() models.TrendMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.axis.Live {
		return models.ModeLive
	}
	return models.ModeHistory
}

// Status returns the status line.
func (c *Controller) Status() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.status
}

// Wait blocks until background backfills have finished.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// Close cancels background work and waits for it.
func (c *Controller) Close() {
	c.nav.Cancel()
	c.cancel()
	c.wg.Wait()
}
