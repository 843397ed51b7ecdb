// Package engine provides Map, the coordinator that owns the loaded
// data model, the shared output image, and the render pipeline that
// turns one into the other. It mirrors the teacher's engine package in
// spirit — a single stateful type exposing a small function API to a
// thin host — but the state and operations are the renderer's own.
package engine

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"sovmap/internal/canvas"
	"sovmap/internal/codec"
	"sovmap/internal/config"
	"sovmap/internal/influence"
	"sovmap/internal/labels"
	"sovmap/internal/logger"
	"sovmap/internal/model"
	"sovmap/internal/scorer"
	"sovmap/internal/store"
	"sovmap/internal/worker"
)

// Map is the engine coordinator. It holds a read/write lock around the
// whole data model so that load_data, update_size, and
// set_old_owner_image are exclusive with rendering and label
// extraction, per the concurrency discipline the rest of this package
// implements.
type Map struct {
	mu sync.RWMutex

	cfg config.Config

	world      *model.World
	dataLoaded bool

	image   *canvas.Image
	imageMu sync.Mutex

	ownerIndex    []uint64
	oldOwnerIndex []uint64

	renderGroup singleflight.Group
	ledger      *store.Store
}

// New constructs a Map with the given configuration, an empty data
// model, and a freshly allocated image/owner index of cfg's dimensions.
func New(cfg config.Config) *Map {
	m := &Map{
		cfg:   cfg,
		world: model.NewWorld(),
	}
	m.resetBuffers()
	return m
}

func (m *Map) resetBuffers() {
	m.image = canvas.New(m.cfg.Width, m.cfg.Height)
	m.ownerIndex = make([]uint64, m.cfg.Width*m.cfg.Height)
	m.oldOwnerIndex = nil
}

// SetLedger attaches a render-run ledger. A nil ledger (the default)
// means render runs are never recorded.
func (m *Map) SetLedger(s *store.Store) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ledger = s
}

// Width returns the configured image width.
func (m *Map) Width() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.Width
}

// Height returns the configured image height.
func (m *Map) Height() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg.Height
}

// UpdateSize changes the image dimensions and sample rate, resetting
// the image and owner index and clearing any loaded old-owner overlay.
// Exclusive with render and label extraction.
func (m *Map) UpdateSize(width, height, sampleRate int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cfg.Width = width
	m.cfg.Height = height
	m.cfg.SampleRate = sampleRate
	m.resetBuffers()
}

// LoadData decodes a universe from r per the external binary format
// and replaces the loaded owners, systems, and jump graph. Exclusive
// with render and label extraction.
func (m *Map) LoadData(r io.Reader) error {
	universe, err := codec.Decode(r)
	if err != nil {
		return err
	}
	return m.LoadDataValues(universe.Owners, universe.Systems, universe.Jumps)
}

// LoadDataFile opens path and calls LoadData on its contents.
func (m *Map) LoadDataFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, model.ErrIOFailure)
	}
	defer f.Close()
	return m.LoadData(f)
}

// LoadDataValues populates the data model directly from already-decoded
// records, the entry point LoadData itself uses after decoding and the
// one callers with an in-memory universe (tests, or a future alternate
// decoder) can use without round-tripping through bytes.
func (m *Map) LoadDataValues(owners []codec.OwnerRecord, systems []codec.SystemRecord, jumps []codec.JumpRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	world := model.NewWorld()
	for _, o := range owners {
		world.Owners[o.ID] = model.NewOwner(o.ID, o.Name, o.Color, o.NPC)
	}
	for _, s := range systems {
		world.Systems[s.ID] = &model.SolarSystem{
			ID:              s.ID,
			ConstellationID: s.ConstellationID,
			RegionID:        s.RegionID,
			X:               s.X,
			Y:               s.Y,
			HasStation:      s.HasStation,
			SovPower:        s.SovPower,
			OwnerID:         s.OwnerID,
		}
	}
	for _, j := range jumps {
		for _, n := range j.Neighbors {
			world.Jumps.AddJump(j.Source, n)
		}
	}

	m.world = world
	m.dataLoaded = true
	logger.Info("ENGINE", fmt.Sprintf("loaded %d owners, %d systems, %d jump entries", len(owners), len(systems), len(jumps)))
	return nil
}

// CalculateInfluence runs the bounded diffusion propagator over the
// loaded data model, populating every system's influence list and the
// world's seed set.
func (m *Map) CalculateInfluence() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.dataLoaded {
		return fmt.Errorf("calculate influence before load_data: %w", model.ErrInvalidState)
	}
	return influence.New(m.world, m.cfg).Run()
}

// RenderMultithreaded partitions the image into one contiguous column
// slab per CPU, runs one worker per slab concurrently, and joins them
// before returning. Overlapping calls are coalesced by a singleflight
// group: only one render is ever in flight at a time, and every caller
// that arrived while it was running observes its result. On error the
// image and owner index are left exactly as they were before the call —
// a partial render is never visible.
func (m *Map) RenderMultithreaded() error {
	_, err, _ := m.renderGroup.Do("render", func() (any, error) {
		return nil, m.render()
	})
	return err
}

func (m *Map) render() error {
	// A full Lock, not RLock: render both reads the data model and, at
	// the end, publishes a new image/owner index. Readers of that
	// published state (SavePNG, SaveOwnerImage, CalculateLabels) also
	// take mu, so this keeps the swap from racing with them — the
	// singleflight group already guarantees only one render runs at a
	// time, so this costs nothing beyond what was already serialized.
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.dataLoaded {
		return fmt.Errorf("render before load_data: %w", model.ErrInvalidState)
	}

	width, height := m.cfg.Width, m.cfg.Height
	stagingImage := canvas.New(width, height)
	stagingOwnerIndex := make([]uint64, width*height)
	for _, owner := range m.world.Owners {
		owner.ResetPixelCount()
	}

	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	if n > width {
		n = width
	}

	sc := scorer.New(m.world, m.cfg)

	var g errgroup.Group
	for i := 0; i < n; i++ {
		startX := i * width / n
		endX := (i + 1) * width / n
		col := &worker.Column{
			StartX:        startX,
			EndX:          endX,
			World:         m.world,
			Cfg:           m.cfg,
			Scorer:        sc,
			OwnerIndex:    stagingOwnerIndex,
			OldOwnerIndex: m.oldOwnerIndex,
			Image:         stagingImage,
			ImageMu:       &m.imageMu,
		}
		g.Go(col.Render)
	}

	if err := g.Wait(); err != nil {
		return err
	}

	m.image = stagingImage
	m.ownerIndex = stagingOwnerIndex
	return nil
}

// SavePNG writes the current rendered image as a PNG at path.
func (m *Map) SavePNG(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.image.WritePNG(path)
}

// SaveOwnerImage writes the current OwnerIndex in SOVNV1.0 format.
func (m *Map) SaveOwnerImage(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, model.ErrIOFailure)
	}
	defer f.Close()

	width, height := m.cfg.Width, m.cfg.Height
	return codec.EncodeOwnerIndex(f, width, height, func(x, y int) uint64 {
		return m.ownerIndex[x+y*width]
	})
}

// LoadOldOwnerImage reads a SOVNV1.0 owner index from path and installs
// it as the OldOwnerIndex overlay the next render's hatch pattern is
// drawn against. Exclusive with render and label extraction.
func (m *Map) LoadOldOwnerImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, model.ErrIOFailure)
	}
	defer f.Close()

	m.mu.Lock()
	defer m.mu.Unlock()
	oldIndex, err := codec.DecodeOwnerIndex(f, m.cfg.Width, m.cfg.Height)
	if err != nil {
		return err
	}
	m.oldOwnerIndex = oldIndex
	return nil
}

// DebugSaveOldOwnerImage renders the currently loaded OldOwnerIndex
// overlay back out as a flat PNG — each pixel painted its owner's plain
// color at full alpha, with no influence shading and no border
// detection — a diagnostic aid for inspecting what overlay a render
// actually used, independent of how the render pipeline would shade it.
func (m *Map) DebugSaveOldOwnerImage(path string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.oldOwnerIndex == nil {
		return fmt.Errorf("no old owner image loaded: %w", model.ErrInvalidState)
	}

	width, height := m.cfg.Width, m.cfg.Height
	img := canvas.New(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			ownerID := m.oldOwnerIndex[x+y*width]
			if ownerID == 0 {
				continue
			}
			owner := m.world.Owners[ownerID]
			if owner == nil {
				continue
			}
			img.SetPixelUnsafe(x, y, owner.Color.R, owner.Color.G, owner.Color.B, 255)
		}
	}
	return img.WritePNG(path)
}

// CalculateLabels extracts one label per contiguous owner region from
// the current OwnerIndex. This is destructive: every sampled grid cell
// the flood fill consumes is zeroed in the OwnerIndex; callers that need the index
// afterward must SaveOwnerImage (or otherwise capture it) first.
func (m *Map) CalculateLabels() []labels.Label {
	m.mu.Lock()
	defer m.mu.Unlock()
	return labels.Extract(m.ownerIndex, m.cfg.Width, m.cfg.Height, m.cfg)
}

// RecordRun stamps and records a render-run entry in the attached
// ledger, if any, covering the render that started at startedAt; its
// duration is the time elapsed from startedAt until this call.
// renderErr, if non-nil, is stored as the
// run's error field instead of aborting the record.
func (m *Map) RecordRun(startedAt time.Time, renderErr error) error {
	m.mu.RLock()
	ledger := m.ledger
	world := m.world
	cfg := m.cfg
	hadOverlay := m.oldOwnerIndex != nil
	m.mu.RUnlock()

	if ledger == nil {
		return nil
	}
	errText := ""
	if renderErr != nil {
		errText = renderErr.Error()
	}
	jumpCount := 0
	for _, neighbors := range world.Jumps.Adj {
		jumpCount += len(neighbors)
	}
	return ledger.RecordRun(store.Run{
		StartedAt:   startedAt,
		Duration:    time.Since(startedAt),
		OwnerCount:  len(world.Owners),
		SystemCount: len(world.Systems),
		JumpCount:   jumpCount,
		Width:       cfg.Width,
		Height:      cfg.Height,
		HadOverlay:  hadOverlay,
		Err:         errText,
	})
}
