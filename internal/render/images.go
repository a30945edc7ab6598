package render

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"

	"xarxa/internal/catalog"
)

const (
	placeholderSide = 128
	loadWorkers     = 4
)

// Placeholder stands in for thumbnails that fail to load.
var Placeholder image.Image = func() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, placeholderSide, placeholderSide))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{0x33, 0x33, 0x33, 0xff}), image.Point{}, draw.Src)
	return img
}()

// Result is one finished load.
type Result struct {
	ID    catalog.NodeID
	Image image.Image
	Err   error
}

// ImageCache loads node thumbnails in the background, at most once per node.
// Finished loads are handed back on Results and become visible only once
// delivered on the caller's loop.
type ImageCache struct {
	cat     *catalog.Catalog
	resolve func(ref string) string
	log     *slog.Logger

	mu       sync.Mutex
	images   map[catalog.NodeID]image.Image
	inflight map[catalog.NodeID]bool
	results  chan Result
	sem      chan struct{}

	onLoad func(catalog.NodeID)
}

// NewImageCache resolves image references through resolve; nil resolve
// uses the reference as a path.
func NewImageCache(cat *catalog.Catalog, resolve func(string) string, log *slog.Logger) *ImageCache {
	if resolve == nil {
		resolve = func(ref string) string { return ref }
	}
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &ImageCache{
		cat:      cat,
		resolve:  resolve,
		log:      log.With("component", "images"),
		images:   make(map[catalog.NodeID]image.Image),
		inflight: make(map[catalog.NodeID]bool),
		results:  make(chan Result, cat.Len()+1),
		sem:      make(chan struct{}, loadWorkers),
	}
}

// OnLoad sets the callback run when a thumbnail is delivered. Setting it
// again replaces the previous one.
func (c *ImageCache) OnLoad(fn func(catalog.NodeID)) {
	c.mu.Lock()
	c.onLoad = fn
	c.mu.Unlock()
}

func (c *ImageCache) Results() <-chan Result { return c.results }

// Get returns the thumbnail for id, starting a load if there is none yet.
func (c *ImageCache) Get(id catalog.NodeID) (image.Image, bool) {
	c.mu.Lock()
	img, ok := c.images[id]
	c.mu.Unlock()
	if !ok {
		c.Request(id)
	}
	return img, ok
}

func (c *ImageCache) Loaded() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.images)
}

// Request starts a background load for id unless one is cached or running.
func (c *ImageCache) Request(id catalog.NodeID) {
	n, ok := c.cat.Lookup(id)
	if !ok {
		return
	}
	c.mu.Lock()
	if _, done := c.images[id]; done || c.inflight[id] {
		c.mu.Unlock()
		return
	}
	c.inflight[id] = true
	c.mu.Unlock()

	go func() {
		c.sem <- struct{}{}
		img, err := decodeFile(c.resolve(n.ImageRef))
		<-c.sem
		c.results <- Result{ID: id, Image: img, Err: err}
	}()
}

// RequestAll starts loads for every node.
func (c *ImageCache) RequestAll() {
	for _, n := range c.cat.Nodes() {
		c.Request(n.ID)
	}
}

// Deliver stores a finished load and runs the OnLoad callback. Failed loads
// get the placeholder.
func (c *ImageCache) Deliver(r Result) {
	c.store(r)
	c.mu.Lock()
	fn := c.onLoad
	c.mu.Unlock()
	if fn != nil {
		fn(r.ID)
	}
}

func (c *ImageCache) store(r Result) {
	img := r.Image
	if r.Err != nil || img == nil {
		c.log.Warn("thumbnail unavailable, using placeholder", "node_id", int(r.ID), "err", r.Err)
		img = Placeholder
	}
	c.mu.Lock()
	delete(c.inflight, r.ID)
	c.images[r.ID] = img
	c.mu.Unlock()
}

// Drain delivers every result that is ready without blocking and reports
// how many there were.
func (c *ImageCache) Drain() int {
	n := 0
	for {
		select {
		case r := <-c.results:
			c.Deliver(r)
			n++
		default:
			return n
		}
	}
}

// LoadAll loads every missing thumbnail and returns once all are stored.
// Failed loads fall back to the placeholder; only cancellation is an error.
// OnLoad runs for each stored node on the calling goroutine.
func (c *ImageCache) LoadAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadWorkers)

	var (
		mu     sync.Mutex
		loaded []catalog.NodeID
	)
	for _, n := range c.cat.Nodes() {
		c.mu.Lock()
		_, done := c.images[n.ID]
		c.mu.Unlock()
		if done {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			img, err := decodeFile(c.resolve(n.ImageRef))
			c.store(Result{ID: n.ID, Image: img, Err: err})
			mu.Lock()
			loaded = append(loaded, n.ID)
			mu.Unlock()
			return nil
		})
	}
	err := g.Wait()

	c.mu.Lock()
	fn := c.onLoad
	c.mu.Unlock()
	if fn != nil {
		for _, id := range loaded {
			fn(id)
		}
	}
	return err
}

// Candidates lists the files tried for path, a .webp sibling first.
func Candidates(path string) []string {
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, ".png") {
		return []string{strings.TrimSuffix(path, ext) + ".webp", path}
	}
	return []string{path}
}

func decodeFile(path string) (image.Image, error) {
	var lastErr error
	for _, p := range Candidates(path) {
		img, err := decodeOne(p)
		if err == nil {
			return img, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func decodeOne(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}
