package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/routine/pkg/day"
	"tableflip.dev/routine/pkg/geo"
)

// ErrCorrupt marks a stored value that could not be decoded. Callers treat
// the value as absent.
var ErrCorrupt = errors.New("store: corrupt value")

// Key prefixes of the two day-scoped key spaces.
const (
	TrackerPrefix  = "tracker"
	LocationPrefix = "location"
)

// Persistence is the day-keyed repository for completion and location records.
type Persistence interface {
	Completions(d day.Key) ([]string, error)
	StoreCompletions(d day.Key, ids []string) error
	DeleteCompletions(d day.Key) error

	Location(d day.Key) (geo.Coordinate, bool, error)
	StoreLocation(d day.Key, c geo.Coordinate) error
	DeleteLocation(d day.Key) error
	LocationDays(ctx context.Context) []day.Key

	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config, opts ...Option) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	p := &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// No cache: the server and the CLI write the same directory.
		CacheSizeMax: 0,
	}), basePath: basePath}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Option configures the Persistence returned by Load.
type Option func(*persistence)

// WithLogger sets the logger used for watcher diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(p *persistence) { p.log = l }
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	log      *log.Logger
}

func (p *persistence) logger() *log.Logger {
	if p.log == nil {
		return log.Default()
	}
	return p.log
}

// TrackerKey is the storage key of the completion record for d.
func TrackerKey(d day.Key) string { return TrackerPrefix + "_" + string(d) }

// LocationKey is the storage key of the location record for d.
func LocationKey(d day.Key) string { return LocationPrefix + "_" + string(d) }

func (p *persistence) readJSON(key string, v interface{}) (bool, error) {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("store: read %s: %w", key, err)
	}
	if err := json.Unmarshal(val, v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return true, nil
}

func (p *persistence) writeJSON(key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := p.d.Write(key, data); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (p *persistence) erase(key string) error {
	if !p.d.Has(key) {
		return nil
	}
	if err := p.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: erase %s: %w", key, err)
	}
	return nil
}

func (p *persistence) Completions(d day.Key) ([]string, error) {
	var ids []string
	found, err := p.readJSON(TrackerKey(d), &ids)
	if err != nil || !found {
		return []string{}, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func (p *persistence) StoreCompletions(d day.Key, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	return p.writeJSON(TrackerKey(d), ids)
}

func (p *persistence) DeleteCompletions(d day.Key) error {
	return p.erase(TrackerKey(d))
}

func (p *persistence) Location(d day.Key) (geo.Coordinate, bool, error) {
	var c geo.Coordinate
	found, err := p.readJSON(LocationKey(d), &c)
	if err != nil || !found {
		return geo.Coordinate{}, false, err
	}
	if !c.Valid() {
		return geo.Coordinate{}, false, fmt.Errorf("%w: %s: coordinate out of range", ErrCorrupt, LocationKey(d))
	}
	return c, true, nil
}

func (p *persistence) StoreLocation(d day.Key, c geo.Coordinate) error {
	return p.writeJSON(LocationKey(d), c)
}

func (p *persistence) DeleteLocation(d day.Key) error {
	return p.erase(LocationKey(d))
}

func (p *persistence) LocationDays(ctx context.Context) []day.Key {
	var days []day.Key
	for key := range p.d.KeysPrefix(LocationPrefix+"_", ctx.Done()) {
		if k, ok := dayOf(key, LocationPrefix); ok {
			days = append(days, k)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })
	return days
}

func dayOf(key, prefix string) (day.Key, bool) {
	rest, ok := strings.CutPrefix(key, prefix+"_")
	if !ok || rest == "" {
		return "", false
	}
	return day.Key(rest), true
}

// keyToPathTransform stores `tracker_2026-10-19` as tracker/2026-10-19.
func keyToPathTransform(s string) *diskv.PathKey {
	prefix, name, ok := strings.Cut(s, "_")
	if !ok {
		return &diskv.PathKey{Path: []string{}, FileName: s}
	}
	return &diskv.PathKey{
		Path:     []string{prefix},
		FileName: name,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return fmt.Sprintf("%s_%s", strings.Join(pathKey.Path, "_"), pathKey.FileName)
}
