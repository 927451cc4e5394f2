package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/thep200/trending-crawler/cfg"
	"github.com/thep200/trending-crawler/internal/model"
	"github.com/thep200/trending-crawler/pkg/log"
)

// FileStore keeps one JSON document per calendar month, a map from language
// to its snapshot list. Writes are whole-file read-modify-write; a temp file
// plus rename keeps readers from ever seeing a torn document, but two
// concurrent writers still race last-write-wins. Single-writer scheduling is
// an assumed precondition, not enforced here.
type FileStore struct {
	Logger  log.Logger
	Config  *cfg.Config
	monthFn func() string
}

func NewFileStore(logger log.Logger, config *cfg.Config) (*FileStore, error) {
	return &FileStore{
		Logger:  logger,
		Config:  config,
		monthFn: model.YearMonth,
	}, nil
}

func (f *FileStore) filePath(month string) string {
	return filepath.Join(f.Config.Store.DataDir, month+".json")
}

func (f *FileStore) defaultData() map[string][]model.TrendingSnapshot {
	data := make(map[string][]model.TrendingSnapshot)
	for _, lang := range f.Config.Trending.Languages {
		data[lang] = []model.TrendingSnapshot{}
	}
	return data
}

// load reads the month document and resolves every language to the current
// snapshot shape. Missing or malformed files degrade to the default empty
// structure; a broken store file must never take the caller down with it.
func (f *FileStore) load(ctx context.Context, month string) map[string][]model.TrendingSnapshot {
	data := f.defaultData()

	raw, err := os.ReadFile(f.filePath(month))
	if err != nil {
		if !os.IsNotExist(err) {
			f.Logger.Error(ctx, "Failed to read store file %s: %v", f.filePath(month), err)
		}
		return data
	}
	if len(raw) == 0 {
		return data
	}

	parsed := make(map[string]model.LanguageData)
	if err := json.Unmarshal(raw, &parsed); err != nil {
		f.Logger.Error(ctx, "Failed to parse store file %s: %v", f.filePath(month), err)
		return data
	}

	for lang := range parsed {
		languageData := parsed[lang]
		if languageData.IsLegacy() {
			f.Logger.Info(ctx, "Upgrading legacy storage shape for language %s in %s", lang, month)
		}
		data[lang] = languageData.Resolve(lang, month)
	}
	return data
}

func (f *FileStore) save(ctx context.Context, month string, data map[string][]model.TrendingSnapshot) error {
	encoded := make(map[string]model.LanguageData, len(data))
	for lang, snapshots := range data {
		encoded[lang] = model.NewLanguageData(snapshots)
	}

	raw, err := json.MarshalIndent(encoded, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store document: %w", err)
	}

	path := f.filePath(month)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	// Rename is atomic on the same filesystem, so readers see the old or the
	// new document, never a partial one.
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	f.Logger.Info(ctx, "Saved results: %s", path)
	return nil
}

func (f *FileStore) Upsert(ctx context.Context, snapshot model.TrendingSnapshot) error {
	if snapshot.Language == "" {
		return nil
	}

	month := f.monthFn()
	data := f.load(ctx, month)

	key := snapshot.Key()
	list := data[snapshot.Language]
	replaced := false
	for i := range list {
		if list[i].Key() == key {
			list[i] = snapshot
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, snapshot)
	}
	data[snapshot.Language] = list

	return f.save(ctx, month, data)
}

func (f *FileStore) Read(ctx context.Context, query model.Query) ([]model.TrendingSnapshot, error) {
	data := f.load(ctx, f.monthFn())

	languages := make([]string, 0, len(data))
	for lang := range data {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	result := make([]model.TrendingSnapshot, 0)
	for _, lang := range languages {
		for _, snapshot := range data[lang] {
			if query.Matches(snapshot) {
				result = append(result, snapshot)
			}
		}
	}
	return result, nil
}
