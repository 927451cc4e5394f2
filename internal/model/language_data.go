package model

import (
	"encoding/json"
	"fmt"
)

// LanguageData is the per-language value inside a monthly storage document.
// Older files stored a flat list of SlimRepo per language; current files store
// a list of snapshots. The two shapes are told apart at decode time and the
// ambiguity never leaves this type: callers always go through Resolve.
type LanguageData struct {
	Legacy    []SlimRepo
	Snapshots []TrendingSnapshot
	isLegacy  bool
}

func NewLanguageData(snapshots []TrendingSnapshot) LanguageData {
	return LanguageData{Snapshots: snapshots}
}

func (d *LanguageData) IsLegacy() bool {
	return d.isLegacy
}

// UnmarshalJSON sniffs the element shape. There is no version field in the
// stored document; snapshot elements are recognized by their "items" key.
func (d *LanguageData) UnmarshalJSON(data []byte) error {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		return fmt.Errorf("language data is not a list: %w", err)
	}

	if len(elements) == 0 {
		d.Snapshots = []TrendingSnapshot{}
		return nil
	}

	var probe map[string]json.RawMessage
	if err := json.Unmarshal(elements[0], &probe); err != nil {
		return fmt.Errorf("language data element is not an object: %w", err)
	}

	if _, ok := probe["items"]; ok {
		var snapshots []TrendingSnapshot
		if err := json.Unmarshal(data, &snapshots); err != nil {
			return err
		}
		d.Snapshots = snapshots
		return nil
	}

	var legacy []SlimRepo
	if err := json.Unmarshal(data, &legacy); err != nil {
		return err
	}
	d.Legacy = legacy
	d.isLegacy = true
	return nil
}

// MarshalJSON always writes the current shape. Legacy input is upgraded on
// read and never persisted back in its old form.
func (d LanguageData) MarshalJSON() ([]byte, error) {
	if d.Snapshots == nil {
		return json.Marshal([]TrendingSnapshot{})
	}
	return json.Marshal(d.Snapshots)
}

// Resolve returns the snapshot list, upgrading a legacy flat list into a
// single synthetic daily snapshot stamped with the first day of the month the
// storage file covers.
func (d *LanguageData) Resolve(language, fileMonth string) []TrendingSnapshot {
	if !d.isLegacy {
		return d.Snapshots
	}
	return []TrendingSnapshot{
		{
			Language: language,
			Type:     TypeRepositories,
			Since:    SinceDaily,
			Month:    fileMonth,
			Day:      fileMonth + "-01",
			Items:    d.Legacy,
		},
	}
}
