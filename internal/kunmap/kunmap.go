// Package kunmap builds the kunyomi relationship data rendered by the kun map
// page. It reads a TinyDB kanji database and writes kun_map.json, a list of
// readings each paired with the kanji that share it.
package kunmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// FileName is the name of the data file the page loads.
const FileName = "kun_map.json"

// KanjiTable is the TinyDB table holding kanji documents.
const KanjiTable = "_default"

// Entry is the part of a kanji document kunmap cares about.
type Entry struct {
	Kanji   string   `json:"kanji"`
	Kunyomi []string `json:"kunyomi"`
}

// KunEntry is one reading and every kanji that has it.
type KunEntry struct {
	Kun   string   `json:"kun"`
	Kanji []string `json:"kanji"`
}

// LoadDB reads the kanji documents of a TinyDB JSON file. Only KanjiTable is
// read; documents without a kanji are skipped. Documents are returned in
// numeric document id order.
func LoadDB(path string) ([]Entry, error) {
	//nolint:gosec // path is the operator-configured database
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading kanji database %q: %w", path, err)
	}

	var tables map[string]map[string]json.RawMessage
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("parsing kanji database %q: %w", path, err)
	}

	docs := tables[KanjiTable]
	entries := make([]Entry, 0, len(docs))
	for _, id := range sortedDocIDs(docs) {
		var e Entry
		if err := json.Unmarshal(docs[id], &e); err != nil {
			return nil, fmt.Errorf("parsing document %s/%s: %w", KanjiTable, id, err)
		}
		if e.Kanji == "" {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Build inverts kanji -> kunyomi into kunyomi -> kanji. Readings are sorted,
// and each kanji list is sorted and free of duplicates.
func Build(entries []Entry) []KunEntry {
	byKun := make(map[string][]string)
	for _, e := range entries {
		for _, kun := range e.Kunyomi {
			kun = strings.TrimSpace(kun)
			if kun == "" {
				continue
			}
			byKun[kun] = append(byKun[kun], e.Kanji)
		}
	}

	result := make([]KunEntry, 0, len(byKun))
	for _, kun := range sortedKeys(byKun) {
		kanji := byKun[kun]
		slices.Sort(kanji)
		result = append(result, KunEntry{Kun: kun, Kanji: slices.Compact(kanji)})
	}
	return result
}

// Write stores entries as JSON at path. Non-ASCII text is written as is.
func Write(path string, entries []KunEntry) error {
	if entries == nil {
		entries = []KunEntry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("encoding kun map: %w", err)
	}
	//nolint:gosec // served as a public web asset
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing kun map %q: %w", path, err)
	}
	return nil
}

// Generate reads dbPath and writes the kun map to outPath, returning the
// number of readings written.
func Generate(dbPath, outPath string) (int, error) {
	entries, err := LoadDB(dbPath)
	if err != nil {
		return 0, err
	}
	kun := Build(entries)
	if err := Write(outPath, kun); err != nil {
		return 0, err
	}
	return len(kun), nil
}

// sortedDocIDs orders TinyDB document ids numerically. Ids that are not
// integers sort after the numeric ones, lexically.
func sortedDocIDs(docs map[string]json.RawMessage) []string {
	ids := sortedKeys(docs)
	sort.SliceStable(ids, func(i, j int) bool {
		a, errA := strconv.Atoi(ids[i])
		b, errB := strconv.Atoi(ids[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		default:
			return false
		}
	})
	return ids
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
