// Package history keeps the index of completed tasks and names the archived
// daily snapshots.
package history

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sahilm/fuzzy"
)

// FileLayout names an archived snapshot, e.g. 2026-10-19_21-04-05.md.
const FileLayout = "2006-01-02_15-04-05"

// DayLayout is the date part of FileLayout.
const DayLayout = "2006-01-02"

// Entry is one completed task in the history index.
type Entry struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	CompletedAt time.Time `json:"completedAt"`
	SourceFile  string    `json:"sourceFile"`
	SourcePath  []string  `json:"sourcePath"`
}

// Archive locates the snapshot written for a finish at now: the nested path
// [YYYY, MM] and the file name.
func Archive(now time.Time) ([]string, string) {
	return []string{now.Format("2006"), now.Format("01")}, now.Format(FileLayout) + ".md"
}

// Decode reads the index. Empty input is an empty index.
func Decode(data string) ([]Entry, error) {
	if strings.TrimSpace(data) == "" {
		return nil, nil
	}
	var list []Entry
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		return nil, fmt.Errorf("history: decode: %w", err)
	}
	return list, nil
}

// Encode renders the index as indented JSON.
func Encode(list []Entry) (string, error) {
	if list == nil {
		list = []Entry{}
	}
	b, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return "", fmt.Errorf("history: encode: %w", err)
	}
	return string(b), nil
}

// Prepend puts fresh entries ahead of the existing index so it stays newest
// first.
func Prepend(index []Entry, fresh ...Entry) []Entry {
	out := make([]Entry, 0, len(index)+len(fresh))
	out = append(out, fresh...)
	return append(out, index...)
}

// Group collects every completion of the same task text.
type Group struct {
	Text    string    `json:"text"`
	Count   int       `json:"count"`
	Latest  time.Time `json:"latest"`
	Entries []Entry   `json:"entries"`
}

// Grouped buckets entries by text, most recently completed group first.
func Grouped(entries []Entry) []Group {
	byText := make(map[string]*Group)
	var order []string
	for _, e := range entries {
		g, ok := byText[e.Text]
		if !ok {
			g = &Group{Text: e.Text}
			byText[e.Text] = g
			order = append(order, e.Text)
		}
		g.Count++
		g.Entries = append(g.Entries, e)
		if e.CompletedAt.After(g.Latest) {
			g.Latest = e.CompletedAt
		}
	}
	out := make([]Group, 0, len(order))
	for _, text := range order {
		out = append(out, *byText[text])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Latest.After(out[j].Latest)
	})
	return out
}

type texts []Entry

func (t texts) String(i int) string { return t[i].Text }
func (t texts) Len() int            { return len(t) }

// Search fuzzy-matches query against entry texts, best match first. An empty
// query returns entries unchanged.
func Search(entries []Entry, query string) []Entry {
	if strings.TrimSpace(query) == "" {
		return entries
	}
	matches := fuzzy.FindFrom(query, texts(entries))
	out := make([]Entry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.Index])
	}
	return out
}

// Between returns entries completed in [since, until].
func Between(entries []Entry, since, until time.Time) []Entry {
	if since.After(until) {
		since, until = until, since
	}
	var out []Entry
	for _, e := range entries {
		if e.CompletedAt.Before(since) || e.CompletedAt.After(until) {
			continue
		}
		out = append(out, e)
	}
	return out
}
