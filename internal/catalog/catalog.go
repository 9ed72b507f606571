// Package catalog serves the read-only exercise and article library. The
// library is embedded in the binary and can be replaced by a JSON file at
// start-up.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
)

//go:embed catalog.json
var embedded []byte

// Mood bands used to recommend content from a recent average.
const (
	BandLow      = "low"
	BandModerate = "moderate"
	BandGood     = "good"
)

type Exercise struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Duration        string   `json:"duration"`
	DurationSeconds int      `json:"durationSeconds"`
	Difficulty      string   `json:"difficulty"`
	Category        string   `json:"category"`
	Instructions    []string `json:"instructions"`
	Benefits        []string `json:"benefits,omitempty"`
	YoutubeURL      string   `json:"youtubeUrl,omitempty"`
	MoodBands       []string `json:"moodBands"`
}

type Article struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Category  string   `json:"category"`
	ReadTime  string   `json:"readTime"`
	Summary   string   `json:"summary"`
	Content   []string `json:"content"`
	MoodBands []string `json:"moodBands"`
}

type file struct {
	Exercises []Exercise `json:"exercises"`
	Articles  []Article  `json:"articles"`
}

// Catalog is safe for concurrent use.
type Catalog struct {
	mu        sync.RWMutex
	exercises []Exercise
	byID      map[string]*Exercise
	articles  []Article
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(embedded)
}

// Load reads the catalog at path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	c := &Catalog{byID: make(map[string]*Exercise, len(f.Exercises))}
	c.exercises = f.Exercises
	c.articles = f.Articles
	for i := range c.exercises {
		ex := &c.exercises[i]
		if ex.ID == "" {
			return nil, fmt.Errorf("exercise %d has no id", i)
		}
		if _, dup := c.byID[ex.ID]; dup {
			return nil, fmt.Errorf("duplicate exercise id %q", ex.ID)
		}
		c.byID[ex.ID] = ex
	}
	return c, nil
}

// Exercise looks up an exercise by id.
func (c *Catalog) Exercise(id string) (Exercise, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ex, ok := c.byID[id]
	if !ok {
		return Exercise{}, false
	}
	return *ex, true
}

// Exercises lists every exercise, optionally filtered by difficulty.
func (c *Catalog) Exercises(difficulty string) []Exercise {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Exercise, 0, len(c.exercises))
	for _, ex := range c.exercises {
		if difficulty == "" || strings.EqualFold(ex.Difficulty, difficulty) {
			out = append(out, ex)
		}
	}
	return out
}

// Articles lists articles, optionally filtered by category.
func (c *Catalog) Articles(category string) []Article {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Article, 0, len(c.articles))
	for _, a := range c.articles {
		if category == "" || strings.EqualFold(a.Category, category) {
			out = append(out, a)
		}
	}
	return out
}

// Categories returns the distinct article categories in sorted order.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	seen := make(map[string]bool)
	out := make([]string, 0)
	for _, a := range c.articles {
		if !seen[a.Category] {
			seen[a.Category] = true
			out = append(out, a.Category)
		}
	}
	sort.Strings(out)
	return out
}

// Band maps a mood average to low, moderate or good.
func Band(avg float64) string {
	switch {
	case avg < 2.5:
		return BandLow
	case avg < 3.5:
		return BandModerate
	}
	return BandGood
}

// RecommendedExercises returns exercises tagged for the band of avg.
func (c *Catalog) RecommendedExercises(avg float64) []Exercise {
	band := Band(avg)
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Exercise, 0)
	for _, ex := range c.exercises {
		if contains(ex.MoodBands, band) {
			out = append(out, ex)
		}
	}
	return out
}

// RecommendedArticles returns articles tagged for the band of avg.
func (c *Catalog) RecommendedArticles(avg float64) []Article {
	band := Band(avg)
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Article, 0)
	for _, a := range c.articles {
		if contains(a.MoodBands, band) {
			out = append(out, a)
		}
	}
	return out
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
