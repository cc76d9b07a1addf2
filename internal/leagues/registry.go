package leagues

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// League is one selectable competition on the board.
type League struct {
	Key           int    `yaml:"key" json:"key"`
	Name          string `yaml:"name" json:"name"`
	SeasonID      string `yaml:"season_id" json:"seasonId"`
	CompetitionID string `yaml:"competition_id" json:"competitionId"`
}

// Registry is an ordered, immutable set of leagues.
type Registry struct {
	leagues []League
	byKey   map[int]int
}

type fileFormat struct {
	Leagues []League `yaml:"leagues"`
}

var defaultLeagues = []League{
	{Key: 1, Name: "Premier League", SeasonID: "sr:season:118689", CompetitionID: "sr:competition:17"},
	{Key: 2, Name: "LaLiga", SeasonID: "sr:season:118691", CompetitionID: "sr:competition:8"},
	{Key: 3, Name: "Serie A", SeasonID: "sr:season:118975", CompetitionID: "sr:competition:23"},
	{Key: 4, Name: "Bundesliga", SeasonID: "sr:season:118693", CompetitionID: "sr:competition:35"},
	{Key: 5, Name: "Ligue 1", SeasonID: "sr:season:119835", CompetitionID: "sr:competition:34"},
}

// Default returns the built-in league set.
func Default() *Registry {
	reg, _ := New(defaultLeagues)
	return reg
}

// New validates and orders leagues by key.
func New(list []League) (*Registry, error) {
	if len(list) == 0 {
		return nil, errors.New("leagues: at least one league required")
	}
	sorted := append([]League(nil), list...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	byKey := make(map[int]int, len(sorted))
	for i, l := range sorted {
		if l.SeasonID == "" {
			return nil, fmt.Errorf("leagues: league %d missing season_id", l.Key)
		}
		if _, dup := byKey[l.Key]; dup {
			return nil, fmt.Errorf("leagues: duplicate key %d", l.Key)
		}
		byKey[l.Key] = i
	}
	return &Registry{leagues: sorted, byKey: byKey}, nil
}

// Load reads a YAML league file. An empty path yields the defaults.
func Load(path string) (*Registry, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leagues: read %s: %w", path, err)
	}
	var file fileFormat
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("leagues: parse %s: %w", path, err)
	}
	return New(file.Leagues)
}

// All returns the leagues in key order.
func (r *Registry) All() []League {
	return append([]League(nil), r.leagues...)
}

// Get returns the league for key.
func (r *Registry) Get(key int) (League, bool) {
	idx, ok := r.byKey[key]
	if !ok {
		return League{}, false
	}
	return r.leagues[idx], true
}

// First returns the lowest-keyed league.
func (r *Registry) First() League {
	return r.leagues[0]
}

// Prev returns the league ordered before key, if any.
func (r *Registry) Prev(key int) (League, bool) {
	idx, ok := r.byKey[key]
	if !ok || idx == 0 {
		return League{}, false
	}
	return r.leagues[idx-1], true
}

// Next returns the league ordered after key, if any.
func (r *Registry) Next(key int) (League, bool) {
	idx, ok := r.byKey[key]
	if !ok || idx == len(r.leagues)-1 {
		return League{}, false
	}
	return r.leagues[idx+1], true
}
