package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/suderio/battleround/internal/data"
)

const BaseURL = "https://pokeapi.co/api/v2"

// Client downloads species and moves from PokeAPI and converts them into
// dex tables.
type Client struct {
	client  *http.Client
	baseURL string
	// Throttle is the pause between requests.
	Throttle time.Duration
}

// NewClient creates a client against baseURL; an empty baseURL means BaseURL.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = BaseURL
	}
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		Throttle: 100 * time.Millisecond,
	}
}

type namedRef struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// APIListResponse is a page of a PokeAPI resource list.
type APIListResponse struct {
	Count   int        `json:"count"`
	Results []namedRef `json:"results"`
}

type apiName struct {
	Name     string   `json:"name"`
	Language namedRef `json:"language"`
}

type apiPokemon struct {
	Name  string `json:"name"`
	Types []struct {
		Slot int      `json:"slot"`
		Type namedRef `json:"type"`
	} `json:"types"`
	Stats []struct {
		BaseStat int      `json:"base_stat"`
		Stat     namedRef `json:"stat"`
	} `json:"stats"`
}

type apiMove struct {
	Name        string    `json:"name"`
	Names       []apiName `json:"names"`
	Accuracy    *int      `json:"accuracy"`
	Power       *int      `json:"power"`
	PP          int       `json:"pp"`
	Priority    int       `json:"priority"`
	Type        namedRef  `json:"type"`
	DamageClass namedRef  `json:"damage_class"`
	Target      namedRef  `json:"target"`
	Meta        *apiMeta  `json:"meta"`
	StatChanges []apiStat `json:"stat_changes"`
}

type apiMeta struct {
	Ailment       namedRef `json:"ailment"`
	AilmentChance int      `json:"ailment_chance"`
	Category      namedRef `json:"category"`
	Drain         int      `json:"drain"`
	StatChance    int      `json:"stat_chance"`
}

type apiStat struct {
	Change int      `json:"change"`
	Stat   namedRef `json:"stat"`
}

// FetchList returns the first limit entries of a resource such as "pokemon".
func (c *Client) FetchList(ctx context.Context, endpoint string, limit int) (*APIListResponse, error) {
	var list APIListResponse
	if err := c.get(ctx, fmt.Sprintf("%s/%s?limit=%d", c.baseURL, endpoint, limit), &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// FetchSpecies downloads one pokemon and converts it.
func (c *Client) FetchSpecies(ctx context.Context, name string) (data.Species, error) {
	var p apiPokemon
	if err := c.get(ctx, fmt.Sprintf("%s/pokemon/%s", c.baseURL, name), &p); err != nil {
		return data.Species{}, err
	}
	return ConvertSpecies(&p)
}

// FetchMove downloads one move and converts it. ok is false when the move
// uses mechanics the engine does not model.
func (c *Client) FetchMove(ctx context.Context, name string) (m data.Move, ok bool, err error) {
	var raw apiMove
	if err := c.get(ctx, fmt.Sprintf("%s/move/%s", c.baseURL, name), &raw); err != nil {
		return data.Move{}, false, err
	}
	m, ok = ConvertMove(&raw)
	return m, ok, nil
}

func (c *Client) get(ctx context.Context, url string, target any) error {
	if c.Throttle > 0 {
		select {
		case <-time.After(c.Throttle):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to fetch %s: %s", url, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}

// ConvertSpecies maps a PokeAPI pokemon onto a species entry.
func ConvertSpecies(p *apiPokemon) (data.Species, error) {
	sp := data.Species{Name: displayName(p.Name, nil)}
	for _, t := range p.Types {
		if !data.IsKnownType(t.Type.Name) {
			return data.Species{}, fmt.Errorf("pokemon %s has unknown type %q", p.Name, t.Type.Name)
		}
		sp.Types = append(sp.Types, t.Type.Name)
	}
	for _, s := range p.Stats {
		switch s.Stat.Name {
		case "hp":
			sp.Base.HP = s.BaseStat
		case "attack":
			sp.Base.Attack = s.BaseStat
		case "defense":
			sp.Base.Defense = s.BaseStat
		case "special-attack":
			sp.Base.SpAttack = s.BaseStat
		case "special-defense":
			sp.Base.SpDefense = s.BaseStat
		case "speed":
			sp.Base.Speed = s.BaseStat
		}
	}
	return sp, nil
}

var targets = map[string]data.TargetKind{
	"selected-pokemon": data.TargetOpponent,
	"random-opponent":  data.TargetOpponent,
	"user":             data.TargetSelf,
	"all-opponents":    data.TargetAllOpponents,
	"entire-field":     data.TargetField,
	"opponents-field":  data.TargetOpposingSide,
}

var weatherMoves = map[string]string{
	"rain-dance": "rain",
	"sunny-day":  "sun",
	"sandstorm":  "sandstorm",
	"hail":       "hail",
}

var ailments = map[string]bool{
	"paralysis": true,
	"sleep":     true,
	"freeze":    true,
	"burn":      true,
	"poison":    true,
}

// ConvertMove maps a PokeAPI move onto a move entry. Only the categories the
// engine resolves generically are converted.
func ConvertMove(raw *apiMove) (data.Move, bool) {
	target, ok := targets[raw.Target.Name]
	if !ok || raw.Meta == nil || !data.IsKnownType(raw.Type.Name) {
		return data.Move{}, false
	}

	m := data.Move{
		Name:     displayName(raw.Name, raw.Names),
		Type:     raw.Type.Name,
		Category: data.Category(raw.DamageClass.Name),
		PP:       raw.PP,
		Priority: raw.Priority,
		Target:   target,
		Accuracy: data.Accuracy{Kind: data.AccuracyAlways},
	}
	if raw.Power != nil {
		m.Power = *raw.Power
	}
	if raw.Accuracy != nil {
		m.Accuracy = data.Accuracy{Kind: data.AccuracyPercentage, Value: *raw.Accuracy}
	}

	ailment := func(chance int) bool {
		name := raw.Meta.Ailment.Name
		if !ailments[name] {
			return false
		}
		if raw.Name == "toxic" {
			name = "toxic"
		}
		m.Ailment = &data.Ailment{Status: name, Chance: chance}
		return true
	}
	stats := func(self bool, chance int) {
		for _, sc := range raw.StatChanges {
			m.StatChanges = append(m.StatChanges, data.StatChange{Stat: sc.Stat.Name, Stages: sc.Change, Self: self, Chance: chance})
		}
	}

	switch raw.Meta.Category.Name {
	case "damage":
		m.Effect = "damage"
	case "damage+ailment":
		m.Effect = "damage"
		if !ailment(raw.Meta.AilmentChance) {
			return data.Move{}, false
		}
	case "damage+lower":
		m.Effect = "damage"
		stats(false, raw.Meta.StatChance)
	case "damage+raise":
		m.Effect = "damage"
		stats(true, raw.Meta.StatChance)
	case "damage+heal":
		if raw.Meta.Drain <= 0 {
			return data.Move{}, false
		}
		m.Effect = "drain"
		m.Drain = raw.Meta.Drain
	case "ailment":
		m.Effect = "status"
		if !ailment(0) {
			return data.Move{}, false
		}
	case "net-good-stats":
		m.Effect = "stage"
		stats(target == data.TargetSelf, 0)
	case "ohko":
		m.Effect = "ohko"
		m.Accuracy = data.Accuracy{Kind: data.AccuracyVariable, Value: 30}
	case "whole-field-effect":
		w, ok := weatherMoves[raw.Name]
		if !ok {
			return data.Move{}, false
		}
		m.Effect = "weather"
		m.Weather = w
	default:
		return data.Move{}, false
	}
	return m, true
}

func displayName(id string, names []apiName) string {
	for _, n := range names {
		if n.Language.Name == "en" {
			return n.Name
		}
	}
	return titler.String(strings.ReplaceAll(id, "-", " "))
}

var titler = cases.Title(language.English)

// Tables is the converted output of an import run.
type Tables struct {
	Species map[string]data.Species
	Moves   map[string]data.Move
}

// NewTables returns empty tables.
func NewTables() *Tables {
	return &Tables{Species: make(map[string]data.Species), Moves: make(map[string]data.Move)}
}

// Save writes the tables as species.yaml and moves.yaml under dataDir. An
// existing file is kept unless force is set.
func (t *Tables) Save(dataDir string, force bool) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	if err := save(filepath.Join(dataDir, "species.yaml"), t.Species, force); err != nil {
		return err
	}
	return save(filepath.Join(dataDir, "moves.yaml"), t.Moves, force)
}

func save(path string, v any, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists, use --force to overwrite", path)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}
