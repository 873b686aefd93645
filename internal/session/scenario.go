package session

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/suderio/battleround/internal/data"
	"github.com/suderio/battleround/internal/engine"
	"github.com/suderio/battleround/internal/persistence"
	"github.com/suderio/battleround/internal/rules"
)

// Scenario is the YAML description of a battle to start.
//
//	name: gym
//	format: single
//	seed: 42
//	user:
//	  - trainer: red
//	    party:
//	      - {species: pikachu, level: 50, moves: [thunderbolt, quick-attack]}
//	opponent:
//	  - party:
//	      - {species: geodude, level: 48, moves: [tackle]}
type Scenario struct {
	Name     string             `yaml:"name"`
	Format   engine.Format      `yaml:"format"`
	Seed     *uint64            `yaml:"seed"`
	User     []persistence.Team `yaml:"user"`
	Opponent []persistence.Team `yaml:"opponent"`
}

// LoadScenario reads a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("failed to decode scenario %s: %w", path, err)
	}
	if sc.Format == "" {
		sc.Format = engine.FormatSingle
	}
	if _, err := engine.ParseFormat(string(sc.Format)); err != nil {
		return nil, err
	}
	return &sc, nil
}

// Header turns the scenario into a log header. fallbackSeed is used when the
// scenario does not fix one.
func (sc *Scenario) Header(fallbackSeed uint64) *persistence.Header {
	seed := fallbackSeed
	if sc.Seed != nil {
		seed = *sc.Seed
	}
	return &persistence.Header{
		Name:     sc.Name,
		Format:   sc.Format,
		Seed:     seed,
		User:     sc.User,
		Opponent: sc.Opponent,
		Created:  time.Now().UTC(),
	}
}

// NewRegistry builds the CEL registry and compiles every move precondition
// so that broken data fails before the first turn.
func NewRegistry(dex *data.Dex) (*rules.Registry, error) {
	reg, err := rules.NewRegistry()
	if err != nil {
		return nil, err
	}
	for _, id := range dex.MoveIDs() {
		m, err := dex.Move(id)
		if err != nil {
			return nil, err
		}
		for _, p := range m.Prereq {
			if err := reg.Compile(p.Formula); err != nil {
				return nil, fmt.Errorf("move %s prereq %q: %w", id, p.Name, err)
			}
		}
	}
	return reg, nil
}

// BuildBattlefield creates the battle a header describes, seeded from it.
func BuildBattlefield(dex *data.Dex, reg *rules.Registry, h *persistence.Header) (*engine.Battlefield, error) {
	user, err := buildSide(dex, h.Format, engine.User, h.User)
	if err != nil {
		return nil, err
	}
	opponent, err := buildSide(dex, h.Format, engine.Opponent, h.Opponent)
	if err != nil {
		return nil, err
	}
	return engine.NewBattlefield(dex, reg, engine.NewRandom(h.Seed), user, opponent)
}

func buildSide(dex *data.Dex, format engine.Format, id engine.SideID, teams []persistence.Team) (engine.Side, error) {
	if len(teams) != format.PartiesPerSide() {
		return nil, fmt.Errorf("%s side needs %d team(s) for a %s battle, got %d", id, format.PartiesPerSide(), format, len(teams))
	}
	parties := make([]*engine.Party, 0, len(teams))
	for i, team := range teams {
		members := make([]*engine.Creature, 0, len(team.Party))
		for _, spec := range team.Party {
			c, err := engine.NewCreature(dex, spec)
			if err != nil {
				return nil, fmt.Errorf("%s team %d: %w", id, i, err)
			}
			members = append(members, c)
		}
		party, err := engine.NewParty(members...)
		if err != nil {
			return nil, fmt.Errorf("%s team %d: %w", id, i, err)
		}
		parties = append(parties, party)
	}
	return engine.NewSide(format, id, parties...)
}
