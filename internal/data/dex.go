package data

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownID is returned when an identifier has no entry in a table.
// The tables are fixed at build time, so callers treat it as a data fault.
var ErrUnknownID = errors.New("unknown identifier")

// Dex is the static data lookup for moves, species and items.
type Dex struct {
	moves   map[string]*Move
	species map[string]*Species
	items   map[string]*Item
}

// NewDex creates an empty Dex with all maps initialized.
func NewDex() *Dex {
	return &Dex{
		moves:   make(map[string]*Move),
		species: make(map[string]*Species),
		items:   make(map[string]*Item),
	}
}

// AddMove registers a move under id. Used by importers and tests.
func (d *Dex) AddMove(id string, m Move) {
	m.ID = id
	d.moves[id] = &m
}

// AddSpecies registers a species under id.
func (d *Dex) AddSpecies(id string, s Species) {
	s.ID = id
	d.species[id] = &s
}

// AddItem registers an item under id.
func (d *Dex) AddItem(id string, it Item) {
	it.ID = id
	d.items[id] = &it
}

// Move returns the move definition for id.
func (d *Dex) Move(id string) (*Move, error) {
	m, ok := d.moves[id]
	if !ok {
		return nil, fmt.Errorf("move %q: %w", id, ErrUnknownID)
	}
	return m, nil
}

// Species returns the species definition for id.
func (d *Dex) Species(id string) (*Species, error) {
	s, ok := d.species[id]
	if !ok {
		return nil, fmt.Errorf("species %q: %w", id, ErrUnknownID)
	}
	return s, nil
}

// Item returns the item definition for id.
func (d *Dex) Item(id string) (*Item, error) {
	it, ok := d.items[id]
	if !ok {
		return nil, fmt.Errorf("item %q: %w", id, ErrUnknownID)
	}
	return it, nil
}

// MoveIDs returns all move identifiers in sorted order.
func (d *Dex) MoveIDs() []string {
	return sortedKeys(d.moves)
}

// SpeciesIDs returns all species identifiers in sorted order.
func (d *Dex) SpeciesIDs() []string {
	return sortedKeys(d.species)
}

// ItemIDs returns all item identifiers in sorted order.
func (d *Dex) ItemIDs() []string {
	return sortedKeys(d.items)
}

// Validate checks cross references inside the tables.
func (d *Dex) Validate() error {
	for id, m := range d.moves {
		if !IsKnownType(m.Type) {
			return fmt.Errorf("move %q has unknown type %q", id, m.Type)
		}
	}
	for id, s := range d.species {
		if len(s.Types) == 0 {
			return fmt.Errorf("species %q has no types", id)
		}
		for _, t := range s.Types {
			if !IsKnownType(t) {
				return fmt.Errorf("species %q has unknown type %q", id, t)
			}
		}
	}
	return nil
}

// index copies map keys into the ID fields after decoding.
func (d *Dex) index() {
	for id, m := range d.moves {
		m.ID = id
	}
	for id, s := range d.species {
		s.ID = id
	}
	for id, it := range d.items {
		it.ID = id
	}
}

func sortedKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
