package data

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/*.yaml
var defaults embed.FS

const (
	movesFile   = "moves.yaml"
	speciesFile = "species.yaml"
	itemsFile   = "items.yaml"
)

// Loader handles reading the read-only data tables. Each table is searched in
// the data directories in order, falling back to the embedded defaults.
type Loader struct {
	dataDirs []string
}

// NewLoader initializes a new Data Loader with the given data directory fallback hierarchy
func NewLoader(dataDirs []string) *Loader {
	return &Loader{
		dataDirs: dataDirs,
	}
}

// LoadDex reads the move, species and item tables into a Dex.
func (l *Loader) LoadDex() (*Dex, error) {
	dex := NewDex()
	if err := l.load(movesFile, &dex.moves); err != nil {
		return nil, err
	}
	if err := l.load(speciesFile, &dex.species); err != nil {
		return nil, err
	}
	if err := l.load(itemsFile, &dex.items); err != nil {
		return nil, err
	}
	dex.index()
	if err := dex.Validate(); err != nil {
		return nil, err
	}
	return dex, nil
}

// DefaultDex loads only the embedded data set.
func DefaultDex() (*Dex, error) {
	return NewLoader(nil).LoadDex()
}

func (l *Loader) load(ref string, target interface{}) error {
	for _, dir := range l.dataDirs {
		path := filepath.Join(dir, ref)
		f, err := os.Open(path)
		if err == nil {
			defer f.Close()
			return decode(ref, f, target)
		}
	}

	f, err := defaults.Open("defaults/" + ref)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("could not find or open reference %s in any available data directory", ref)
		}
		return err
	}
	defer f.Close()
	return decode(ref, f, target)
}

func decode(ref string, r io.Reader, target interface{}) error {
	if err := yaml.NewDecoder(r).Decode(target); err != nil {
		return fmt.Errorf("failed to decode yaml reference %s: %w", ref, err)
	}
	return nil
}
