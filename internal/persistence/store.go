package persistence

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/suderio/battleround/internal/engine"
)

// Record types of a battle log line.
const (
	RecordHeader = "Header"
	RecordTurn   = "Turn"
)

// ErrNoHeader is returned when a log does not start with a header line.
var ErrNoHeader = errors.New("battle log has no header")

// Team is one trainer's party as written in scenarios and log headers.
type Team struct {
	Trainer string                `yaml:"trainer" json:"trainer,omitempty"`
	Party   []engine.CreatureSpec `yaml:"party" json:"party"`
}

// Header is the first line of a battle log. It holds everything needed to
// rebuild the battle from scratch.
type Header struct {
	Name     string        `json:"name"`
	Format   engine.Format `json:"format"`
	Seed     uint64        `json:"seed"`
	User     []Team        `json:"user"`
	Opponent []Team        `json:"opponent"`
	Created  time.Time     `json:"created"`
}

// TurnRecord is one resolved turn: the commands submitted and the effects
// they produced.
type TurnRecord struct {
	Turn     int             `json:"turn"`
	Commands []string        `json:"commands"`
	Effects  []EffectWrapper `json:"effects"`
	Outcome  engine.Outcome  `json:"outcome"`
}

// EffectWrapper facilitates serialization of polymorphic side effects
type EffectWrapper struct {
	Type engine.EffectKind `json:"type"`
	Data json.RawMessage   `json:"data"`
}

// RecordWrapper is one line of the log.
type RecordWrapper struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// Log is a fully decoded battle log.
type Log struct {
	Header *Header
	Turns  []TurnRecord
}

// NewTurnRecord captures a turn result with the commands that produced it.
func NewTurnRecord(res *engine.TurnResult, commands []string) (*TurnRecord, error) {
	effects, err := EncodeEffects(res.Effects())
	if err != nil {
		return nil, err
	}
	return &TurnRecord{
		Turn:     res.Turn,
		Commands: commands,
		Effects:  effects,
		Outcome:  res.Outcome,
	}, nil
}

// EncodeEffects wraps each effect with its kind.
func EncodeEffects(effects engine.ActionSideEffects) ([]EffectWrapper, error) {
	out := make([]EffectWrapper, 0, len(effects))
	for _, e := range effects {
		data, err := json.Marshal(e)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal %s: %w", e.Kind(), err)
		}
		out = append(out, EffectWrapper{Type: e.Kind(), Data: data})
	}
	return out, nil
}

// DecodeEffects rebuilds the concrete effects of a turn record.
func DecodeEffects(wrapped []EffectWrapper) (engine.ActionSideEffects, error) {
	out := make(engine.ActionSideEffects, 0, len(wrapped))
	for _, w := range wrapped {
		e, err := engine.NewEffect(w.Type)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(w.Data, e); err != nil {
			return nil, fmt.Errorf("failed to parse %s effect: %w", w.Type, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// Store handles append-only storing of a battle log.
type Store struct {
	file *os.File
}

// NewStore opens or creates the file at path for appending lines
func NewStore(path string) (*Store, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open store file: %w", err)
	}
	return &Store{file: file}, nil
}

// Empty reports whether nothing has been written yet.
func (s *Store) Empty() (bool, error) {
	info, err := s.file.Stat()
	if err != nil {
		return false, err
	}
	return info.Size() == 0, nil
}

// WriteHeader writes the header line. It must be the first line of the log.
func (s *Store) WriteHeader(h *Header) error {
	empty, err := s.Empty()
	if err != nil {
		return err
	}
	if !empty {
		return fmt.Errorf("battle log already has a header")
	}
	return s.append(RecordHeader, h)
}

// AppendTurn appends one turn record.
func (s *Store) AppendTurn(rec *TurnRecord) error {
	return s.append(RecordTurn, rec)
}

func (s *Store) append(kind string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	wrapperData, err := json.Marshal(RecordWrapper{Type: kind, Data: data})
	if err != nil {
		return err
	}

	if _, err := s.file.Write(append(wrapperData, '\n')); err != nil {
		return err
	}
	return s.file.Sync()
}

// Load reads the whole log back.
func (s *Store) Load() (*Log, error) {
	// Reset file pointer to beginning
	if _, err := s.file.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	log := &Log{}
	scanner := bufio.NewScanner(s.file)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for line := 1; scanner.Scan(); line++ {
		var wrapper RecordWrapper
		if err := json.Unmarshal(scanner.Bytes(), &wrapper); err != nil {
			return nil, fmt.Errorf("line %d: failed to decode wrapper: %w", line, err)
		}

		switch wrapper.Type {
		case RecordHeader:
			if line != 1 {
				return nil, fmt.Errorf("line %d: header must be the first line", line)
			}
			log.Header = &Header{}
			if err := json.Unmarshal(wrapper.Data, log.Header); err != nil {
				return nil, fmt.Errorf("line %d: failed to parse header: %w", line, err)
			}
		case RecordTurn:
			if log.Header == nil {
				return nil, ErrNoHeader
			}
			var rec TurnRecord
			if err := json.Unmarshal(wrapper.Data, &rec); err != nil {
				return nil, fmt.Errorf("line %d: failed to parse turn: %w", line, err)
			}
			log.Turns = append(log.Turns, rec)
		default:
			return nil, fmt.Errorf("line %d: unknown record type in log: %s", line, wrapper.Type)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if log.Header == nil {
		return nil, ErrNoHeader
	}
	return log, nil
}

// Close handles safe shutdown.
func (s *Store) Close() error {
	return s.file.Close()
}
