// Package importer owns the upload session: the selection state machine
// over a parse result and the sequential hand-off of selected trades to
// the persistence sink.
package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"tradevault/trade-import/internal/dedup"
	"tradevault/trade-import/internal/factory"
	"tradevault/trade-import/internal/logging"
	"tradevault/trade-import/internal/models"
)

// State is the session lifecycle position.
type State string

const (
	StateIdle         State = "idle"
	StateFileLoaded   State = "file_loaded"
	StateParsed       State = "parsed"
	StatePreviewReady State = "preview_ready"
	StateImporting    State = "importing"
	StateDone         State = "done"
	StateError        State = "error"
)

// Sink persists one trade record. Implementations are external
// collaborators; the engine performs no I/O of its own.
type Sink interface {
	SaveTrade(ctx context.Context, record models.TradeRecord) error
}

// ImportError reports a halted import: how many records persisted before
// the first failure, and the sink error verbatim. Nothing is rolled back
// and nothing is retried.
type ImportError struct {
	Completed int
	Err       error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import halted after %d record(s): %v", e.Completed, e.Err)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// ImportSummary describes a finished import run.
type ImportSummary struct {
	BatchID    string
	Imported   int
	Duplicates int
	Stats      models.ParseStats
}

// Session drives one upload from raw CSV text to persisted trades.
// It is not safe for concurrent use; parsing itself is pure and
// synchronous, the only suspension point is Import.
type Session struct {
	logger logging.Logger

	state      State
	text       string
	trades     []models.MatchedTrade
	stats      models.ParseStats
	duplicates int
}

// NewSession creates an idle session.
func NewSession(logger logging.Logger) *Session {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Session{logger: logger, state: StateIdle}
}

// State returns the session's current lifecycle position.
func (s *Session) State() State {
	return s.state
}

// Trades exposes the preview list. The caller must treat it as
// read-only; edits go through the session methods.
func (s *Session) Trades() []models.MatchedTrade {
	return s.trades
}

// Stats returns the stats of the last successful parse.
func (s *Session) Stats() models.ParseStats {
	return s.stats
}

// LoadFile stages raw CSV text. Permitted from Idle and from the two
// terminal states, so one session can run several files in sequence.
func (s *Session) LoadFile(text string) error {
	switch s.state {
	case StateIdle, StateDone, StateError:
	default:
		return fmt.Errorf("cannot load a file in state %q", s.state)
	}
	s.text = text
	s.trades = nil
	s.stats = models.ParseStats{}
	s.duplicates = 0
	s.state = StateFileLoaded
	return nil
}

// Parse runs the detection and extraction pipeline over the loaded
// text. A file-level failure moves the session to Error; row-level
// problems only show up in the stats.
func (s *Session) Parse(opts models.ParseOptions) error {
	if s.state != StateFileLoaded {
		return fmt.Errorf("cannot parse in state %q", s.state)
	}

	result, err := factory.ParseAuto(s.text, opts)
	if err != nil {
		s.state = StateError
		return err
	}

	s.trades = result.Trades
	s.stats = result.Stats
	s.state = StateParsed
	return nil
}

// PreparePreview annotates the parsed trades against the caller's
// existing-journal snapshot and opens the preview. The snapshot is
// read-only for the duration of the pass.
func (s *Session) PreparePreview(existing []models.TradeRecord) (int, error) {
	if s.state != StateParsed {
		return 0, fmt.Errorf("cannot prepare preview in state %q", s.state)
	}
	s.duplicates = dedup.MarkDuplicates(s.trades, existing)
	s.state = StatePreviewReady
	return s.duplicates, nil
}

// ToggleSelected flips the selection of one preview row. Duplicates
// cannot be re-selected, only removed.
func (s *Session) ToggleSelected(index int) error {
	if err := s.requirePreview("toggle selection"); err != nil {
		return err
	}
	if index < 0 || index >= len(s.trades) {
		return fmt.Errorf("trade index %d out of range", index)
	}
	if s.trades[index].IsDuplicate {
		return fmt.Errorf("trade %d is a duplicate and cannot be selected", index)
	}
	s.trades[index].Selected = !s.trades[index].Selected
	return nil
}

// Remove drops one row from the preview entirely.
func (s *Session) Remove(index int) error {
	if err := s.requirePreview("remove a trade"); err != nil {
		return err
	}
	if index < 0 || index >= len(s.trades) {
		return fmt.Errorf("trade index %d out of range", index)
	}
	s.trades = append(s.trades[:index], s.trades[index+1:]...)
	return nil
}

// SetNotes edits the notes of one preview row.
func (s *Session) SetNotes(index int, notes string) error {
	if err := s.requirePreview("edit a trade"); err != nil {
		return err
	}
	if index < 0 || index >= len(s.trades) {
		return fmt.Errorf("trade index %d out of range", index)
	}
	s.trades[index].Notes = notes
	return nil
}

// Import persists every selected, non-duplicate trade through the sink,
// strictly one call in flight at a time and in preview order. The first
// failure halts the sequence; records already persisted stay persisted.
// Cancelling the context stops issuing new calls but never interrupts
// the in-flight one.
func (s *Session) Import(ctx context.Context, sink Sink) (*ImportSummary, error) {
	if err := s.requirePreview("import"); err != nil {
		return nil, err
	}
	s.state = StateImporting

	batchID := uuid.NewString()
	log := s.logger.WithField(logging.FieldBatchID, batchID)

	completed := 0
	for i := range s.trades {
		trade := &s.trades[i]
		if !trade.Selected || trade.IsDuplicate {
			continue
		}

		if err := ctx.Err(); err != nil {
			s.state = StateError
			log.Warn("Import cancelled",
				logging.Field{Key: logging.FieldCount, Value: completed})
			return nil, &ImportError{Completed: completed, Err: err}
		}

		if err := sink.SaveTrade(ctx, trade.Record()); err != nil {
			s.state = StateError
			log.WithError(err).Error("Import halted on failed insert",
				logging.Field{Key: logging.FieldSymbol, Value: trade.Symbol},
				logging.Field{Key: logging.FieldCount, Value: completed})
			return nil, &ImportError{Completed: completed, Err: err}
		}
		completed++
	}

	s.state = StateDone
	log.Info("Import finished",
		logging.Field{Key: logging.FieldCount, Value: completed})
	return &ImportSummary{
		BatchID:    batchID,
		Imported:   completed,
		Duplicates: s.duplicates,
		Stats:      s.stats,
	}, nil
}

func (s *Session) requirePreview(action string) error {
	if s.state != StatePreviewReady {
		return fmt.Errorf("cannot %s in state %q: preview not ready", action, s.state)
	}
	return nil
}
