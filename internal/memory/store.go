// Package memory keeps a bounded per-session record of conversation
// turns and design decisions, and renders the recent slice of each into
// model context.
package memory

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Store manages the bounded conversation and decision history for one
// session. It is not safe for concurrent use; the orchestrator is the
// single writer.
type Store struct {
	filePath     string
	data         *Data
	maxTurns     int
	maxDecisions int
}

// NewStore creates a memory store persisted under the given work
// directory. An empty workDir keeps the store in-memory only.
func NewStore(workDir string, config Config) *Store {
	maxTurns := config.MaxTurns
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	maxDecisions := config.MaxDecisions
	if maxDecisions <= 0 {
		maxDecisions = DefaultMaxDecisions
	}
	filePath := ""
	if workDir != "" {
		filePath = filepath.Join(workDir, ".kicat", "memory.json")
	}
	return &Store{
		filePath:     filePath,
		data:         &Data{Version: "1"},
		maxTurns:     maxTurns,
		maxDecisions: maxDecisions,
	}
}

// Load reads the memory file from disk. A missing or corrupt file
// starts the store empty without error.
func (s *Store) Load() error {
	if s.filePath == "" {
		return nil
	}
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		// Invalid JSON — start fresh
		return nil
	}
	s.data = &data
	s.pruneTurns()
	s.pruneDecisions()
	return nil
}

// Save writes the current memory data to disk, creating the directory
// if needed. A no-op for in-memory stores.
func (s *Store) Save() error {
	if s.filePath == "" {
		return nil
	}
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, raw, 0644)
}

// AddTurn appends one conversation turn and prunes the oldest turns
// past the bound. Returns the number of turns pruned.
func (s *Store) AddTurn(role Role, content string) int {
	s.data.Turns = append(s.data.Turns, Turn{
		Role:      role,
		Content:   content,
		Timestamp: time.Now(),
	})
	return s.pruneTurns()
}

// AddExchange records a user message and the assistant's reply as two
// consecutive turns. circuitRequest marks the assistant turn when the
// exchange generated a circuit.
func (s *Store) AddExchange(userMsg, assistantMsg string, circuitRequest bool) {
	s.AddTurn(RoleUser, userMsg)
	s.data.Turns = append(s.data.Turns, Turn{
		Role:             RoleAssistant,
		Content:          assistantMsg,
		IsCircuitRequest: circuitRequest,
		Timestamp:        time.Now(),
	})
	s.pruneTurns()
}

// RecordDecision extracts keywords and a category from the given
// exchange and appends a decision entry. Exchanges with no extractable
// signal are skipped and return false.
func (s *Store) RecordDecision(userMsg, assistantMsg string) bool {
	d, ok := ExtractDecision(userMsg, assistantMsg)
	if !ok {
		return false
	}
	s.data.Decisions = append(s.data.Decisions, d)
	s.pruneDecisions()
	return true
}

// Turns returns the retained conversation turns, oldest first.
func (s *Store) Turns() []Turn {
	return s.data.Turns
}

// Decisions returns the retained design decisions, oldest first.
func (s *Store) Decisions() []Decision {
	return s.data.Decisions
}

// Clear drops all turns and decisions.
func (s *Store) Clear() {
	s.data.Turns = nil
	s.data.Decisions = nil
}

func (s *Store) pruneTurns() int {
	if len(s.data.Turns) <= s.maxTurns {
		return 0
	}
	excess := len(s.data.Turns) - s.maxTurns
	s.data.Turns = s.data.Turns[excess:]
	return excess
}

func (s *Store) pruneDecisions() int {
	if len(s.data.Decisions) <= s.maxDecisions {
		return 0
	}
	excess := len(s.data.Decisions) - s.maxDecisions
	s.data.Decisions = s.data.Decisions[excess:]
	return excess
}
