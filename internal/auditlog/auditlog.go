// Package auditlog persists a per-session record of board modification
// requests and their outcomes in a local bolt database.
package auditlog

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/smartcat-ai/kicat/internal/risk"
)

var bucketModifications = []byte("modifications")

// Entry is one recorded modification request outcome.
type Entry struct {
	ID           string            `json:"id"`
	SessionID    string            `json:"session_id"`
	Mutation     risk.MutationType `json:"mutation"`
	Risk         string            `json:"risk"`
	Approved     bool              `json:"approved"`
	AutoResolved bool              `json:"auto_resolved"`
	Message      string            `json:"message"`
	Timestamp    time.Time         `json:"timestamp"`
}

// Log is the bolt-backed audit trail. A nil *Log is a valid disabled
// log: all methods are no-ops.
type Log struct {
	db *bolt.DB
}

// Open opens (or creates) the audit database at path. An empty path
// returns a disabled log.
func Open(path string) (*Log, error) {
	if path == "" {
		return nil, nil
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open audit database: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketModifications)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create audit bucket: %w", err)
	}
	return &Log{db: db}, nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	if l == nil {
		return nil
	}
	return l.db.Close()
}

// Record appends one entry. Keys are the bucket sequence number, so
// iteration order is insertion order.
func (l *Log) Record(e Entry) error {
	if l == nil {
		return nil
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	return l.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketModifications)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, seq)

		raw, err := json.Marshal(e)
		if err != nil {
			return err
		}
		return b.Put(key, raw)
	})
}

// List returns the entries for one session in insertion order. An
// empty sessionID returns everything.
func (l *Log) List(sessionID string) ([]Entry, error) {
	if l == nil {
		return nil, nil
	}
	var out []Entry
	err := l.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketModifications).ForEach(func(_, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			if sessionID == "" || e.SessionID == sessionID {
				out = append(out, e)
			}
			return nil
		})
	})
	return out, err
}

// SessionSummary renders a short human-readable digest of one
// session's modification activity.
func (l *Log) SessionSummary(sessionID string) (string, error) {
	entries, err := l.List(sessionID)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "No modifications recorded this session.", nil
	}

	approved, denied := 0, 0
	var sb strings.Builder
	sb.WriteString("Session modifications:\n")
	for _, e := range entries {
		verdict := "denied"
		if e.Approved {
			verdict = "approved"
			approved++
		} else {
			denied++
		}
		sb.WriteString(fmt.Sprintf("- [%s] %s (%s risk, %s)\n",
			e.Timestamp.Format("15:04:05"), e.Mutation, e.Risk, verdict))
	}
	sb.WriteString(fmt.Sprintf("Total: %d approved, %d denied", approved, denied))
	return sb.String(), nil
}
