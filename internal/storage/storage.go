package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	_ "modernc.org/sqlite"

	"myday/internal/planner"
)

// Slot names in the key-value table.
const (
	SlotUserName = "user_name"
	SlotTheme    = "theme"
	SlotTasks    = "tasks"
	SlotGoals    = "goals"
)

func Slots() []string {
	return []string{SlotUserName, SlotTheme, SlotTasks, SlotGoals}
}

type Store struct {
	db     *sql.DB
	logger *log.Logger
}

func Open(dbPath string, logger *log.Logger) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("db path is empty")
	}
	if !strings.HasPrefix(dbPath, "file:") {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Store{db: db, logger: logger.With("component", "storage")}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	const ddl = `
CREATE TABLE IF NOT EXISTS slots (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`
	_, err := s.db.Exec(ddl)
	return err
}

// Load reads every slot. Missing slots take their defaults. Records that do
// not decode are skipped and the raw slot is kept under an unreadable key,
// so a later Save cannot destroy it.
func (s *Store) Load() (planner.State, error) {
	state := planner.DefaultState()
	raw, err := s.readSlots()
	if err != nil {
		return state, err
	}

	state.UserName = strings.TrimSpace(raw[SlotUserName])

	if v, ok := raw[SlotTheme]; ok {
		if theme := planner.Theme(v); theme.Valid() {
			state.Theme = theme
		} else {
			s.logger.Warn("unknown theme in store, using default", "theme", v)
		}
	}

	if v, ok := raw[SlotTasks]; ok && v != "" {
		tasks, dropped := decodeRecords[planner.Task](s.logger, SlotTasks, v)
		if dropped {
			s.keepUnreadable(SlotTasks, v)
		}
		state.Tasks = tasks
	}

	if v, ok := raw[SlotGoals]; ok && v != "" {
		goals, dropped := decodeRecords[planner.Goal](s.logger, SlotGoals, v)
		if dropped {
			s.keepUnreadable(SlotGoals, v)
		}
		for i := range goals {
			goals[i].Progress = planner.ClampProgress(goals[i].Progress)
		}
		state.Goals = goals
	}

	s.logger.Debug("state loaded", "tasks", len(state.Tasks), "goals", len(state.Goals))
	return state, nil
}

// UnreadableKey is where the raw content of slot is kept when some of its
// records could not be decoded.
func UnreadableKey(slot string) string {
	return slot + ".unreadable"
}

// decodeRecords decodes a JSON array record by record. dropped reports
// whether anything, including the array itself, failed to decode.
func decodeRecords[T any](logger *log.Logger, slot, v string) (records []T, dropped bool) {
	var items []json.RawMessage
	if err := json.Unmarshal([]byte(v), &items); err != nil {
		logger.Warn("stored slot unreadable, starting empty", "slot", slot, "err", err, "value", v)
		return nil, true
	}
	for i, item := range items {
		var rec T
		if err := json.Unmarshal(item, &rec); err != nil {
			logger.Warn("skipping unreadable record", "slot", slot, "index", i, "err", err, "record", string(item))
			dropped = true
			continue
		}
		records = append(records, rec)
	}
	return records, dropped
}

func (s *Store) keepUnreadable(slot, value string) {
	key := UnreadableKey(slot)
	if err := s.writeSlot(key, value); err != nil {
		s.logger.Warn("could not keep unreadable slot", "slot", slot, "err", err)
		return
	}
	s.logger.Warn("unreadable slot content kept", "key", key)
}

func (s *Store) writeSlot(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO slots (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value;`, key, value)
	return err
}

// Save writes all four slots in one transaction.
func (s *Store) Save(state planner.State) error {
	tasks := state.Tasks
	if tasks == nil {
		tasks = []planner.Task{}
	}
	goals := state.Goals
	if goals == nil {
		goals = []planner.Goal{}
	}
	tasksJSON, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	goalsJSON, err := json.Marshal(goals)
	if err != nil {
		return fmt.Errorf("encode goals: %w", err)
	}
	theme := state.Theme
	if !theme.Valid() {
		theme = planner.ThemeDark
	}

	values := map[string]string{
		SlotUserName: state.UserName,
		SlotTheme:    string(theme),
		SlotTasks:    string(tasksJSON),
		SlotGoals:    string(goalsJSON),
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, key := range Slots() {
		_, err := tx.Exec(`INSERT INTO slots (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value;`, key, values[key])
		if err != nil {
			return fmt.Errorf("write slot %s: %w", key, err)
		}
	}
	return tx.Commit()
}

// Reset removes every slot, kept unreadable content included, so the next
// Load returns defaults.
func (s *Store) Reset() error {
	_, err := s.db.Exec(`DELETE FROM slots;`)
	if err != nil {
		return err
	}
	s.logger.Info("store reset")
	return nil
}

func (s *Store) readSlots() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT key, value FROM slots;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	raw := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		raw[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return raw, nil
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
