package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"taskterm/internal/task"
)

var ErrNotFound = errors.New("task not found")

// PlaceholderDate is attached to every task read back from the table. The
// schema has no date column, so dates entered in the UI do not survive a
// reload.
var PlaceholderDate = sql.NullTime{
	Time:  time.Date(2024, time.September, 30, 0, 0, 0, 0, time.UTC),
	Valid: true,
}

type Store struct {
	db *sql.DB
}

// Open opens the database at dbPath, creating it if needed. An empty path
// opens a transient in-memory database.
func Open(dbPath string) (*Store, error) {
	if dbPath != "" && !strings.HasPrefix(dbPath, "file:") {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", sqliteDSN(dbPath))
	if err != nil {
		return nil, err
	}
	// One connection: an in-memory database lives and dies with it.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
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
CREATE TABLE IF NOT EXISTS tasks (
	id INTEGER PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL,
	completed BOOLEAN NOT NULL,
	priority INTEGER NOT NULL
);`
	if _, err := s.db.Exec(ddl); err != nil {
		return err
	}
	return s.ensureTaskColumns()
}

// ensureTaskColumns upgrades tables created before description existed.
func (s *Store) ensureTaskColumns() error {
	required := map[string]string{
		"description": "ALTER TABLE tasks ADD COLUMN description TEXT NOT NULL DEFAULT '';",
	}
	existing := map[string]struct{}{}
	rows, err := s.db.Query(`PRAGMA table_info(tasks);`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			rows.Close()
			return err
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	// The single connection must be released before the ALTERs can run.
	rows.Close()
	for col, alter := range required {
		if _, ok := existing[col]; ok {
			continue
		}
		if _, err := s.db.Exec(alter); err != nil {
			return err
		}
	}
	return nil
}

const selectColumns = `SELECT id, title, description, completed, priority FROM tasks`

func (s *Store) Insert(t task.Task) (int, error) {
	res, err := s.db.Exec(`INSERT INTO tasks (title, description, completed, priority) VALUES (?, ?, 0, ?);`,
		strings.TrimSpace(t.Title), strings.TrimSpace(t.Description), int(t.Priority))
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	return int(id), nil
}

func (s *Store) All() ([]task.Task, error) {
	return s.query(selectColumns + ` ORDER BY id;`)
}

func (s *Store) AllSorted(order SortOrder) ([]task.Task, error) {
	switch order {
	case SortPriorityDesc:
		return s.query(selectColumns + ` ORDER BY priority DESC, id;`)
	case SortPriorityAsc:
		return s.query(selectColumns + ` ORDER BY priority ASC, id;`)
	default:
		return s.All()
	}
}

func (s *Store) Get(id int) (task.Task, error) {
	row := s.db.QueryRow(selectColumns+` WHERE id = ?;`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return task.Task{}, fmt.Errorf("get task %d: %w", id, err)
	}
	return t, nil
}

func (s *Store) SetCompleted(id int, completed bool) (int64, error) {
	val := 0
	if completed {
		val = 1
	}
	return s.exec("set completed", `UPDATE tasks SET completed = ? WHERE id = ?;`, val, id)
}

func (s *Store) SetPriority(id int, p task.Priority) (int64, error) {
	return s.exec("set priority", `UPDATE tasks SET priority = ? WHERE id = ?;`, int(p), id)
}

// UpdateFields overwrites title and description of the row with t.ID.
func (s *Store) UpdateFields(t task.Task) (int64, error) {
	return s.exec("update task", `UPDATE tasks SET title = ?, description = ? WHERE id = ?;`,
		strings.TrimSpace(t.Title), strings.TrimSpace(t.Description), t.ID)
}

func (s *Store) Delete(id int) (int64, error) {
	return s.exec("delete task", `DELETE FROM tasks WHERE id = ?;`, id)
}

func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT count(*) FROM tasks;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count tasks: %w", err)
	}
	return n, nil
}

func (s *Store) Clear() (int64, error) {
	return s.exec("clear tasks", `DELETE FROM tasks;`)
}

func (s *Store) exec(op, query string, args ...any) (int64, error) {
	res, err := s.db.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}

func (s *Store) query(q string) ([]task.Task, error) {
	rows, err := s.db.Query(q)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []task.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (task.Task, error) {
	var t task.Task
	var completed bool
	var priority int
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &completed, &priority); err != nil {
		return task.Task{}, err
	}
	p, err := task.ParsePriority(priority)
	if err != nil {
		return task.Task{}, fmt.Errorf("task %d: %w", t.ID, err)
	}
	t.Completed = completed
	t.Priority = p
	t.Date = PlaceholderDate
	return t, nil
}

func sqliteDSN(path string) string {
	if path == "" {
		return ":memory:"
	}
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
