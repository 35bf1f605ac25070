package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"speechlab/corpus"
	"speechlab/sentiment"
)

// Store wraps SQLite access for speeches and jobs.
type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS speeches (
            filename TEXT PRIMARY KEY,
            speaker TEXT,
            party TEXT,
            category TEXT,
            country TEXT,
            year INTEGER,
            date TEXT,
            sentiment_score REAL,
            score_json TEXT,
            status TEXT,
            last_stage TEXT,
            last_error TEXT,
            created_at TIMESTAMP,
            updated_at TIMESTAMP
        );`,
		`CREATE TABLE IF NOT EXISTS jobs (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            filename TEXT,
            stage TEXT,
            status TEXT,
            params_json TEXT,
            idempotency_key TEXT,
            created_at TIMESTAMP,
            updated_at TIMESTAMP,
            started_at TIMESTAMP,
            finished_at TIMESTAMP
        );`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_jobs_idem ON jobs(idempotency_key);`,
		`CREATE TABLE IF NOT EXISTS job_logs (
            job_id INTEGER,
            line TEXT,
            created_at TIMESTAMP
        );`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// Speech is the persisted row for one transcript, its study metadata,
// and its pipeline state.
type Speech struct {
	Record    corpus.SpeechRecord `json:"record"`
	Status    string              `json:"status"`
	LastStage string              `json:"last_stage"`
	LastError *string             `json:"last_error"`
	ScoreJSON *string             `json:"score_json"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// Job represents a pipeline job persisted to DB.
type Job struct {
	ID             int64      `json:"id"`
	Filename       string     `json:"filename"`
	Stage          string     `json:"stage"`
	Status         string     `json:"status"`
	ParamsJSON     string     `json:"params_json"`
	IdempotencyKey string     `json:"idempotency_key"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	StartedAt      *time.Time `json:"started_at"`
	FinishedAt     *time.Time `json:"finished_at"`
}

// UpsertSpeech records a transcript's metadata, preserving any score
// already saved for it.
func (s *Store) UpsertSpeech(ctx context.Context, rec corpus.SpeechRecord, stage, status string, errMsg *string, ts time.Time) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO speeches(filename, speaker, party, category, country, year, date, status, last_stage, last_error, created_at, updated_at)
        VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT(filename) DO UPDATE SET speaker=excluded.speaker, party=excluded.party, category=excluded.category,
            country=excluded.country, year=excluded.year, date=excluded.date,
            status=excluded.status, last_stage=excluded.last_stage, last_error=excluded.last_error, updated_at=excluded.updated_at`,
		rec.Filename, rec.Speaker, rec.Party, rec.Category, rec.Country, rec.Year, rec.Date,
		status, stage, errMsg, ts, ts)
	return err
}

// SaveScore persists the VADER breakdown for a speech and promotes its
// sentence-level mean to the record's sentiment score.
func (s *Store) SaveScore(ctx context.Context, filename string, score sentiment.SpeechScore, ts time.Time) error {
	payload, err := json.Marshal(score)
	if err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `UPDATE speeches SET sentiment_score=?, score_json=?, status=?, last_stage=?, updated_at=? WHERE filename=?`,
		score.SentenceMean, string(payload), "scored", "SCORE", ts, filename)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("speech %s not found", filename)
	}
	return nil
}

// UpdateSpeechStage updates pipeline state for a speech when a stage
// completes or fails.
func (s *Store) UpdateSpeechStage(ctx context.Context, filename, stage, status string, errMsg *string, ts time.Time) error {
	_, err := s.db.ExecContext(ctx, `UPDATE speeches SET status=?, last_stage=?, last_error=?, updated_at=? WHERE filename=?`,
		status, stage, errMsg, ts, filename)
	return err
}

// ScoredRecords returns the validated records of every scored speech,
// plus the count of rows that failed validation and were excluded.
func (s *Store) ScoredRecords(ctx context.Context) (*corpus.LoadResult, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT filename, speaker, party, category, country, year, date, sentiment_score
        FROM speeches WHERE status='scored' ORDER BY filename ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := &corpus.LoadResult{}
	for rows.Next() {
		var rec corpus.SpeechRecord
		if err := rows.Scan(&rec.Filename, &rec.Speaker, &rec.Party, &rec.Category, &rec.Country, &rec.Year, &rec.Date, &rec.SentimentScore); err != nil {
			return nil, err
		}
		if err := rec.Validate(); err != nil {
			result.Skipped++
			continue
		}
		result.Records = append(result.Records, rec)
	}
	return result, rows.Err()
}

func (s *Store) ListSpeeches(ctx context.Context, limit int) ([]Speech, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT filename, speaker, party, category, country, year, date, sentiment_score, score_json, status, last_stage, last_error, created_at, updated_at
        FROM speeches ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var speeches []Speech
	for rows.Next() {
		var sp Speech
		var errMsg, scoreJSON sql.NullString
		var score sql.NullFloat64
		if err := rows.Scan(&sp.Record.Filename, &sp.Record.Speaker, &sp.Record.Party, &sp.Record.Category,
			&sp.Record.Country, &sp.Record.Year, &sp.Record.Date, &score, &scoreJSON,
			&sp.Status, &sp.LastStage, &errMsg, &sp.CreatedAt, &sp.UpdatedAt); err != nil {
			return nil, err
		}
		if score.Valid {
			sp.Record.SentimentScore = score.Float64
		}
		if errMsg.Valid {
			sp.LastError = &errMsg.String
		}
		if scoreJSON.Valid {
			sp.ScoreJSON = &scoreJSON.String
		}
		speeches = append(speeches, sp)
	}
	return speeches, rows.Err()
}

func (s *Store) RecordJob(ctx context.Context, j *Job) (*Job, error) {
	if j.ParamsJSON == "" {
		j.ParamsJSON = "{}"
	}
	res, err := s.db.ExecContext(ctx, `INSERT INTO jobs(filename, stage, status, params_json, idempotency_key, created_at, updated_at) VALUES(?,?,?,?,?,?,?)`,
		j.Filename, j.Stage, j.Status, j.ParamsJSON, j.IdempotencyKey, j.CreatedAt, j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	id, _ := res.LastInsertId()
	j.ID = id
	return j, nil
}

// FetchJobByIdempotency returns existing job if present.
func (s *Store) FetchJobByIdempotency(ctx context.Context, key string) (*Job, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, filename, stage, status, params_json, idempotency_key, created_at, updated_at, started_at, finished_at FROM jobs WHERE idempotency_key=?`, key)
	var j Job
	var started, finished sql.NullTime
	switch err := row.Scan(&j.ID, &j.Filename, &j.Stage, &j.Status, &j.ParamsJSON, &j.IdempotencyKey, &j.CreatedAt, &j.UpdatedAt, &started, &finished); err {
	case nil:
		if started.Valid {
			j.StartedAt = &started.Time
		}
		if finished.Valid {
			j.FinishedAt = &finished.Time
		}
		return &j, nil
	case sql.ErrNoRows:
		return nil, nil
	default:
		return nil, err
	}
}

func (s *Store) MarkJobStarted(ctx context.Context, id int64, ts time.Time) error {
	_, err := s.db.ExecContext(ctx, `UPDATE jobs SET status=?, started_at=?, updated_at=? WHERE id=?`, "running", ts, ts, id)
	return err
}

func (s *Store) MarkJobFinished(ctx context.Context, id int64, status string, ts time.Time) error {
	_, err := s.db.ExecContext(ctx, `UPDATE jobs SET status=?, finished_at=?, updated_at=? WHERE id=?`, status, ts, ts, id)
	return err
}

func (s *Store) AppendJobLog(ctx context.Context, id int64, line string, ts time.Time) error {
	_, err := s.db.ExecContext(ctx, `INSERT INTO job_logs(job_id, line, created_at) VALUES(?,?,?)`, id, line, ts)
	return err
}

func (s *Store) ListJobs(ctx context.Context, limit int) ([]Job, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, filename, stage, status, params_json, idempotency_key, created_at, updated_at, started_at, finished_at FROM jobs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var jobs []Job
	for rows.Next() {
		var j Job
		var started, finished sql.NullTime
		if err := rows.Scan(&j.ID, &j.Filename, &j.Stage, &j.Status, &j.ParamsJSON, &j.IdempotencyKey, &j.CreatedAt, &j.UpdatedAt, &started, &finished); err != nil {
			return nil, err
		}
		if started.Valid {
			j.StartedAt = &started.Time
		}
		if finished.Valid {
			j.FinishedAt = &finished.Time
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (s *Store) JobLogs(ctx context.Context, jobID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT line FROM job_logs WHERE job_id=? ORDER BY created_at ASC`, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var lines []string
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

var ErrConflict = errors.New("idempotent job already exists")

// InsertJobIdempotent records a job if idempotency key is new.
func (s *Store) InsertJobIdempotent(ctx context.Context, j *Job) (*Job, error) {
	existing, err := s.FetchJobByIdempotency(ctx, j.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, ErrConflict
	}
	return s.RecordJob(ctx, j)
}

// Health returns err if DB not reachable.
func (s *Store) Health(ctx context.Context) error {
	row := s.db.QueryRowContext(ctx, `SELECT 1`)
	var v int
	if err := row.Scan(&v); err != nil {
		return fmt.Errorf("db health: %w", err)
	}
	return nil
}
