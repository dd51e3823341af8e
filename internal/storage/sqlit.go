package storage

import (
	"database/sql"
	"fmt"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

type DB interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Begin() (*sql.Tx, error)
	Close() error
}

// Store caches daily closes per symbol. Only inputs are cached, never results.
type Store struct{ db DB }

func OpenSQLite(dsn string) (DB, error) {
	return sql.Open("sqlite3", dsn)
}

func InitSchema(db DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS closes(
		symbol TEXT NOT NULL, day INTEGER NOT NULL, close REAL NOT NULL,
		PRIMARY KEY(symbol, day)
	)`); err != nil {
		return err
	}
	// fetched records which [start, end] day ranges were downloaded completely
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS fetched(
		symbol TEXT NOT NULL, start_day INTEGER NOT NULL, end_day INTEGER NOT NULL
	)`)
	return err
}

func NewStore(db DB) *Store { return &Store{db: db} }

// SaveCloses stores closes for symbol and marks [startDay, endDay] as covered.
// days are unix seconds of UTC midnights.
func (s *Store) SaveCloses(symbol string, startDay, endDay int64, days []int64, closes []float64) error {
	if len(days) != len(closes) {
		return fmt.Errorf("days (%d) and closes (%d) length mismatch", len(days), len(closes))
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for i, d := range days {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO closes(symbol,day,close) VALUES(?,?,?)`,
			symbol, d, closes[i]); err != nil {
			tx.Rollback()
			return err
		}
	}
	if _, err := tx.Exec(`INSERT INTO fetched(symbol,start_day,end_day) VALUES(?,?,?)`,
		symbol, startDay, endDay); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// LoadCloses returns the cached closes of symbol within [startDay, endDay].
// ok is false when no earlier download covered the whole range.
func (s *Store) LoadCloses(symbol string, startDay, endDay int64) (days []int64, closes []float64, ok bool, err error) {
	var covered int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM fetched WHERE symbol=? AND start_day<=? AND end_day>=?`,
		symbol, startDay, endDay).Scan(&covered); err != nil {
		return nil, nil, false, err
	}
	if covered == 0 {
		return nil, nil, false, nil
	}

	rows, err := s.db.Query(`SELECT day, close FROM closes WHERE symbol=? AND day>=? AND day<=? ORDER BY day ASC`,
		symbol, startDay, endDay)
	if err != nil {
		return nil, nil, false, err
	}
	defer rows.Close()
	for rows.Next() {
		var d int64
		var c float64
		if err := rows.Scan(&d, &c); err != nil {
			return nil, nil, false, err
		}
		days = append(days, d)
		closes = append(closes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, false, err
	}
	return days, closes, true, nil
}
