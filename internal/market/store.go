package market

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"EquitySim/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore caches fetched bars and dividend events in a SQLite database so
// repeated simulations of the same symbol within a day hit the network once.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite market cache opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_bars (
			symbol TEXT NOT NULL,
			period TEXT NOT NULL,
			date   INTEGER NOT NULL,
			open   REAL,
			high   REAL,
			low    REAL,
			close  REAL,
			volume REAL,
			PRIMARY KEY (symbol, period, date)
		)`,
		`CREATE TABLE IF NOT EXISTS dividends (
			symbol TEXT NOT NULL,
			date   INTEGER NOT NULL,
			amount REAL NOT NULL,
			PRIMARY KEY (symbol, date)
		)`,
		`CREATE TABLE IF NOT EXISTS fetches (
			symbol     TEXT NOT NULL,
			kind       TEXT NOT NULL,
			period     TEXT NOT NULL,
			range_from INTEGER NOT NULL DEFAULT 0,
			range_to   INTEGER NOT NULL DEFAULT 0,
			fetched_at INTEGER NOT NULL,
			PRIMARY KEY (symbol, kind, period)
		)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// SaveBars replaces the cached bars for (symbol, period) and stamps the fetch.
func (s *SQLiteStore) SaveBars(symbol, period string, bars model.Series) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM daily_bars WHERE symbol=? AND period=?`, symbol, period); err != nil {
		return fmt.Errorf("clear bars: %w", err)
	}
	for _, b := range bars {
		if _, err := tx.Exec(`INSERT INTO daily_bars
			(symbol, period, date, open, high, low, close, volume)
			VALUES (?,?,?,?,?,?,?,?)`,
			symbol, period, b.Date.Unix(), b.Open, b.High, b.Low, b.Close, b.Volume,
		); err != nil {
			return fmt.Errorf("insert bar: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO fetches
		(symbol, kind, period, range_from, range_to, fetched_at)
		VALUES (?,?,?,0,0,?)`,
		symbol, "bars", period, time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("stamp fetch: %w", err)
	}
	return tx.Commit()
}

// LoadBars returns the cached bars for (symbol, period) together with the
// fetch timestamp. ok is false when nothing has been cached yet.
func (s *SQLiteStore) LoadBars(symbol, period string) (bars model.Series, fetchedAt time.Time, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stamp int64
	row := s.db.QueryRow(`SELECT fetched_at FROM fetches WHERE symbol=? AND kind='bars' AND period=?`, symbol, period)
	if err := row.Scan(&stamp); err != nil {
		if err == sql.ErrNoRows {
			return nil, time.Time{}, false, nil
		}
		return nil, time.Time{}, false, fmt.Errorf("read fetch stamp: %w", err)
	}

	rows, err := s.db.Query(`SELECT date, open, high, low, close, volume
		FROM daily_bars WHERE symbol=? AND period=? ORDER BY date`, symbol, period)
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("read bars: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ts int64
		var b model.Bar
		if err := rows.Scan(&ts, &b.Open, &b.High, &b.Low, &b.Close, &b.Volume); err != nil {
			return nil, time.Time{}, false, fmt.Errorf("scan bar: %w", err)
		}
		b.Date = model.Day(time.Unix(ts, 0))
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, false, fmt.Errorf("iterate bars: %w", err)
	}
	return bars, time.Unix(stamp, 0), true, nil
}

// SaveDividends merges the fetched events and records the covered range.
func (s *SQLiteStore) SaveDividends(symbol string, from, to time.Time, divs model.DividendSeries) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, d := range divs {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO dividends (symbol, date, amount) VALUES (?,?,?)`,
			symbol, d.Date.Unix(), d.AmountPerShare); err != nil {
			return fmt.Errorf("insert dividend: %w", err)
		}
	}
	if _, err := tx.Exec(`INSERT OR REPLACE INTO fetches
		(symbol, kind, period, range_from, range_to, fetched_at)
		VALUES (?,?,'',?,?,?)`,
		symbol, "dividends", from.Unix(), to.Unix(), time.Now().Unix(),
	); err != nil {
		return fmt.Errorf("stamp fetch: %w", err)
	}
	return tx.Commit()
}

// LoadDividends returns cached events in [from, to] when the cache covers the
// whole range; ok is false otherwise.
func (s *SQLiteStore) LoadDividends(symbol string, from, to time.Time) (divs model.DividendSeries, fetchedAt time.Time, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stamp, rangeFrom, rangeTo int64
	row := s.db.QueryRow(`SELECT range_from, range_to, fetched_at FROM fetches
		WHERE symbol=? AND kind='dividends'`, symbol)
	if err := row.Scan(&rangeFrom, &rangeTo, &stamp); err != nil {
		if err == sql.ErrNoRows {
			return nil, time.Time{}, false, nil
		}
		return nil, time.Time{}, false, fmt.Errorf("read fetch stamp: %w", err)
	}
	if rangeFrom > from.Unix() || rangeTo < to.Unix() {
		return nil, time.Time{}, false, nil
	}

	rows, err := s.db.Query(`SELECT date, amount FROM dividends
		WHERE symbol=? AND date BETWEEN ? AND ? ORDER BY date`,
		symbol, from.Unix(), to.Unix())
	if err != nil {
		return nil, time.Time{}, false, fmt.Errorf("read dividends: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ts int64
		var d model.Dividend
		if err := rows.Scan(&ts, &d.AmountPerShare); err != nil {
			return nil, time.Time{}, false, fmt.Errorf("scan dividend: %w", err)
		}
		d.Date = model.Day(time.Unix(ts, 0))
		divs = append(divs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, false, fmt.Errorf("iterate dividends: %w", err)
	}
	return divs, time.Unix(stamp, 0), true, nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite market cache")
	return s.db.Close()
}
