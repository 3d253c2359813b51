package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DB represents the database connection with pooling
type DB struct {
	*sql.DB
	pool     *ConnectionPool
	prepared map[string]*sql.Stmt
	mutex    sync.RWMutex
}

// ConnectionPool manages database connection pooling
type ConnectionPool struct {
	db           *sql.DB
	maxOpenConns int
	maxIdleConns int
	maxLifetime  time.Duration
}

// NewConnectionPool creates a new database connection pool
func NewConnectionPool(db *sql.DB, maxOpen, maxIdle int, maxLifetime time.Duration) *ConnectionPool {
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(maxLifetime)

	return &ConnectionPool{
		db:           db,
		maxOpenConns: maxOpen,
		maxIdleConns: maxIdle,
		maxLifetime:  maxLifetime,
	}
}

// GetStats returns connection pool statistics
func (cp *ConnectionPool) GetStats() map[string]interface{} {
	stats := cp.db.Stats()

	return map[string]interface{}{
		"open_connections":     stats.OpenConnections,
		"in_use":               stats.InUse,
		"idle":                 stats.Idle,
		"max_open_connections": cp.maxOpenConns,
		"max_idle_connections": cp.maxIdleConns,
		"max_lifetime_seconds": cp.maxLifetime.Seconds(),
		"wait_count":           stats.WaitCount,
		"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
		"max_idle_closed":      stats.MaxIdleClosed,
		"max_lifetime_closed":  stats.MaxLifetimeClosed,
	}
}

// NewDB creates a new database connection with optimized pooling
func NewDB(dataDir string) (*DB, error) {
	// Ensure data directory exists
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "athlete_mind_meter.db")

	// Configure connection string for better performance
	connStr := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(5000)", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	pool := NewConnectionPool(db, 25, 5, 5*time.Minute)

	database := &DB{
		DB:       db,
		pool:     pool,
		prepared: make(map[string]*sql.Stmt),
	}

	// Run migrations
	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize prepared statements
	if err := database.initPreparedStatements(); err != nil {
		return nil, fmt.Errorf("failed to initialize prepared statements: %w", err)
	}

	slog.Info("Database initialized with connection pooling",
		"max_open_conns", pool.maxOpenConns,
		"max_idle_conns", pool.maxIdleConns,
		"max_lifetime", pool.maxLifetime)

	return database, nil
}

// migrate creates the necessary tables
func (db *DB) migrate() error {
	queries := []string{
		// Participants table
		`CREATE TABLE IF NOT EXISTS participants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT,
			ip_address TEXT NOT NULL,
			user_agent TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`,

		// Assessment results with one column per measured quality
		`CREATE TABLE IF NOT EXISTS assessment_results (
			id TEXT PRIMARY KEY,
			participant_id TEXT NOT NULL,
			taken_at DATETIME NOT NULL,

			self_determination REAL NOT NULL,
			self_acceptance REAL NOT NULL,
			self_worth REAL NOT NULL,
			self_efficacy REAL NOT NULL,

			introspection REAL NOT NULL,
			self_control REAL NOT NULL,
			devotion REAL NOT NULL,
			intuition REAL NOT NULL,
			sensitivity REAL NOT NULL,
			steadiness REAL NOT NULL,
			comparison REAL NOT NULL,
			result REAL NOT NULL,
			assertion REAL NOT NULL,
			commitment REAL NOT NULL,

			courage REAL NOT NULL,
			resilience REAL NOT NULL,
			cooperation REAL NOT NULL,
			natural_acceptance REAL NOT NULL,
			non_rationality REAL NOT NULL,

			self_esteem_total REAL NOT NULL,
			athlete_mind_total REAL NOT NULL,
			sportsmanship_total REAL NOT NULL,
			grand_total REAL NOT NULL,

			athlete_type TEXT NOT NULL,
			self_esteem_analysis TEXT,
			sportsmanship_balance TEXT,
			strengths TEXT, -- JSON array
			weaknesses TEXT, -- JSON array

			created_at DATETIME NOT NULL,
			FOREIGN KEY (participant_id) REFERENCES participants(id)
		)`,

		// Stored comparisons for later retrieval
		`CREATE TABLE IF NOT EXISTS comparisons (
			id TEXT PRIMARY KEY,
			participant_names TEXT NOT NULL, -- JSON array
			similarity REAL NOT NULL,
			report TEXT NOT NULL, -- JSON comparison report
			created_at DATETIME NOT NULL
		)`,

		// Submission logs for weekly limits
		`CREATE TABLE IF NOT EXISTS submission_logs (
			id TEXT PRIMARY KEY,
			participant_id TEXT NOT NULL,
			ip_address TEXT NOT NULL,
			endpoint TEXT NOT NULL,
			method TEXT NOT NULL,
			user_agent TEXT,
			created_at DATETIME NOT NULL,
			FOREIGN KEY (participant_id) REFERENCES participants(id)
		)`,

		// Indexes for performance
		`CREATE INDEX IF NOT EXISTS idx_participants_ip ON participants(ip_address)`,
		`CREATE INDEX IF NOT EXISTS idx_results_participant ON assessment_results(participant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_results_taken_at ON assessment_results(taken_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_results_total ON assessment_results(grand_total DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_submission_logs_participant ON submission_logs(participant_id)`,
		`CREATE INDEX IF NOT EXISTS idx_submission_logs_created_at ON submission_logs(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_comparisons_created_at ON comparisons(created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}

	return nil
}

// initPreparedStatements initializes frequently used prepared statements
func (db *DB) initPreparedStatements() error {
	statements := map[string]string{
		"insert_participant": `INSERT INTO participants (id, name, email, ip_address, user_agent, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,

		"insert_submission_log": `INSERT INTO submission_logs (id, participant_id, ip_address, endpoint, method, user_agent, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,

		"insert_result": `INSERT INTO assessment_results (
			id, participant_id, taken_at,
			self_determination, self_acceptance, self_worth, self_efficacy,
			introspection, self_control, devotion, intuition, sensitivity,
			steadiness, comparison, result, assertion, commitment,
			courage, resilience, cooperation, natural_acceptance, non_rationality,
			self_esteem_total, athlete_mind_total, sportsmanship_total, grand_total,
			athlete_type, self_esteem_analysis, sportsmanship_balance, strengths, weaknesses,
			created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,

		"insert_comparison": `INSERT INTO comparisons (id, participant_names, similarity, report, created_at)
			VALUES (?, ?, ?, ?, ?)`,

		"get_participant_by_ip": `SELECT id, name, email, ip_address, user_agent, created_at, updated_at
			FROM participants WHERE ip_address = ? ORDER BY created_at DESC LIMIT 1`,

		"get_comparison": `SELECT id, participant_names, similarity, report, created_at
			FROM comparisons WHERE id = ?`,
	}

	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, query := range statements {
		stmt, err := db.Prepare(query)
		if err != nil {
			return fmt.Errorf("failed to prepare statement %s: %w", name, err)
		}
		db.prepared[name] = stmt

		slog.Debug("Prepared statement initialized", "name", name)
	}

	return nil
}

// GetPreparedStatement retrieves a prepared statement
func (db *DB) GetPreparedStatement(name string) (*sql.Stmt, error) {
	db.mutex.RLock()
	defer db.mutex.RUnlock()

	stmt, exists := db.prepared[name]
	if !exists {
		return nil, fmt.Errorf("prepared statement %s not found", name)
	}

	return stmt, nil
}

// GetPoolStats returns database connection pool statistics
func (db *DB) GetPoolStats() map[string]interface{} {
	return db.pool.GetStats()
}

// Close closes the database connection and prepared statements
func (db *DB) Close() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	for name, stmt := range db.prepared {
		if err := stmt.Close(); err != nil {
			slog.Warn("Failed to close prepared statement", "name", name, "error", err)
		}
	}

	db.prepared = make(map[string]*sql.Stmt)

	return db.DB.Close()
}
