// persistence/postgresql.go
package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// PostgreSQL 驱动
	_ "github.com/lib/pq"

	"github.com/wfunc/arena/models"
)

// PostgreSQL 基于database/sql的实现
type PostgreSQL struct {
	db *sql.DB
}

// NewPostgreSQL 创建 PostgreSQL 数据库连接
func NewPostgreSQL(host string, port int, user, password, dbname string) (*PostgreSQL, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	// 测试连接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := initTables(db); err != nil {
		return nil, err
	}

	return &PostgreSQL{db: db}, nil
}

// initTables 初始化数据库表结构
func initTables(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS match_events (
            id SERIAL PRIMARY KEY,
            type TEXT NOT NULL,
            symbol TEXT NOT NULL,
            target TEXT,
            grid_row INT NOT NULL DEFAULT 0,
            grid_col INT NOT NULL DEFAULT 0,
            hp INT NOT NULL DEFAULT 0,
            created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
        CREATE TABLE IF NOT EXISTS player_stats (
            id SERIAL PRIMARY KEY,
            symbol TEXT UNIQUE NOT NULL,
            joins INT NOT NULL DEFAULT 0,
            moves INT NOT NULL DEFAULT 0,
            attacks INT NOT NULL DEFAULT 0,
            kills INT NOT NULL DEFAULT 0,
            deaths INT NOT NULL DEFAULT 0,
            updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
        )`)
	return err
}

func (p *PostgreSQL) SaveMatchEvent(event *models.MatchEvent) error {
	_, err := p.db.Exec(`
        INSERT INTO match_events (type, symbol, target, grid_row, grid_col, hp, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		event.Type, event.Symbol, event.Target, event.Row, event.Col, event.HP, event.CreatedAt)
	return err
}

// ApplyStatsDelta 原子更新玩家统计
func (p *PostgreSQL) ApplyStatsDelta(symbol string, delta models.StatsDelta) error {
	if delta.IsZero() {
		return nil
	}
	_, err := p.db.Exec(`
        INSERT INTO player_stats (symbol, joins, moves, attacks, kills, deaths, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
        ON CONFLICT (symbol) DO UPDATE SET
            joins = player_stats.joins + EXCLUDED.joins,
            moves = player_stats.moves + EXCLUDED.moves,
            attacks = player_stats.attacks + EXCLUDED.attacks,
            kills = player_stats.kills + EXCLUDED.kills,
            deaths = player_stats.deaths + EXCLUDED.deaths,
            updated_at = CURRENT_TIMESTAMP`,
		symbol, delta.Joins, delta.Moves, delta.Attacks, delta.Kills, delta.Deaths)
	return err
}

func (p *PostgreSQL) PlayerStats(symbol string) (*models.PlayerStats, error) {
	var stats models.PlayerStats
	err := p.db.QueryRow(`
        SELECT symbol, joins, moves, attacks, kills, deaths, updated_at
        FROM player_stats WHERE symbol = $1`, symbol).
		Scan(&stats.Symbol, &stats.Joins, &stats.Moves, &stats.Attacks,
			&stats.Kills, &stats.Deaths, &stats.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (p *PostgreSQL) Close() error {
	return p.db.Close()
}
