// persistence/gorm_postgresql.go
package persistence

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wfunc/arena/models"
)

// GormPostgreSQL 使用GORM的PostgreSQL实现
type GormPostgreSQL struct {
	db *gorm.DB
}

// NewGormPostgreSQL 创建GORM PostgreSQL数据库连接
func NewGormPostgreSQL(host string, port int, user, password, dbname string) (*GormPostgreSQL, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)

	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Silent,
			Colorful:      false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 设置连接池
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	// 自动迁移表结构
	if err := db.AutoMigrate(&models.GormMatchEvent{}, &models.GormPlayerStats{}); err != nil {
		return nil, err
	}

	return &GormPostgreSQL{db: db}, nil
}

func (g *GormPostgreSQL) SaveMatchEvent(event *models.MatchEvent) error {
	row := models.GormMatchEvent{
		Type:   event.Type,
		Symbol: event.Symbol,
		Target: event.Target,
		Row:    event.Row,
		Col:    event.Col,
		HP:     event.HP,
	}
	return g.db.Create(&row).Error
}

// ApplyStatsDelta 原子更新玩家统计
func (g *GormPostgreSQL) ApplyStatsDelta(symbol string, delta models.StatsDelta) error {
	if delta.IsZero() {
		return nil
	}
	return g.db.Transaction(func(tx *gorm.DB) error {
		var stats models.GormPlayerStats
		if err := tx.Where("symbol = ?", symbol).
			FirstOrCreate(&stats, models.GormPlayerStats{Symbol: symbol}).Error; err != nil {
			return err
		}
		updates := map[string]interface{}{
			"joins":   gorm.Expr("joins + ?", delta.Joins),
			"moves":   gorm.Expr("moves + ?", delta.Moves),
			"attacks": gorm.Expr("attacks + ?", delta.Attacks),
			"kills":   gorm.Expr("kills + ?", delta.Kills),
			"deaths":  gorm.Expr("deaths + ?", delta.Deaths),
		}
		return tx.Model(&stats).Updates(updates).Error
	})
}

func (g *GormPostgreSQL) PlayerStats(symbol string) (*models.PlayerStats, error) {
	var stats models.GormPlayerStats
	if err := g.db.Where("symbol = ?", symbol).First(&stats).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &models.PlayerStats{
		Symbol:    stats.Symbol,
		Joins:     stats.Joins,
		Moves:     stats.Moves,
		Attacks:   stats.Attacks,
		Kills:     stats.Kills,
		Deaths:    stats.Deaths,
		UpdatedAt: stats.UpdatedAt,
	}, nil
}

func (g *GormPostgreSQL) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
