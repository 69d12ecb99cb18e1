// models/gorm_models.go
package models

import (
	"gorm.io/gorm"
)

// GormMatchEvent 对战事件记录
type GormMatchEvent struct {
	gorm.Model
	Type   string `gorm:"index;not null"`
	Symbol string `gorm:"index;not null"`
	Target string
	Row    int `gorm:"column:grid_row"`
	Col    int `gorm:"column:grid_col"`
	HP     int
}

func (GormMatchEvent) TableName() string {
	return "match_events"
}

// GormPlayerStats 玩家生涯统计
type GormPlayerStats struct {
	gorm.Model
	Symbol  string `gorm:"uniqueIndex;not null"`
	Joins   int    `gorm:"default:0"`
	Moves   int    `gorm:"default:0"`
	Attacks int    `gorm:"default:0"`
	Kills   int    `gorm:"default:0"`
	Deaths  int    `gorm:"default:0"`
}

func (GormPlayerStats) TableName() string {
	return "player_stats"
}
