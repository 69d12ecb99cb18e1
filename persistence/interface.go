// persistence/interface.go
package persistence

import (
	"fmt"

	"github.com/wfunc/arena/models"
)

// Store 对战历史存储接口
// Implementations must be safe for use from the recorder goroutine.
type Store interface {
	SaveMatchEvent(event *models.MatchEvent) error
	ApplyStatsDelta(symbol string, delta models.StatsDelta) error
	PlayerStats(symbol string) (*models.PlayerStats, error)
	Close() error
}

// 错误定义
var (
	ErrRecordNotFound = fmt.Errorf("record not found")
)
