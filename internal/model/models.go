package model

import (
	"time"

	"gorm.io/gorm"
)

// NetworkRecord 网络注册表的持久化形态
type NetworkRecord struct {
	ID         string    `gorm:"primaryKey;size:64"`
	Name       string    `gorm:"size:64"`
	Server     string    `gorm:"size:255"`
	ApiVersion int       `gorm:"default:2"`
	Epoch      time.Time
	Token      string `gorm:"size:16"`
	Symbol     string `gorm:"size:8"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProfileRecord 用户配置档案
type ProfileRecord struct {
	ID        string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"size:64"`
	NetworkID string `gorm:"size:64;index"`
	IsActive  bool   `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PeerRecord 已知节点池
type PeerRecord struct {
	ID        uint   `gorm:"primaryKey"`
	NetworkID string `gorm:"size:64;index"`
	IP        string `gorm:"size:64;uniqueIndex:idx_peer_addr"`
	Port      int    `gorm:"uniqueIndex:idx_peer_addr"`
	Version   string `gorm:"size:32"`
	Height    int64
	Latency   int64
	IsCustom  bool `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}
