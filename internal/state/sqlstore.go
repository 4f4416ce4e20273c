package state

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wallet-client/internal/model"
)

// LoadFromDB 把持久化的网络/档案/节点装载进运行时容器。
// DB 是系统的存档, MemoryStore 才是运行时的单一事实来源。
func LoadFromDB(db *gorm.DB, store *MemoryStore) error {
	var networks []model.NetworkRecord
	if err := db.Find(&networks).Error; err != nil {
		return fmt.Errorf("加载网络注册表失败: %w", err)
	}
	for _, n := range networks {
		store.AddNetwork(&Network{
			ID:         n.ID,
			Name:       n.Name,
			Server:     n.Server,
			ApiVersion: n.ApiVersion,
			Epoch:      n.Epoch,
			Token:      n.Token,
			Symbol:     n.Symbol,
		})
	}

	var peers []model.PeerRecord
	if err := db.Find(&peers).Error; err != nil {
		return fmt.Errorf("加载节点池失败: %w", err)
	}
	byNetwork := make(map[string][]*Peer)
	for _, p := range peers {
		byNetwork[p.NetworkID] = append(byNetwork[p.NetworkID], &Peer{
			IP:       p.IP,
			Port:     p.Port,
			Version:  p.Version,
			Height:   p.Height,
			Latency:  p.Latency,
			IsCustom: p.IsCustom,
		})
	}
	for id, list := range byNetwork {
		store.SetPeers(id, list)
	}

	var active model.ProfileRecord
	err := db.Where("is_active = ?", true).First(&active).Error
	if err == nil {
		store.SetActiveProfile(&Profile{ID: active.ID, Name: active.Name, NetworkID: active.NetworkID})
		if n, ok := store.NetworkByID(active.NetworkID); ok {
			store.SetSessionNetwork(n)
		}
	} else if err != gorm.ErrRecordNotFound {
		return fmt.Errorf("加载激活档案失败: %w", err)
	}

	return nil
}

// SavePeers 把某网络发现到的节点池写回数据库 (upsert by ip+port)。
func SavePeers(db *gorm.DB, networkID string, peers []*Peer) error {
	if len(peers) == 0 {
		return nil
	}
	records := make([]model.PeerRecord, 0, len(peers))
	for _, p := range peers {
		records = append(records, model.PeerRecord{
			NetworkID: networkID,
			IP:        p.IP,
			Port:      p.Port,
			Version:   p.Version,
			Height:    p.Height,
			Latency:   p.Latency,
			IsCustom:  p.IsCustom,
		})
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ip"}, {Name: "port"}},
		DoUpdates: clause.AssignmentColumns([]string{"version", "height", "latency", "updated_at"}),
	}).Create(&records).Error
}
