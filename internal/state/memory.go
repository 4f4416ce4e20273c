package state

import (
	"sync"
)

// MemoryStore 是运行时的状态容器实现。
// 所有读写都在锁内完成; 激活档案支持订阅 (订阅即立刻回调一次当前值)。
type MemoryStore struct {
	mu             sync.RWMutex
	networks       map[string]*Network
	peers          map[string][]*Peer
	sessionNetwork *Network
	activeProfile  *Profile
	currentPeer    *Peer

	nextSub   int
	profSubs  map[int]func(*Profile)
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		networks: make(map[string]*Network),
		peers:    make(map[string][]*Peer),
		profSubs: make(map[int]func(*Profile)),
	}
}

// ---- Getters ----

func (s *MemoryStore) SessionNetwork() (*Network, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sessionNetwork == nil {
		return nil, false
	}
	return s.sessionNetwork, true
}

func (s *MemoryStore) NetworkByID(id string) (*Network, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.networks[id]
	return n, ok
}

func (s *MemoryStore) ActiveProfile() (*Profile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.activeProfile == nil {
		return nil, false
	}
	return s.activeProfile, true
}

func (s *MemoryStore) CurrentPeer() (*Peer, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentPeer == nil {
		return nil, false
	}
	return s.currentPeer, true
}

func (s *MemoryStore) Peers(networkID string) []*Peer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.peers[networkID]
	out := make([]*Peer, len(list))
	copy(out, list)
	return out
}

// ---- Actions ----

func (s *MemoryStore) SetCurrentPeer(p *Peer) {
	s.mu.Lock()
	s.currentPeer = p
	s.mu.Unlock()
}

func (s *MemoryStore) ClearCurrentPeer() {
	s.mu.Lock()
	s.currentPeer = nil
	s.mu.Unlock()
}

func (s *MemoryStore) SetPeers(networkID string, peers []*Peer) {
	s.mu.Lock()
	s.peers[networkID] = peers
	s.mu.Unlock()
}

func (s *MemoryStore) ClearPeers(networkID string) {
	s.mu.Lock()
	delete(s.peers, networkID)
	s.mu.Unlock()
}

// ---- 配置写入 (启动装载 / 测试使用) ----

func (s *MemoryStore) AddNetwork(n *Network) {
	s.mu.Lock()
	s.networks[n.ID] = n
	s.mu.Unlock()
}

func (s *MemoryStore) SetSessionNetwork(n *Network) {
	s.mu.Lock()
	s.sessionNetwork = n
	s.mu.Unlock()
}

// SetActiveProfile 切换激活档案并通知所有订阅者。
// 回调在锁外执行, 订阅者里允许再调用 Store 的读写方法。
func (s *MemoryStore) SetActiveProfile(p *Profile) {
	s.mu.Lock()
	s.activeProfile = p
	subs := make([]func(*Profile), 0, len(s.profSubs))
	for _, fn := range s.profSubs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(p)
	}
}

// SubscribeActiveProfile 订阅激活档案变化。
// 契约: 订阅时立即以当前值回调一次 (可能为 nil); 返回取消函数。
func (s *MemoryStore) SubscribeActiveProfile(fn func(*Profile)) (cancel func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.profSubs[id] = fn
	current := s.activeProfile
	s.mu.Unlock()

	fn(current)

	return func() {
		s.mu.Lock()
		delete(s.profSubs, id)
		s.mu.Unlock()
	}
}
