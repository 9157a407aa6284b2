package analysis

import (
	"context"
	"sync"

	"github.com/freyasheth/foodbuddy/internal/pkg/common"
)

// session 用戶端目前唯一有效的請求
type session struct {
	gen    uint64
	cancel context.CancelFunc
}

// Sessions 每個用戶端同時只保留最新的一個請求
type Sessions struct {
	mu     sync.Mutex
	seq    uint64
	active map[string]*session
}

// NewSessions 創建請求取代管理器
func NewSessions() *Sessions {
	return &Sessions{active: make(map[string]*session)}
}

// Run 執行 fn。同一 clientID 的新請求會取消舊請求；
// 被取代的請求不論 fn 結果為何都回傳 common.ErrSuperseded。
func (s *Sessions) Run(ctx context.Context, clientID string, fn func(context.Context) (*Result, error)) (*Result, error) {
	if clientID == "" {
		return fn(ctx)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.mu.Lock()
	if prev, ok := s.active[clientID]; ok {
		prev.cancel()
	}
	s.seq++
	gen := s.seq
	s.active[clientID] = &session{gen: gen, cancel: cancel}
	s.mu.Unlock()

	result, err := fn(runCtx)

	s.mu.Lock()
	cur, ok := s.active[clientID]
	current := ok && cur.gen == gen
	if current {
		delete(s.active, clientID)
	}
	s.mu.Unlock()

	if !current {
		return nil, common.ErrSuperseded
	}
	return result, err
}

// Active 進行中的用戶端數量
func (s *Sessions) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}
