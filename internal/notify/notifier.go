package notify

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/Dipraise1/publicfund/internal/logger"
	"github.com/Dipraise1/publicfund/internal/model"
	"github.com/panjf2000/ants/v2"
	"gorm.io/gorm"
)

// Event 对外事件，状态提交后发布
type Event struct {
	Name string                 `json:"name"`
	At   time.Time              `json:"at"`
	Data map[string]interface{} `json:"data"`
}

// Listener 事件监听回调
type Listener func(Event)

// Notifier 事件通知器：落库并通过协程池分发给监听者
type Notifier struct {
	db        *gorm.DB
	pool      *ants.Pool
	mu        sync.RWMutex
	listeners []Listener
}

// NewNotifier 创建事件通知器
func NewNotifier(db *gorm.DB, poolSize int) (*Notifier, error) {
	if poolSize <= 0 {
		poolSize = 8
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}
	return &Notifier{db: db, pool: pool}, nil
}

// Subscribe 注册事件监听者
func (n *Notifier) Subscribe(l Listener) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.listeners = append(n.listeners, l)
}

// Publish 发布事件：先写事件记录，再异步分发。
// 只在状态变更提交之后调用，失败只记日志不影响调用方。
func (n *Notifier) Publish(name string, at time.Time, data map[string]interface{}) {
	event := Event{Name: name, At: at, Data: data}

	dataJSON, err := json.Marshal(data)
	if err != nil {
		logger.Error("Failed to marshal event %s: %v", name, err)
		return
	}

	record := model.EventRecord{Name: name, Data: string(dataJSON)}
	if err := n.db.Create(&record).Error; err != nil {
		logger.Error("Failed to persist event %s: %v", name, err)
	}

	n.mu.RLock()
	listeners := make([]Listener, len(n.listeners))
	copy(listeners, n.listeners)
	n.mu.RUnlock()

	for _, l := range listeners {
		l := l
		if err := n.pool.Submit(func() { l(event) }); err != nil {
			logger.Error("Failed to dispatch event %s: %v", name, err)
		}
	}
}

// GetEvents 查询事件记录
func (n *Notifier) GetEvents(name string, page, pageSize int) ([]model.EventRecord, int64, error) {
	var events []model.EventRecord
	var total int64

	query := n.db.Model(&model.EventRecord{})
	if name != "" {
		query = query.Where("name = ?", name)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := query.Offset(offset).Limit(pageSize).Order("id DESC").Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

// Close 关闭协程池
func (n *Notifier) Close() {
	n.pool.Release()
}
