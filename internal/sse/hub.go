package sse

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

type Event struct {
	ID   int64       `json:"id"`
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type subscriber struct {
	ch chan Event
}

// Hub fans chat events out to connected stream subscribers and keeps a
// redis-backed history per chat so reconnecting clients can replay from
// their Last-Event-ID.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[uint][]*subscriber // chatID -> subscribers
	rdb         *redis.Client
}

func NewHub(rdb *redis.Client) *Hub {
	return &Hub{
		subscribers: make(map[uint][]*subscriber),
		rdb:         rdb,
	}
}

func streamKey(chatID uint) string {
	return fmt.Sprintf("chat:stream:%d", chatID)
}

func (h *Hub) Subscribe(chatID uint) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	sub := &subscriber{ch: make(chan Event, 256)}
	h.subscribers[chatID] = append(h.subscribers[chatID], sub)

	unsub := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		subs := h.subscribers[chatID]
		for i, s := range subs {
			if s == sub {
				h.subscribers[chatID] = append(subs[:i], subs[i+1:]...)
				close(sub.ch)
				break
			}
		}
		if len(h.subscribers[chatID]) == 0 {
			delete(h.subscribers, chatID)
		}
	}
	return sub.ch, unsub
}

func (h *Hub) Broadcast(chatID uint, event Event) {
	ctx := context.Background()

	if h.rdb != nil {
		data, _ := json.Marshal(event)
		h.rdb.RPush(ctx, streamKey(chatID), string(data))
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, sub := range h.subscribers[chatID] {
		select {
		case sub.ch <- event:
		default:
			// drop if full
		}
	}
}

// ReplayFrom returns the chat's history starting at fromID.
func (h *Hub) ReplayFrom(chatID uint, fromID int64) ([]Event, error) {
	if h.rdb == nil {
		return nil, nil
	}
	ctx := context.Background()

	items, err := h.rdb.LRange(ctx, streamKey(chatID), fromID, -1).Result()
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(items))
	for i, item := range items {
		var ev Event
		if err := json.Unmarshal([]byte(item), &ev); err != nil {
			continue
		}
		ev.ID = fromID + int64(i)
		events = append(events, ev)
	}
	return events, nil
}

// SetExpire bounds the history retention after a chat is deleted.
func (h *Hub) SetExpire(chatID uint, ttl time.Duration) {
	if h.rdb == nil {
		return
	}
	h.rdb.Expire(context.Background(), streamKey(chatID), ttl)
}

func ParseLastEventID(header string) int64 {
	if header == "" {
		return 0
	}
	id, _ := strconv.ParseInt(header, 10, 64)
	return id
}
