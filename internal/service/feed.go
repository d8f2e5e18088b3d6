package service

import "sync"

// Feed event types pushed to websocket subscribers.
const (
	EventPostCreated    = "post_created"
	EventPostLiked      = "post_liked"
	EventPostUnliked    = "post_unliked"
	EventCommentAdded   = "comment_added"
	EventCommentDeleted = "comment_deleted"
)

// FeedEvent describes one post mutation for live feed subscribers.
type FeedEvent struct {
	Type   string `json:"type"`
	PostID string `json:"post_id"`
	Data   any    `json:"data,omitempty"`
}

// subscriberBuffer bounds how far a slow subscriber may lag before events
// are dropped for it.
const subscriberBuffer = 16

// FeedHub is an in-process broadcast hub. Publish never blocks: events to a
// subscriber with a full buffer are dropped rather than stalling the
// publishing request.
type FeedHub struct {
	mu   sync.Mutex
	next int
	subs map[int]chan FeedEvent
}

func NewFeedHub() *FeedHub {
	return &FeedHub{subs: make(map[int]chan FeedEvent)}
}

var _ Feed = (*FeedHub)(nil)

// Subscribe registers a new subscriber. The returned cancel func must be
// called to release it; afterwards the channel is closed.
func (h *FeedHub) Subscribe() (<-chan FeedEvent, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan FeedEvent, subscriberBuffer)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
	}
	return ch, cancel
}

// Publish fans the event out to all current subscribers.
func (h *FeedHub) Publish(e FeedEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- e:
		default: // subscriber lagging; drop
		}
	}
}
