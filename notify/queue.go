package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// OrderEvent describes a freshly committed order for the notification
// worker. It carries copies of the order fields so the worker never reads
// the database.
type OrderEvent struct {
	OrderID         uint    `json:"order_id"`
	OrderRef        string  `json:"order_ref"`
	TotalAmount     float64 `json:"total_amount"`
	UserEmail       string  `json:"user_email"`
	DeliveryAddress string  `json:"delivery_address"`
}

// Sender delivers one order notification to an external channel.
type Sender interface {
	Send(ctx context.Context, ev OrderEvent) error
}

const queueKey = "orders:notifications"

// Queue is a Redis-backed fire-and-forget notification queue. Enqueue is
// called after the checkout transaction commits; nothing here can affect the
// order that triggered it.
type Queue struct {
	rdb *redis.Client
}

func NewQueue(addr string) *Queue {
	return &Queue{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Enqueue pushes the event onto the queue. Failures are logged and dropped.
func (q *Queue) Enqueue(ev OrderEvent) {
	payload, err := json.Marshal(ev)
	if err != nil {
		log.Printf("⚠️ Failed to encode notification for order %s: %v", ev.OrderRef, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := q.rdb.LPush(ctx, queueKey, payload).Err(); err != nil {
		log.Printf("⚠️ Failed to queue notification for order %s: %v", ev.OrderRef, err)
	}
}

// RunWorker drains the queue and hands each event to the sender until ctx is
// cancelled. Send failures are logged; the event is not retried.
func (q *Queue) RunWorker(ctx context.Context, sender Sender) {
	log.Println("📬 Order notification worker started")
	for {
		res, err := q.rdb.BRPop(ctx, 5*time.Second, queueKey).Result()
		if err != nil {
			if ctx.Err() != nil {
				log.Println("📪 Order notification worker stopped")
				return
			}
			if !errors.Is(err, redis.Nil) {
				log.Printf("⚠️ Notification queue read failed: %v", err)
				time.Sleep(time.Second)
			}
			continue
		}

		// BRPop returns [key, value].
		var ev OrderEvent
		if err := json.Unmarshal([]byte(res[1]), &ev); err != nil {
			log.Printf("⚠️ Dropping malformed notification payload: %v", err)
			continue
		}

		if err := sender.Send(ctx, ev); err != nil {
			log.Printf("⚠️ Notification for order %s failed: %v", ev.OrderRef, err)
		}
	}
}
