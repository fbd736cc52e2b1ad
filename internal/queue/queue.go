package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event types published by the portal.
const (
	TypeAppointmentBooked = "appointment.booked"
	TypeUserRegistered    = "user.registered"
	TypeAppointmentStatus = "appointment.status"
)

// DefaultKey is the Redis list the API and worker share.
const DefaultKey = "counseling:events"

// Message represents work to be processed.
type Message struct {
	Type string
	Body []byte
}

// NewMessage encodes payload as the JSON body of a message.
func NewMessage(typ string, payload any) (Message, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Message{}, fmt.Errorf("encode %s event: %w", typ, err)
	}
	return Message{Type: typ, Body: body}, nil
}

// Decode unmarshals the JSON body into v.
func (m Message) Decode(v any) error {
	if err := json.Unmarshal(m.Body, v); err != nil {
		return fmt.Errorf("decode %s event: %w", m.Type, err)
	}
	return nil
}

// AppointmentBooked is the payload of TypeAppointmentBooked.
type AppointmentBooked struct {
	AppointmentID string    `json:"appointmentId"`
	TeacherID     string    `json:"teacherId"`
	TeacherName   string    `json:"teacherName"`
	StudentID     string    `json:"studentId,omitempty"`
	StudentName   string    `json:"studentName,omitempty"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Type          string    `json:"type"`
	At            time.Time `json:"at"`
}

// UserRegistered is the payload of TypeUserRegistered.
type UserRegistered struct {
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
	At    time.Time `json:"at"`
}

// AppointmentStatus is the payload of TypeAppointmentStatus.
type AppointmentStatus struct {
	AppointmentID string    `json:"appointmentId"`
	StudentName   string    `json:"studentName"`
	TeacherName   string    `json:"teacherName"`
	Status        string    `json:"status"`
	ChangedBy     string    `json:"changedBy"`
	At            time.Time `json:"at"`
}

// Queue is the abstraction over different backends.
type Queue interface {
	Publish(ctx context.Context, msg Message) error
	Consume(ctx context.Context) (<-chan Message, error)
}

// InMemory is a minimal channel-backed queue for dev/testing.
type InMemory struct {
	ch chan Message
}

// NewInMemory creates a bounded in-memory queue.
func NewInMemory(size int) *InMemory {
	return &InMemory{ch: make(chan Message, size)}
}

// Publish enqueues a message.
func (q *InMemory) Publish(ctx context.Context, msg Message) error {
	select {
	case q.ch <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Consume returns a channel for workers.
func (q *InMemory) Consume(ctx context.Context) (<-chan Message, error) {
	out := make(chan Message)
	go func() {
		defer close(out)
		for {
			select {
			case msg := <-q.ch:
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

// RetryDelay is how long Consume waits after a failed BRPOP.
const RetryDelay = time.Second

// RedisQueue implements a simple Redis list-backed queue.
type RedisQueue struct {
	client     *redis.Client
	key        string
	retryDelay time.Duration
}

// NewRedisQueue builds a queue using LPUSH/BRPOP semantics.
func NewRedisQueue(client *redis.Client, key string) *RedisQueue {
	if key == "" {
		key = DefaultKey
	}
	return &RedisQueue{client: client, key: key, retryDelay: RetryDelay}
}

// Publish enqueues a message.
func (q *RedisQueue) Publish(ctx context.Context, msg Message) error {
	return q.client.LPush(ctx, q.key, serialize(msg)).Err()
}

// Consume streams messages using BRPOP.
func (q *RedisQueue) Consume(ctx context.Context) (<-chan Message, error) {
	out := make(chan Message)
	go func() {
		defer close(out)
		for {
			res, err := q.client.BRPop(ctx, 5*time.Second, q.key).Result()
			if errors.Is(err, redis.Nil) {
				continue
			}
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				select {
				case <-time.After(q.retryDelay):
				case <-ctx.Done():
					return
				}
				continue
			}
			if len(res) == 2 {
				select {
				case out <- deserialize(res[1]):
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

// serialize stores messages as Type|Body.
func serialize(msg Message) string {
	return msg.Type + "|" + string(msg.Body)
}

func deserialize(s string) Message {
	typ, body, ok := strings.Cut(s, "|")
	if !ok {
		return Message{Body: []byte(s)}
	}
	return Message{Type: typ, Body: []byte(body)}
}
