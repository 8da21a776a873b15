package tasks

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

var (
	ErrTextRequired = errors.New("Task text is required")
	ErrNotFound     = errors.New("Task not found")
)

type Repository interface {
	List() ([]Task, error)
	Create(text string) (Task, error)
	SetCompleted(id int64, completed bool) error
	Delete(id int64) error
	Clear() (int64, error)
}

type InMemoryRepo struct {
	mu    sync.Mutex
	seq   int64
	store map[int64]Task
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		store: make(map[int64]Task),
	}
}

func (r *InMemoryRepo) List() ([]Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Task, 0, len(r.store))
	for _, t := range r.store {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryRepo) Create(text string) (Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Task{}, ErrTextRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	t := Task{
		ID:        r.seq,
		Text:      text,
		Completed: false,
		CreatedAt: time.Now().UTC(),
	}
	r.store[t.ID] = t
	return t, nil
}

func (r *InMemoryRepo) SetCompleted(id int64, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.store[id]
	if !ok {
		return ErrNotFound
	}
	t.Completed = completed
	r.store[id] = t
	return nil
}

func (r *InMemoryRepo) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[id]; !ok {
		return ErrNotFound
	}
	delete(r.store, id)
	return nil
}

func (r *InMemoryRepo) Clear() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.store))
	r.store = make(map[int64]Task)
	return n, nil
}
