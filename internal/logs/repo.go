package logs

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"
	"time"
)

var ErrMissingFields = errors.New("Date and tasks are required")

// serializeTasks validates the append inputs and marshals the snapshot.
// Typed nils (a nil slice, a raw JSON null) serialize to "null" rather
// than tripping an interface nil check, so the check runs on the bytes.
func serializeTasks(date string, tasks any) ([]byte, error) {
	if date == "" || tasks == nil {
		return nil, ErrMissingFields
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, err
	}
	if string(data) == "null" {
		return nil, ErrMissingFields
	}
	return data, nil
}

// Repository is append-only: entries are never updated or removed.
type Repository interface {
	List() ([]Entry, error)
	Append(date string, tasks any) (int64, error)
}

type InMemoryRepo struct {
	mu    sync.Mutex
	seq   int64
	store []Entry
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{}
}

func (r *InMemoryRepo) List() ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, len(r.store))
	copy(out, r.store)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *InMemoryRepo) Append(date string, tasks any) (int64, error) {
	data, err := serializeTasks(date, tasks)
	if err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	r.store = append(r.store, Entry{
		ID:        r.seq,
		Date:      date,
		TasksData: data,
		CreatedAt: time.Now().UTC(),
	})
	return r.seq, nil
}
