package logs

import (
	"encoding/json"
	"time"
)

// Entry is one archived snapshot of the task list. TasksData is kept
// opaque: the log store never inspects what was serialized into it.
type Entry struct {
	ID        int64           `json:"id"`
	Date      string          `json:"date"`
	TasksData json.RawMessage `json:"tasks_data"`
	CreatedAt time.Time       `json:"created_at"`
}
