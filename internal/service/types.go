package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Task represents a single task item.
//
// Fields the client does not know about are kept in Extra and written back
// unchanged when the task is marshaled.
type Task struct {
	ID        string
	Title     string
	Completed bool
	Extra     map[string]json.RawMessage
}

// Updates is a partial field set for UpdateTask. Nil fields are not sent.
type Updates struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// SetTitle returns Updates that change only the title.
func SetTitle(title string) Updates {
	return Updates{Title: &title}
}

// SetCompleted returns Updates that change only the completed flag.
func SetCompleted(completed bool) Updates {
	return Updates{Completed: &completed}
}

// IsEmpty reports whether no field is set.
func (u Updates) IsEmpty() bool {
	return u.Title == nil && u.Completed == nil
}

// Apply returns a copy of t with the set fields of u applied.
func (u Updates) Apply(t Task) Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	return t
}

// DeleteResult is the confirmation payload returned by DeleteTask.
type DeleteResult struct {
	Message string
	Raw     json.RawMessage
}

// Known wire field names.
const (
	fieldID        = "_id"
	fieldTitle     = "title"
	fieldCompleted = "completed"
)

// UnmarshalJSON implements json.Unmarshaler.
func (t *Task) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("task: expected object, got %s", bytes.TrimSpace(data))
	}

	var out Task
	if raw, ok := fields[fieldID]; ok {
		if err := json.Unmarshal(raw, &out.ID); err != nil {
			return fmt.Errorf("task: invalid %s: %w", fieldID, err)
		}
		delete(fields, fieldID)
	}
	if raw, ok := fields[fieldTitle]; ok {
		if err := json.Unmarshal(raw, &out.Title); err != nil {
			return fmt.Errorf("task: invalid %s: %w", fieldTitle, err)
		}
		delete(fields, fieldTitle)
	}
	if raw, ok := fields[fieldCompleted]; ok {
		if err := json.Unmarshal(raw, &out.Completed); err != nil {
			return fmt.Errorf("task: invalid %s: %w", fieldCompleted, err)
		}
		delete(fields, fieldCompleted)
	}
	if len(fields) > 0 {
		out.Extra = fields
	}

	*t = out
	return nil
}

// MarshalJSON implements json.Marshaler.
func (t Task) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(t.Extra))
	for k := range t.Extra {
		switch k {
		case fieldID, fieldTitle, fieldCompleted:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	writeField := func(name string, v any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(name)
		buf.Write(k)
		buf.WriteByte(':')
		if raw, ok := v.(json.RawMessage); ok {
			buf.Write(raw)
			return nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		buf.Write(b)
		return nil
	}

	if err := writeField(fieldID, t.ID); err != nil {
		return nil, err
	}
	if err := writeField(fieldTitle, t.Title); err != nil {
		return nil, err
	}
	if err := writeField(fieldCompleted, t.Completed); err != nil {
		return nil, err
	}
	for _, k := range keys {
		if err := writeField(k, t.Extra[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler. Any payload is accepted;
// a top-level "message" string is extracted when present.
func (d *DeleteResult) UnmarshalJSON(data []byte) error {
	d.Raw = append(json.RawMessage(nil), data...)
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil {
		d.Message = body.Message
	}
	return nil
}
