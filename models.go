package main

import (
	"encoding/json"
	"strconv"
	"time"
)

// Window is an inclusive start-end instant range in the operating timezone.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// LeavePeriod is the derived leave interval of a task. From and To are never
// both zero when derived from a task with any usable date source; a period
// with only one known boundary collapses to a single day.
type LeavePeriod struct {
	LeaveType string
	From      time.Time
	To        time.Time
}

type FieldKind int

const (
	FieldText FieldKind = iota
	FieldDate
	FieldSingleSelect
	FieldMultiSelect
	FieldOther
)

type FieldOption struct {
	ID         string
	Name       string
	Label      string
	OrderIndex int
}

// Display returns the human-readable form of an option. Dropdown options
// carry "name", label options carry "label".
func (o FieldOption) Display() string {
	if o.Name != "" {
		return o.Name
	}
	return o.Label
}

// CustomField is the closed decoded form of the upstream system's
// loosely-typed custom field payload. The raw JSON shape (string | number |
// array | null values) is interpreted exactly once, here, at decode time;
// everything downstream switches on Kind.
type CustomField struct {
	Name string
	Kind FieldKind

	Text      string        // FieldText / FieldOther: stringified value
	Timestamp int64         // FieldDate: epoch millis, 0 when absent or unparseable
	Selected  []string      // FieldSingleSelect (len<=1) / FieldMultiSelect: raw option ids or order indexes
	Options   []FieldOption // selectable options when the field carries a type config
}

func (f *CustomField) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name       string          `json:"name"`
		Type       string          `json:"type"`
		Value      json.RawMessage `json:"value"`
		TypeConfig struct {
			Options []struct {
				ID         string `json:"id"`
				Name       string `json:"name"`
				Label      string `json:"label"`
				OrderIndex int    `json:"orderindex"`
			} `json:"options"`
		} `json:"type_config"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	f.Name = raw.Name
	for _, o := range raw.TypeConfig.Options {
		f.Options = append(f.Options, FieldOption{ID: o.ID, Name: o.Name, Label: o.Label, OrderIndex: o.OrderIndex})
	}

	switch raw.Type {
	case "date":
		f.Kind = FieldDate
		// Malformed date values are swallowed: the field reads as absent.
		f.Timestamp = scalarMillis(raw.Value)
	case "drop_down":
		f.Kind = FieldSingleSelect
		if s := scalarString(raw.Value); s != "" {
			f.Selected = []string{s}
		}
	case "labels":
		f.Kind = FieldMultiSelect
		var ids []string
		if err := json.Unmarshal(raw.Value, &ids); err == nil {
			f.Selected = ids
		}
	case "text", "short_text":
		f.Kind = FieldText
		f.Text = scalarString(raw.Value)
	default:
		f.Kind = FieldOther
		f.Text = scalarString(raw.Value)
	}
	return nil
}

// scalarString renders a JSON scalar (string or number) as a string.
// Nulls, arrays and objects render as "".
func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

// scalarMillis parses a JSON scalar as epoch milliseconds. The upstream API
// sends date values both as numbers and as numeric strings.
func scalarMillis(raw json.RawMessage) int64 {
	s := scalarString(raw)
	if s == "" {
		return 0
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return ms
}

// epochMillis decodes the upstream API's timestamp-as-string convention
// ("1712000000000") while tolerating plain numbers and nulls.
type epochMillis int64

func (m *epochMillis) UnmarshalJSON(data []byte) error {
	*m = epochMillis(scalarMillis(json.RawMessage(data)))
	return nil
}

// Task is an immutable snapshot of one upstream task, re-fetched per call.
type Task struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	URL         string      `json:"url"`
	DateCreated epochMillis `json:"date_created"`
	StartDate   epochMillis `json:"start_date"`
	DueDate     epochMillis `json:"due_date"`
	Creator     struct {
		ID       json.Number `json:"id"`
		Username string      `json:"username"`
	} `json:"creator"`
	List struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"list"`
	CustomFields []CustomField `json:"custom_fields"`
}

// millisToTime converts epoch millis to a time in the given zone.
// Zero millis means "absent" and maps to the zero time.
func millisToTime(ms int64, loc *time.Location) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).In(loc)
}

// Workspace hierarchy, for administrative list discovery.

type Space struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Folder struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SpaceID   string `json:"spaceId"`
	SpaceName string `json:"spaceName"`
	Path      string `json:"path"`
}

type ListInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Space    string `json:"space,omitempty"`
	SpaceID  string `json:"spaceId"`
	Folder   string `json:"folder,omitempty"`
	FolderID string `json:"folderId,omitempty"`
	Path     string `json:"path"`
}

type Hierarchy struct {
	Spaces  []Space    `json:"spaces"`
	Folders []Folder   `json:"folders"`
	Lists   []ListInfo `json:"lists"`
}
