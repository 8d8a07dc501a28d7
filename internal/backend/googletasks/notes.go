package googletasks

import (
	"encoding/json"
	"strings"
)

// metaPrefix marks the notes line holding the fields Google Tasks has no
// column for.
const metaPrefix = "taskman:"

// meta is stored in a Google task's notes.
type meta struct {
	ID       int64  `json:"id"`
	Category string `json:"category"`
	Priority int    `json:"priority"`
}

// encodeMeta renders m as a single notes line.
func encodeMeta(m meta) string {
	data, _ := json.Marshal(m)
	return metaPrefix + " " + string(data)
}

// decodeMeta finds the metadata line in notes. Other lines are ignored so
// users can keep their own notes on the task.
func decodeMeta(notes string) (meta, bool) {
	for _, line := range strings.Split(notes, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, metaPrefix) {
			continue
		}
		var m meta
		if err := json.Unmarshal([]byte(strings.TrimSpace(strings.TrimPrefix(line, metaPrefix))), &m); err != nil {
			continue
		}
		if m.ID <= 0 {
			continue
		}
		return m, true
	}
	return meta{}, false
}
