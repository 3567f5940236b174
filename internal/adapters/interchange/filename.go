package interchange

import (
	"strings"
)

// CollectionFilename is the name of a whole-collection export.
const CollectionFilename = "flashcards.json"

const untitled = "untitled"

// SubjectFilename returns "<subject>.json".
func SubjectFilename(subject string) string {
	return sanitize(subject) + ".json"
}

// TopicFilename returns "<subject>_<topic>.json".
func TopicFilename(subject, topic string) string {
	return sanitize(subject) + "_" + sanitize(topic) + ".json"
}

// sanitize replaces characters that cannot appear in a file name on common
// filesystems. Spaces and letters outside ASCII are kept.
func sanitize(name string) string {
	name = strings.TrimSpace(name)

	var b strings.Builder

	for _, r := range name {
		switch {
		case r < 0x20 || r == 0x7f:
			b.WriteRune('_')
		case strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}

	out := strings.Trim(b.String(), ".")
	if out == "" {
		return untitled
	}

	return out
}
