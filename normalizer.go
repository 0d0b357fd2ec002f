// normalizer.go
// -------------
// The API reports timestamps as strings. The normalizer walks a decoded JSON
// tree and replaces the values of known date-bearing fields with time.Time,
// at any nesting depth, so callers compare and sort without reparsing. The
// walk copies structure as it goes; the input tree is never mutated.
package githubbridge

import (
	"go.uber.org/zap"

	"github.com/opengovern/github-bridge/internal"
)

// dateFields is the set of field names whose string values are parsed as
// timestamps. Names outside this set pass through untouched no matter how
// date-like their values look.
var dateFields = map[string]bool{
	"closed_at":      true,
	"committed_at":   true,
	"completed_at":   true,
	"created_at":     true,
	"date":           true,
	"due_on":         true,
	"expires_at":     true,
	"last_edited_at": true,
	"last_read_at":   true,
	"merged_at":      true,
	"published_at":   true,
	"pushed_at":      true,
	"starred_at":     true,
	"started_at":     true,
	"submitted_at":   true,
	"timestamp":      true,
	"updated_at":     true,
}

// ObjectNormalizer rewrites date fields in decoded payloads. The zero value
// is not usable; construct with newObjectNormalizer.
type ObjectNormalizer struct {
	logger *zap.Logger
}

func newObjectNormalizer(logger *zap.Logger) *ObjectNormalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ObjectNormalizer{logger: logger}
}

// Normalize returns a copy of value with known date fields parsed. Objects
// and arrays are rebuilt; scalars are returned as-is. A date field whose
// value does not parse keeps its original string, logged as a soft failure.
func (n *ObjectNormalizer) Normalize(value interface{}) interface{} {
	switch typed := value.(type) {
	case map[string]interface{}:
		normalized := make(map[string]interface{}, len(typed))
		for key, fieldValue := range typed {
			if text, isString := fieldValue.(string); isString && dateFields[key] {
				normalized[key] = n.parseDateField(key, text)
				continue
			}
			normalized[key] = n.Normalize(fieldValue)
		}
		return normalized
	case []interface{}:
		normalized := make([]interface{}, len(typed))
		for i, element := range typed {
			normalized[i] = n.Normalize(element)
		}
		return normalized
	default:
		return value
	}
}

func (n *ObjectNormalizer) parseDateField(key, text string) interface{} {
	parsed, ok := internal.ParseTimestamp(text)
	if !ok {
		n.logger.Debug("date field did not parse, keeping raw string",
			zap.String("field", key),
			zap.String("value", text))
		return text
	}
	return parsed
}
