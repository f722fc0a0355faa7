package logger

// Field keys shared by the feed, the API source and bootstrap.
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldOperation  = "operation"
	FieldStatus     = "status"
	FieldError      = "error"
	FieldDuration   = "duration_ms"
	FieldOffset     = "offset"
	FieldLimit      = "limit"
	FieldCount      = "count"
	FieldTotal      = "total_count"
	FieldHasMore    = "has_more"
	FieldGeneration = "generation"
)

// Fields pairs up alternating keys and values. Non-string keys and a
// trailing key without a value are skipped.
//
//	log.Debug("load more", logger.Fields(logger.FieldOffset, 10, logger.FieldLimit, 10))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			continue
		}
		m[key] = kvs[i+1]
	}
	return m
}

func ErrorFields(op string, err error) map[string]interface{} {
	return Fields(FieldOperation, op, FieldError, err.Error())
}

// MergeWithError sets the error field on fields, allocating when nil.
func MergeWithError(fields map[string]interface{}, err error) map[string]interface{} {
	if fields == nil {
		fields = map[string]interface{}{}
	}
	fields[FieldError] = err.Error()
	return fields
}
