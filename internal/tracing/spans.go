package tracing

// Span names.
const (
	SpanConvert       = "tsconv.convert"
	SpanExtract       = "tsconv.extract"
	SpanHistoryRecord = "tsconv.record"
)

// Span attribute keys.
const (
	AttrSource       = "convert.source" // "clipboard" or "selection"
	AttrTextLength   = "convert.text_length"
	AttrPattern      = "timestamp.pattern"
	AttrUnit         = "timestamp.unit"
	AttrValue        = "timestamp.value"
	AttrErrorMessage = "error.message"
)
