package testutil

// Sample clipboard and selection texts. Extraction finds 1700000000 (or
// 1700000000123) in each, except NoTimestamp and FarFutureValue.
var (
	JSONDocument   = `{"id": "c-42", "_ts": 1700000000, "name": "order"}`
	PythonDict     = `{'id': 'c-42', '_ts': 1700000000}`
	QueryString    = `https://example.com/items?id=42&_ts=1700000000`
	LogLine        = `2023-11-15 level=info timestamp=1700000000123 msg="done"`
	BareMillis     = `event at 1700000000123 committed`
	NoTimestamp    = `nothing numeric to see here`
	FarFutureValue = `expires 9999999999`
)
