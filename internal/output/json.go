package output

import "encoding/json"

// JSONFormatter renders a report as JSON. Decimal amounts are quoted strings.
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string {
	if j.Pretty {
		return "json"
	}
	return "json-compact"
}

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	if j.Pretty {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}
