package types

// SuccessEnvelope wraps generic success payloads.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// ItemsEnvelope is the list envelope the filter/exclusivity clients consume.
type ItemsEnvelope struct {
	Items any `json:"items"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// FailureEnvelope is the flat failure shape the export endpoint returns
// when a request is well-formed but produces nothing to export.
type FailureEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// BulkSummary totals a bulk mutation run.
type BulkSummary struct {
	Total   int `json:"total"`
	Success int `json:"success"`
	Failed  int `json:"failed"`
}

// BulkRowFailure describes a single rejected row in a bulk mutation.
type BulkRowFailure struct {
	Row      int    `json:"row"`
	ItemCode string `json:"itemCode"`
	Reason   string `json:"reason"`
	Data     any    `json:"data,omitempty"`
}

// BulkResults groups per-row outcomes. Only failures are itemized.
type BulkResults struct {
	Failed []BulkRowFailure `json:"failed"`
}

// BulkEnvelope is the response shape for bulk mutation endpoints.
type BulkEnvelope struct {
	Success bool        `json:"success"`
	Summary BulkSummary `json:"summary"`
	Results BulkResults `json:"results"`
}
