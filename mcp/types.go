package mcp

// QueryInput carries the SQL text passed through to the engine verbatim.
type QueryInput struct {
	SQL string `json:"sql"`
}

// QueryOutput carries the newline-joined row text, or the rendered error
// message when IsError is set.
type QueryOutput struct {
	Result  string `json:"result"`
	IsError bool   `json:"isError,omitempty"`
}
