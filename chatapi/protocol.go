package chatapi

// Request is the body posted to the chat endpoint
type Request struct {
	Text string `json:"text"`
}

// Response is the body returned by the chat endpoint
type Response struct {
	Response string `json:"response"`
}

// responseBody distinguishes a missing response field from an empty one
type responseBody struct {
	Response *string `json:"response"`
}
