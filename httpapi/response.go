package httpapi

//HealthResponse reports the server is up
type HealthResponse struct {
	Status string `json:"status"`
}
