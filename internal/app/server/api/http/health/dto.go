package health

// Input carries nothing; liveness takes no parameters.
type Input struct{}

// Output wraps the liveness response body.
type Output struct {
	Body Response
}

// Response reports whether the credential sharing API is serving.
type Response struct {
	Status string `json:"status" example:"OK" doc:"Liveness of the credential sharing API"`
}
