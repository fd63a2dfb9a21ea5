package webhook

import "encoding/json"

// ReviewAPIVersion is the wire apiVersion of a ConversionReview document.
const ReviewAPIVersion = "apiextensions.k8s.io/v1"

// ReviewKind is the wire kind of a ConversionReview document.
const ReviewKind = "ConversionReview"

// StatusSuccess and StatusFailure are the result statuses of a review
// response.
const (
	StatusSuccess = "Success"
	StatusFailure = "Failed"
)

// ConversionReview is the request/response envelope of the conversion
// webhook wire contract. A request carries Request; the response to it
// carries Response with the same UID.
type ConversionReview struct {
	APIVersion string             `json:"apiVersion"`
	Kind       string             `json:"kind"`
	Request    *ConversionRequest `json:"request,omitempty"`
	Response   *ConversionResponse `json:"response,omitempty"`
}

// ConversionRequest asks for a batch of objects to be converted to the
// desired API version. Each object self-describes its own apiVersion and
// kind.
type ConversionRequest struct {
	UID               string            `json:"uid"`
	DesiredAPIVersion string            `json:"desiredAPIVersion"`
	Objects           []json.RawMessage `json:"objects"`
}

// ConversionResponse carries the converted objects, in request order, or a
// failure result attributing which object and step failed.
type ConversionResponse struct {
	UID              string            `json:"uid"`
	ConvertedObjects []json.RawMessage `json:"convertedObjects,omitempty"`
	Result           ReviewResult      `json:"result"`
}

// ReviewResult is the outcome of one review.
type ReviewResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func successResult() ReviewResult {
	return ReviewResult{Status: StatusSuccess}
}

func failureResult(message string) ReviewResult {
	return ReviewResult{Status: StatusFailure, Message: message}
}
