package webhook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Handler serves the conversion webhook over HTTP. Requests carry a
// ConversionReview with the request half populated; responses echo the
// request UID and carry either the converted objects or a failure result.
//
// Wire-level problems (malformed JSON, a missing request) produce a failure
// response, not a 5xx: the caller sent a well-formed HTTP request, so the
// failure belongs in the review result where the API server reports it
// against the originating object.
type Handler struct {
	service *Service
}

// NewHandler wraps a Service as an http.Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var review ConversionReview
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		h.service.logger.Warn("malformed conversion review", "error", err)
		reviewsTotal.WithLabelValues("malformed").Inc()
		h.writeResponse(w, "", failureResult(fmt.Sprintf("decoding conversion review: %v", err)))
		return
	}
	if review.Request == nil {
		reviewsTotal.WithLabelValues("malformed").Inc()
		h.writeResponse(w, "", failureResult("conversion review has no request"))
		return
	}

	req := review.Request
	response := h.review(req)
	if response.Result.Status == StatusSuccess {
		reviewsTotal.WithLabelValues("success").Inc()
	} else {
		reviewsTotal.WithLabelValues("failure").Inc()
	}
	h.writeResponse(w, req.UID, response.Result, response.ConvertedObjects...)
}

// review converts one request's batch. Any failing object fails the whole
// review with a message attributing the object and step; the per-object
// outcomes still feed the metrics individually.
func (h *Handler) review(req *ConversionRequest) ConversionResponse {
	desired, err := h.service.ParseDesired(req.DesiredAPIVersion)
	if err != nil {
		objectsTotal.WithLabelValues("failed").Add(float64(len(req.Objects)))
		return ConversionResponse{
			UID:    req.UID,
			Result: failureResult(fmt.Sprintf("desired api version: %v", err)),
		}
	}

	start := time.Now()
	outcomes := h.service.ConvertObjects(req.Objects, desired)
	conversionSeconds.Observe(time.Since(start).Seconds())

	converted := make([]json.RawMessage, 0, len(outcomes))
	var failure error
	for i, outcome := range outcomes {
		switch {
		case outcome.Err != nil:
			objectsTotal.WithLabelValues("failed").Inc()
			if failure == nil {
				failure = outcome.Err
			}
			h.service.logger.Warn("object conversion failed",
				"object", i,
				"desired", req.DesiredAPIVersion,
				"error", outcome.Err)
		case bytes.Equal(outcome.Object, req.Objects[i]):
			objectsTotal.WithLabelValues("identity").Inc()
			converted = append(converted, outcome.Object)
		default:
			objectsTotal.WithLabelValues("converted").Inc()
			converted = append(converted, outcome.Object)
		}
	}

	if failure != nil {
		return ConversionResponse{
			UID:    req.UID,
			Result: failureResult(failure.Error()),
		}
	}

	h.service.logger.Debug("conversion review handled",
		"uid", req.UID,
		"desired", req.DesiredAPIVersion,
		"objects", len(req.Objects))
	return ConversionResponse{
		UID:              req.UID,
		ConvertedObjects: converted,
		Result:           successResult(),
	}
}

func (h *Handler) writeResponse(w http.ResponseWriter, uid string, result ReviewResult, objects ...json.RawMessage) {
	review := ConversionReview{
		APIVersion: ReviewAPIVersion,
		Kind:       ReviewKind,
		Response: &ConversionResponse{
			UID:              uid,
			ConvertedObjects: objects,
			Result:           result,
		},
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(&review); err != nil {
		h.service.logger.Error("writing conversion response", "error", err)
	}
}
