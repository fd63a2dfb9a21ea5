// Package webhook serves version conversion over the Kubernetes
// ConversionReview wire contract.
//
// A Service wraps an immutable convert.Pipeline for one record type and
// converts batches of self-describing JSON objects. Two surfaces exist:
// ConvertBatch is all-or-nothing for library callers, while ConvertObjects
// reports per-object outcomes for transports that want partial-failure
// reporting. Objects already at the desired version pass through
// byte-for-byte.
//
//	svc := webhook.NewService(pipeline, "example.crdtools.dev", "Person")
//	http.Handle("/convert", webhook.NewHandler(svc))
//
// The handler answers every well-formed HTTP request with a
// ConversionReview response; conversion failures and malformed reviews land
// in the review result rather than a 5xx. Prometheus metrics cover review
// counts, per-object outcomes, and batch latency.
package webhook
