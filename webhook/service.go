package webhook

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/crdtools/crdtools/convert"
	"github.com/crdtools/crdtools/vererrors"
	"github.com/crdtools/crdtools/version"
)

// Service converts batches of self-describing objects between declared
// versions of one record type. It is built once around an immutable
// pipeline and is safe for concurrent use.
type Service struct {
	pipeline *convert.Pipeline
	group    string
	kind     string
	logger   *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(s *Service)

// WithLogger replaces the service's logger. The default is slog.Default.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// NewService creates a conversion service for one record type. Objects
// handled by the service must declare apiVersion "<group>/<version>" and
// the given kind.
func NewService(pipeline *convert.Pipeline, group, kind string, opts ...ServiceOption) *Service {
	s := &Service{
		pipeline: pipeline,
		group:    group,
		kind:     kind,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ObjectOutcome is the per-object result of ConvertObjects: either the
// converted payload or the error that failed it.
type ObjectOutcome struct {
	Object json.RawMessage
	Err    error
}

// ConvertObjects converts each object to the desired version independently,
// returning one outcome per input object in order. A failing object does
// not affect the others; partial-failure reporting belongs to the caller.
// Objects already at the desired version are returned byte-for-byte.
func (s *Service) ConvertObjects(objects []json.RawMessage, desired version.Version) []ObjectOutcome {
	outcomes := make([]ObjectOutcome, len(objects))
	for i, raw := range objects {
		converted, err := s.convertOne(raw, desired, i)
		if err != nil {
			outcomes[i] = ObjectOutcome{Err: err}
			continue
		}
		outcomes[i] = ObjectOutcome{Object: converted}
	}
	return outcomes
}

// ConvertBatch converts every object to the desired version, returning
// either the full converted batch or the first error encountered. No
// partial results are exposed; callers wanting per-object outcomes use
// ConvertObjects.
func (s *Service) ConvertBatch(objects []json.RawMessage, desired version.Version) ([]json.RawMessage, error) {
	converted := make([]json.RawMessage, len(objects))
	for i, raw := range objects {
		out, err := s.convertOne(raw, desired, i)
		if err != nil {
			return nil, err
		}
		converted[i] = out
	}
	return converted, nil
}

func (s *Service) convertOne(raw json.RawMessage, desired version.Version, index int) (json.RawMessage, error) {
	var envelope struct {
		APIVersion string `json:"apiVersion"`
		Kind       string `json:"kind"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, &vererrors.ConversionError{
			ObjectIndex: index,
			Message:     "decoding object envelope",
			Cause:       fmt.Errorf("%w: %w", vererrors.ErrDeserialize, err),
		}
	}
	if envelope.Kind != s.kind {
		return nil, &vererrors.ConversionError{
			APIVersion:  envelope.APIVersion,
			ObjectIndex: index,
			Message:     fmt.Sprintf("object kind %q, expected %q", envelope.Kind, s.kind),
			Cause:       vererrors.ErrWrongKind,
		}
	}

	from, err := s.parseAPIVersion(envelope.APIVersion, index)
	if err != nil {
		return nil, err
	}
	if from.Equal(desired) {
		return raw, nil
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, &vererrors.ConversionError{
			APIVersion:  envelope.APIVersion,
			ObjectIndex: index,
			Message:     "decoding object payload",
			Cause:       fmt.Errorf("%w: %w", vererrors.ErrDeserialize, err),
		}
	}

	converted, err := s.pipeline.Convert(obj, from, desired)
	if err != nil {
		var convErr *vererrors.ConversionError
		if errors.As(err, &convErr) {
			convErr.ObjectIndex = index
			return nil, convErr
		}
		return nil, err
	}
	converted["apiVersion"] = s.APIVersion(desired)
	converted["kind"] = s.kind

	data, err := json.Marshal(converted)
	if err != nil {
		return nil, &vererrors.ConversionError{
			APIVersion:     envelope.APIVersion,
			DesiredVersion: desired.String(),
			ObjectIndex:    index,
			Message:        "encoding converted object",
			Cause:          fmt.Errorf("%w: %w", vererrors.ErrSerialize, err),
		}
	}
	return data, nil
}

// APIVersion renders the wire apiVersion for one declared version.
func (s *Service) APIVersion(v version.Version) string {
	if s.group == "" {
		return v.String()
	}
	return s.group + "/" + v.String()
}

// ParseDesired parses a desiredAPIVersion into a declared version.
func (s *Service) ParseDesired(apiVersion string) (version.Version, error) {
	return s.parseAPIVersion(apiVersion, -1)
}

func (s *Service) parseAPIVersion(apiVersion string, index int) (version.Version, error) {
	ver := apiVersion
	if group, rest, ok := strings.Cut(apiVersion, "/"); ok {
		if group != s.group {
			return version.Version{}, &vererrors.ConversionError{
				APIVersion:  apiVersion,
				ObjectIndex: index,
				Message:     fmt.Sprintf("group %q, expected %q", group, s.group),
				Cause:       vererrors.ErrUnknownAPIVersion,
			}
		}
		ver = rest
	} else if s.group != "" {
		return version.Version{}, &vererrors.ConversionError{
			APIVersion:  apiVersion,
			ObjectIndex: index,
			Message:     "apiVersion is missing the group",
			Cause:       vererrors.ErrUnknownAPIVersion,
		}
	}

	parsed, err := version.Parse(ver)
	if err != nil {
		return version.Version{}, &vererrors.ConversionError{
			APIVersion:  apiVersion,
			ObjectIndex: index,
			Message:     "parsing version",
			Cause:       fmt.Errorf("%w: %w", vererrors.ErrUnknownAPIVersion, err),
		}
	}
	if !s.pipeline.Registry().Contains(parsed) {
		return version.Version{}, &vererrors.ConversionError{
			APIVersion:  apiVersion,
			ObjectIndex: index,
			Message:     "version is not declared in the registry",
			Cause:       vererrors.ErrUnknownAPIVersion,
		}
	}
	return parsed, nil
}
