package convert

import (
	"github.com/crdtools/crdtools/schema"
	"github.com/crdtools/crdtools/vererrors"
	"github.com/crdtools/crdtools/version"
)

// fieldOpKind discriminates the operations a generated step performs.
type fieldOpKind int

const (
	// opCopy moves a field unchanged.
	opCopy fieldOpKind = iota
	// opRename moves a field under a new name, optionally converting its
	// value.
	opRename
	// opConvert keeps the field name and converts its value.
	opConvert
	// opSynthesize introduces a field that does not exist in the source,
	// filling it from a default value provider or the type's zero value.
	opSynthesize
	// opDrop removes a field that does not exist in the target version.
	opDrop
)

// fieldOp is a single field transformation within a step.
type fieldOp struct {
	kind    fieldOpKind
	from    string
	to      string
	fn      schema.ConvertFunc
	def     schema.DefaultFunc
	defType schema.Type
}

// StepFunc transforms a whole object between two adjacent versions.
type StepFunc func(map[string]any) (map[string]any, error)

// Step converts objects between two adjacent versions of a record type.
// Generated steps apply per-field operations; hand-written steps supplied
// through pipeline options run a single StepFunc instead.
type Step struct {
	From version.Version
	To   version.Version

	ops    []fieldOp
	custom StepFunc
}

// NewStep builds a hand-written conversion step between two versions. The
// versions need not be adjacent when the step is used directly, but pipeline
// options only accept steps for adjacent version pairs.
func NewStep(from, to version.Version, fn StepFunc) *Step {
	return &Step{From: from, To: to, custom: fn}
}

// Apply converts one object. The input map is never mutated; the step
// builds a fresh map for the target version. Source fields without a
// matching operation are carried over unchanged, so objects holding fields
// outside the declared schema survive conversion.
func (s *Step) Apply(obj map[string]any) (map[string]any, error) {
	if s.custom != nil {
		out, err := s.custom(obj)
		if err != nil {
			return nil, &vererrors.ConversionError{
				ObjectIndex: -1,
				StepFrom:    s.From.String(),
				StepTo:      s.To.String(),
				Message:     "conversion step failed",
				Cause:       err,
			}
		}
		return out, nil
	}

	out := make(map[string]any, len(obj))
	consumed := make(map[string]bool, len(s.ops))

	for _, op := range s.ops {
		switch op.kind {
		case opCopy:
			if v, ok := obj[op.from]; ok {
				out[op.to] = v
			}
			consumed[op.from] = true
		case opRename, opConvert:
			v, ok := obj[op.from]
			consumed[op.from] = true
			if !ok {
				continue
			}
			if op.fn != nil {
				converted, err := op.fn(v)
				if err != nil {
					return nil, &vererrors.ConversionError{
						ObjectIndex: -1,
						StepFrom:    s.From.String(),
						StepTo:      s.To.String(),
						Message:     "converting field " + op.from,
						Cause:       err,
					}
				}
				v = converted
			}
			out[op.to] = v
		case opSynthesize:
			if op.def != nil {
				out[op.to] = op.def()
			} else {
				out[op.to] = zeroValue(op.defType)
			}
		case opDrop:
			consumed[op.from] = true
		}
	}

	// Carry over undeclared fields.
	for k, v := range obj {
		if !consumed[k] {
			if _, exists := out[k]; !exists {
				out[k] = v
			}
		}
	}
	return out, nil
}
