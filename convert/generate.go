package convert

import (
	"github.com/crdtools/crdtools/schema"
	"github.com/crdtools/crdtools/vererrors"
	"github.com/crdtools/crdtools/version"
)

// GenerateUpgrade builds the conversion step from one registry version to
// the next. The step is derived entirely from the items' changesets: for
// each item, its status at the target version decides whether the field is
// synthesized, copied, renamed, converted, or dropped.
//
// A type change without an upgrade hook and without a built-in conversion
// is a generation error carrying ErrUnconvertibleTypeChange.
func GenerateUpgrade(changesets []*schema.Changeset, from, to version.Version) (*Step, error) {
	step := &Step{From: from, To: to}

	for _, cs := range changesets {
		src, _ := cs.At(from)
		dst, _ := cs.At(to)

		switch dst.Kind {
		case schema.StatusAbsent:
			if src.Kind != schema.StatusAbsent {
				step.ops = append(step.ops, fieldOp{kind: opDrop, from: src.Name})
			}

		case schema.StatusAddition:
			step.ops = append(step.ops, fieldOp{
				kind:    opSynthesize,
				to:      dst.Name,
				def:     dst.Default,
				defType: dst.Type,
			})

		case schema.StatusChange:
			op := fieldOp{from: dst.FromName, to: dst.Name}
			if dst.FromType == dst.Type {
				if dst.FromName == dst.Name {
					op.kind = opCopy
				} else {
					op.kind = opRename
				}
				step.ops = append(step.ops, op)
				continue
			}
			fn := dst.UpgradeFunc
			if fn == nil {
				builtin, ok := builtinConversion(dst.FromType, dst.Type)
				if !ok {
					return nil, &vererrors.GenerateError{
						Item:        cs.Item().Name,
						FromVersion: from.String(),
						ToVersion:   to.String(),
						FromType:    string(dst.FromType),
						ToType:      string(dst.Type),
						Message:     "no conversion for type change",
						Cause:       vererrors.ErrUnconvertibleTypeChange,
					}
				}
				fn = builtin
			}
			if dst.FromName == dst.Name {
				op.kind = opConvert
			} else {
				op.kind = opRename
			}
			op.fn = fn
			step.ops = append(step.ops, op)

		case schema.StatusDeprecation:
			step.ops = append(step.ops, fieldOp{
				kind: opRename,
				from: dst.PreviousName,
				to:   dst.Name,
			})

		case schema.StatusNoChange:
			step.ops = append(step.ops, fieldOp{kind: opCopy, from: src.Name, to: dst.Name})
		}
	}
	return step, nil
}

// GenerateDowngrade builds the inverse step from a registry version to its
// predecessor. Unlike upgrades, downgrade steps are never assembled into a
// pipeline automatically; this helper exists for callers who declared
// downgrade hooks on their changed items and want to register the result
// through WithDowngradeStep.
//
// Type changes require an explicit downgrade hook: narrowing a value back
// to a smaller type has no safe built-in conversion.
func GenerateDowngrade(changesets []*schema.Changeset, from, to version.Version) (*Step, error) {
	step := &Step{From: from, To: to}

	for _, cs := range changesets {
		src, _ := cs.At(from)
		dst, _ := cs.At(to)

		switch src.Kind {
		case schema.StatusAddition:
			// The item does not exist in the earlier version.
			step.ops = append(step.ops, fieldOp{kind: opDrop, from: src.Name})

		case schema.StatusChange:
			op := fieldOp{from: src.Name, to: src.FromName}
			if src.FromType == src.Type {
				if src.FromName == src.Name {
					op.kind = opCopy
				} else {
					op.kind = opRename
				}
				step.ops = append(step.ops, op)
				continue
			}
			if src.DowngradeFunc == nil {
				return nil, &vererrors.GenerateError{
					Item:        cs.Item().Name,
					FromVersion: from.String(),
					ToVersion:   to.String(),
					FromType:    string(src.Type),
					ToType:      string(src.FromType),
					Message:     "no downgrade hook for type change",
					Cause:       vererrors.ErrUnconvertibleTypeChange,
				}
			}
			if src.FromName == src.Name {
				op.kind = opConvert
			} else {
				op.kind = opRename
			}
			op.fn = src.DowngradeFunc
			step.ops = append(step.ops, op)

		case schema.StatusDeprecation:
			step.ops = append(step.ops, fieldOp{
				kind: opRename,
				from: src.Name,
				to:   src.PreviousName,
			})

		case schema.StatusNoChange:
			if dst.Kind == schema.StatusAbsent {
				step.ops = append(step.ops, fieldOp{kind: opDrop, from: src.Name})
				continue
			}
			step.ops = append(step.ops, fieldOp{kind: opCopy, from: src.Name, to: dst.Name})
		}
	}
	return step, nil
}
