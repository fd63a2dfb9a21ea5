package convert

import (
	"fmt"

	"github.com/crdtools/crdtools/schema"
	"github.com/crdtools/crdtools/vererrors"
	"github.com/crdtools/crdtools/version"
)

// Option configures pipeline construction.
type Option func(cfg *pipelineConfig) error

type pipelineConfig struct {
	downgradeSteps      map[Hop]*Step
	upgradeSteps        map[Hop]*Step
	unsupportedUpgrades map[version.Version]bool
	eagerDowngradeCheck bool
}

// WithDowngradeStep registers a hand-written step for one adjacent downgrade
// hop. Downgrade steps are never generated automatically; a downgrade path
// is only resolvable across hops registered this way.
func WithDowngradeStep(step *Step) Option {
	return func(cfg *pipelineConfig) error {
		if step == nil {
			return fmt.Errorf("downgrade step must not be nil")
		}
		cfg.downgradeSteps[Hop{From: step.From, To: step.To}] = step
		return nil
	}
}

// WithUpgradeStep registers a hand-written step replacing the generated
// converter for one adjacent upgrade hop. Required for hops declared
// unsupported through WithUnsupportedUpgrade.
func WithUpgradeStep(step *Step) Option {
	return func(cfg *pipelineConfig) error {
		if step == nil {
			return fmt.Errorf("upgrade step must not be nil")
		}
		cfg.upgradeSteps[Hop{From: step.From, To: step.To}] = step
		return nil
	}
}

// WithUnsupportedUpgrade suppresses converter generation for the upgrade
// hop arriving at the given version. The pipeline still builds, but
// converting across that hop requires a step registered through
// WithUpgradeStep.
func WithUnsupportedUpgrade(to version.Version) Option {
	return func(cfg *pipelineConfig) error {
		cfg.unsupportedUpgrades[to] = true
		return nil
	}
}

// WithEagerDowngradeCheck makes NewPipeline fail unless every adjacent
// downgrade hop has a registered step. Without it, a missing downgrade step
// surfaces only when a downgrade path is resolved.
func WithEagerDowngradeCheck() Option {
	return func(cfg *pipelineConfig) error {
		cfg.eagerDowngradeCheck = true
		return nil
	}
}

// Pipeline holds the validated items, their changesets, and the generated
// conversion steps for one record type. It is immutable after construction
// and safe for concurrent use.
type Pipeline struct {
	registry   *version.Registry
	items      []schema.Item
	changesets []*schema.Changeset
	shapes     map[version.Version]*schema.VersionShape
	upgrades   map[Hop]*Step
	downgrades map[Hop]*Step
}

// NewPipeline validates the items against the registry, projects their
// changesets, and generates one upgrade step per adjacent version pair.
// Validation errors across all items are accumulated into a single error.
func NewPipeline(reg *version.Registry, items []schema.Item, opts ...Option) (*Pipeline, error) {
	cfg := pipelineConfig{
		downgradeSteps:      make(map[Hop]*Step),
		upgradeSteps:        make(map[Hop]*Step),
		unsupportedUpgrades: make(map[version.Version]bool),
	}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := schema.ValidateItems(items, reg).Err(); err != nil {
		return nil, err
	}

	changesets, err := schema.ProjectAll(items, reg)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		registry:   reg,
		items:      items,
		changesets: changesets,
		shapes:     make(map[version.Version]*schema.VersionShape, reg.Len()),
		upgrades:   make(map[Hop]*Step, reg.Len()-1),
		downgrades: cfg.downgradeSteps,
	}

	for _, shape := range schema.MaterializeAll(changesets, reg) {
		s := shape
		p.shapes[s.Version] = &s
	}

	for i := 0; i < reg.Len()-1; i++ {
		hop := Hop{From: reg.At(i).Version, To: reg.At(i + 1).Version}
		if custom, ok := cfg.upgradeSteps[hop]; ok {
			p.upgrades[hop] = custom
			continue
		}
		if cfg.unsupportedUpgrades[hop.To] {
			continue
		}
		step, err := GenerateUpgrade(changesets, hop.From, hop.To)
		if err != nil {
			return nil, err
		}
		p.upgrades[hop] = step
	}

	if cfg.eagerDowngradeCheck {
		for i := reg.Len() - 1; i > 0; i-- {
			hop := Hop{From: reg.At(i).Version, To: reg.At(i - 1).Version}
			if _, ok := p.downgrades[hop]; !ok {
				return nil, &vererrors.ConversionError{
					ObjectIndex: -1,
					StepFrom:    hop.From.String(),
					StepTo:      hop.To.String(),
					Message:     "no downgrade step registered for hop",
					Cause:       vererrors.ErrNoDowngradePath,
				}
			}
		}
	}
	return p, nil
}

// Registry returns the version registry the pipeline was built against.
func (p *Pipeline) Registry() *version.Registry { return p.registry }

// Changesets returns the projected changesets, one per item.
func (p *Pipeline) Changesets() []*schema.Changeset { return p.changesets }

// Shape returns the materialized shape for a declared version.
func (p *Pipeline) Shape(v version.Version) (*schema.VersionShape, bool) {
	s, ok := p.shapes[v]
	return s, ok
}

// Shapes returns the materialized shapes in registry order.
func (p *Pipeline) Shapes() []*schema.VersionShape {
	out := make([]*schema.VersionShape, 0, p.registry.Len())
	for i := 0; i < p.registry.Len(); i++ {
		out = append(out, p.shapes[p.registry.At(i).Version])
	}
	return out
}

// Convert moves one object from its declared version to the desired
// version, folding the resolved path one adjacent step at a time. Objects
// already at the desired version are returned unchanged.
func (p *Pipeline) Convert(obj map[string]any, from, to version.Version) (map[string]any, error) {
	path, err := ResolvePath(p.registry, from, to)
	if err != nil {
		return nil, err
	}
	if path.Direction == DirectionNone {
		return obj, nil
	}

	steps := p.upgrades
	missing := vererrors.ErrNoUpgradePath
	if path.Direction == DirectionDowngrade {
		steps = p.downgrades
		missing = vererrors.ErrNoDowngradePath
	}

	current := obj
	for _, hop := range path.Hops {
		step, ok := steps[hop]
		if !ok {
			return nil, &vererrors.ConversionError{
				ObjectIndex:    -1,
				APIVersion:     from.String(),
				DesiredVersion: to.String(),
				StepFrom:       hop.From.String(),
				StepTo:         hop.To.String(),
				Message:        "no conversion step for hop",
				Cause:          missing,
			}
		}
		current, err = step.Apply(current)
		if err != nil {
			return nil, err
		}
	}
	return current, nil
}
