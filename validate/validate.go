// Package validate checks a parsed component manifest against the full
// rule set: per-declaration field rules, cross-declaration reference
// checks, use target path overlap rules, strong-dependency cycle
// detection, and externally imposed protocol requirements.
//
// Validation is exhaustive. A single Validate call accumulates every
// independent violation into one diag.List and reports them together,
// in deterministic order.
package validate

import (
	"errors"
	"log/slog"

	"github.com/routekit-dev/routekit/depgraph"
	"github.com/routekit-dev/routekit/diag"
	"github.com/routekit-dev/routekit/manifest"
)

// Validator validates manifest documents. A Validator is immutable
// after construction and safe for concurrent use; each Validate call
// works on its own run state.
type Validator struct {
	features FeatureSet
	reqs     ProtocolRequirements
	logger   *slog.Logger
}

// Option configures a Validator.
type Option func(*Validator)

// WithFeatures enables optional manifest syntax gates for every run.
func WithFeatures(features ...Feature) Option {
	return func(v *Validator) {
		for _, f := range features {
			v.features[f] = true
		}
	}
}

// WithRequirements sets the externally imposed protocol requirements.
func WithRequirements(reqs ProtocolRequirements) Option {
	return func(v *Validator) { v.reqs = reqs }
}

// WithLogger sets the logger used for run-level debug output.
func WithLogger(l *slog.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// New creates a Validator with the given options.
func New(opts ...Option) *Validator {
	v := &Validator{
		features: make(FeatureSet),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// run is the per-call validation state shared by every checker.
type run struct {
	doc      *manifest.Document
	features FeatureSet
	reqs     ProtocolRequirements

	errs     *diag.List
	idx      *index
	graph    *depgraph.Graph
	usePaths []usePath
}

// Validate checks doc against every rule and returns nil or a
// *diag.List holding every violation found, in deterministic order.
//
// Phases run in a fixed sequence. Indexing builds the lookup tables
// the later phases query and reports name collisions. Per-declaration
// checking applies the kind-specific rules and inserts strong edges
// into the dependency graph as a side effect. Cycle checking runs only
// after every edge is inserted, and the requirement checks run last
// over the already-indexed offers and uses.
func (v *Validator) Validate(doc *manifest.Document) error {
	if doc == nil {
		errs := diag.NewList()
		errs.Add(diag.NewInternal("nil document"))
		return errs.Err()
	}

	r := &run{
		doc:      doc,
		features: v.features,
		reqs:     v.reqs,
		errs:     diag.NewList(),
		graph:    depgraph.New(),
	}

	r.buildIndex()

	r.validateCapabilities()
	r.validateUses()
	r.validateOffers()
	r.validateExposes()
	r.validateChildren()
	r.validateCollections()
	r.validateEnvironments()

	r.checkCycles()

	r.checkRequiredOffers()
	r.checkRequiredUses()

	if !r.errs.IsEmpty() {
		v.logger.Debug("manifest validation failed",
			slog.Int("errors", r.errs.Len()))
	}
	return r.errs.Err()
}

// checkCycles topologically sorts the accumulated strong-dependency
// graph and reports the full cycle set when the sort fails.
func (r *run) checkCycles() {
	_, err := r.graph.Toposort()
	if err == nil {
		return
	}
	var cycleErr *depgraph.CycleError
	if !errors.As(err, &cycleErr) {
		r.errs.Add(diag.NewInternal(err.Error()))
		return
	}
	r.errs.Add(diag.NewDependencyCycle(cycleErr.Render()))
}
