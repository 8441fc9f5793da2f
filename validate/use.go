package validate

import (
	"strings"

	"github.com/routekit-dev/routekit/depgraph"
	"github.com/routekit-dev/routekit/diag"
	"github.com/routekit-dev/routekit/manifest"
	"github.com/routekit-dev/routekit/manifest/values"
)

// eventsAllowingFilter are the only events that may carry a filter, and
// only when sourced from the framework.
var eventsAllowingFilter = map[string]bool{
	"capability_requested": true,
	"directory_ready":      true,
}

// usePath records one path-bearing use target for overlap detection.
// Directory-like paths (directory, storage) conflict with anything they
// overlap; service-like paths (service, protocol, event stream) only
// conflict with each other on strict prefixing.
type usePath struct {
	decl          string
	path          values.Path
	directoryLike bool
}

// validateUses applies the kind-specific rules to every declaration
// under "uses", collects target paths for the overlap check, and
// inserts strong use edges into the dependency graph.
func (r *run) validateUses() {
	targetPaths := make(map[string]bool)
	targetEvents := make(map[string]bool)

	for _, use := range r.doc.Uses {
		switch u := use.(type) {
		case *manifest.UseService:
			r.recordUsePath(u.Decl(), u.TargetPath, false, targetPaths)
			if u.SourceName.IsEmpty() {
				r.errs.Add(diag.NewMissingField(u.Decl(), "source_name"))
			}
			r.checkVoidAvailability(u.Decl(), u.Source, u.Availability)
			r.checkUseSource(u.Decl(), u.Source, u.SourceName, manifest.KindService, false)

		case *manifest.UseProtocol:
			r.recordUsePath(u.Decl(), u.TargetPath, false, targetPaths)
			if u.SourceName.IsEmpty() {
				r.errs.Add(diag.NewMissingField(u.Decl(), "source_name"))
			}
			r.checkVoidAvailability(u.Decl(), u.Source, u.Availability)
			r.checkUseSource(u.Decl(), u.Source, u.SourceName, manifest.KindProtocol, true)

		case *manifest.UseDirectory:
			r.recordUsePath(u.Decl(), u.TargetPath, true, targetPaths)
			r.checkRights(u.Decl(), u.Rights)
			if u.Source.Kind() == values.RefFramework && u.SourceName.String() == "hub" &&
				!r.features.Has(FeatureHubAccess) {
				r.errs.Add(diag.NewRestrictedFeature(string(FeatureHubAccess)))
			}
			if u.SourceName.IsEmpty() {
				r.errs.Add(diag.NewMissingField(u.Decl(), "source_name"))
			}
			r.checkVoidAvailability(u.Decl(), u.Source, u.Availability)
			r.checkUseSource(u.Decl(), u.Source, u.SourceName, manifest.KindDirectory, false)

		case *manifest.UseStorage:
			r.recordUsePath(u.Decl(), u.TargetPath, true, targetPaths)
			if u.SourceName.IsEmpty() {
				r.errs.Add(diag.NewMissingField(u.Decl(), "source_name"))
			}

		case *manifest.UseEvent:
			if u.SourceName.IsEmpty() {
				r.errs.Add(diag.NewMissingField(u.Decl(), "source_name"))
			}
			if u.TargetName.IsEmpty() {
				r.errs.Add(diag.NewMissingField(u.Decl(), "target_name"))
			} else if targetEvents[u.TargetName.String()] {
				r.errs.Add(diag.NewDuplicateField(u.Decl(), "target_name", u.TargetName.String()))
			} else {
				targetEvents[u.TargetName.String()] = true
			}
			if u.Mode == "" {
				r.errs.Add(diag.NewMissingField(u.Decl(), "mode"))
			}
			if len(u.Filter) > 0 {
				if !eventsAllowingFilter[u.SourceName.String()] {
					r.errs.Add(diag.NewInvalidField(u.Decl(), "filter",
						"only \"capability_requested\" and \"directory_ready\" support a filter"))
				} else if u.Source.Kind() != values.RefFramework {
					r.errs.Add(diag.NewInvalidField(u.Decl(), "filter",
						"filtered events must come from \"framework\""))
				}
			}
			r.checkVoidAvailability(u.Decl(), u.Source, u.Availability)
			r.checkUseSource(u.Decl(), u.Source, u.SourceName, manifest.KindEvent, false)

		case *manifest.UseEventStream:
			r.recordUsePath(u.Decl(), u.TargetPath, false, targetPaths)
			r.validateSubscriptions(u)
		}

		if !use.UseDependencyType().IsWeak() {
			r.addStrongDep(useSourceName(use), use.UseSource(), depgraph.Self())
		}
	}

	r.checkPathOverlaps()
}

func (r *run) validateSubscriptions(u *manifest.UseEventStream) {
	if len(u.Subscriptions) == 0 {
		r.errs.Add(diag.NewMissingField(u.Decl(), "subscriptions"))
		return
	}
	seen := make(map[string]bool)
	for _, sub := range u.Subscriptions {
		if sub.EventName.IsEmpty() {
			r.errs.Add(diag.NewEmptyField(u.Decl(), "subscriptions"))
			continue
		}
		name := sub.EventName.String()
		if seen[name] {
			r.errs.Add(diag.NewDuplicateField(u.Decl(), "subscriptions", name))
			continue
		}
		seen[name] = true
		if !r.idx.usedEvents[name] {
			r.errs.Add(diag.NewEventStreamEventNotFound(u.Decl(), "subscriptions", name))
		}
	}
}

// recordUsePath checks a use target path for presence, the reserved
// /pkg subtree, and exact duplicates, then queues it for the pairwise
// overlap check.
func (r *run) recordUsePath(decl string, path values.Path, directoryLike bool, targetPaths map[string]bool) {
	if path.IsEmpty() {
		r.errs.Add(diag.NewMissingField(decl, "path"))
		return
	}
	p := path.String()
	if p == "/pkg" || strings.HasPrefix(p, "/pkg/") {
		r.errs.Add(diag.NewInvalidField(decl, "path", "/pkg is a reserved path"))
	}
	if targetPaths[p] {
		r.errs.Add(diag.NewDuplicateField(decl, "path", p))
	}
	targetPaths[p] = true
	r.usePaths = append(r.usePaths, usePath{decl: decl, path: path, directoryLike: directoryLike})
}

// checkPathOverlaps applies the asymmetric overlap rules over all
// recorded use target paths, in declaration order.
func (r *run) checkPathOverlaps() {
	for i := 0; i < len(r.usePaths); i++ {
		for j := i + 1; j < len(r.usePaths); j++ {
			a, b := r.usePaths[i], r.usePaths[j]
			if !pathsConflict(a, b) {
				continue
			}
			r.errs.Add(diag.NewInvalidPathOverlap(a.decl, a.path.String(), b.decl, b.path.String()))
		}
	}
}

func pathsConflict(a, b usePath) bool {
	prefixed := a.path.IsPrefixOf(b.path) || b.path.IsPrefixOf(a.path)
	if a.directoryLike || b.directoryLike {
		// A directory subtree swallows anything mounted inside it.
		return prefixed || a.path.Equals(b.path)
	}
	// Service-like pairs tolerate equal paths (reported as duplicates,
	// not overlap) but not nesting.
	return prefixed
}

// checkUseSource validates the from clause of a use declaration. It
// runs after the other checks of the same declaration because it
// depends on the capability-kind classification they establish.
func (r *run) checkUseSource(decl string, source values.Reference, sourceName values.Name, kind manifest.CapabilityKind, allowDebug bool) {
	switch source.Kind() {
	case values.RefInvalid:
		r.errs.Add(diag.NewMissingField(decl, "from"))
	case values.RefParent, values.RefFramework, values.RefVoid:
	case values.RefDebug:
		if !allowDebug {
			r.errs.Add(diag.NewInvalidField(decl, "from", "\"debug\" is only valid for protocols"))
		}
	case values.RefSelf:
		if !sourceName.IsEmpty() && r.idx.capabilities[sourceName.String()] != kind {
			r.errs.Add(diag.NewInvalidCapability(decl, "from", sourceName.String()))
		}
	case values.RefNamed, values.RefChild:
		if !r.idx.children[source.Name().String()] {
			r.errs.Add(diag.NewInvalidChild(decl, "from", source.Name().String()))
		}
	default:
		r.errs.Add(diag.NewInvalidField(decl, "from", source.String()))
	}
}

// checkVoidAvailability enforces that a void-sourced declaration does
// not promise a capability it intentionally lacks. Unset availability
// resolves to optional for void sources.
func (r *run) checkVoidAvailability(decl string, source values.Reference, availability values.Availability) {
	if source.Kind() != values.RefVoid {
		return
	}
	switch availability {
	case "", values.AvailabilityOptional, values.AvailabilityTransitional:
	default:
		r.errs.Add(diag.NewInvalidField(decl, "availability",
			"must be \"optional\" or \"transitional\" when source is \"void\""))
	}
}

func useSourceName(use manifest.Use) values.Name {
	switch u := use.(type) {
	case *manifest.UseService:
		return u.SourceName
	case *manifest.UseProtocol:
		return u.SourceName
	case *manifest.UseDirectory:
		return u.SourceName
	case *manifest.UseStorage:
		return u.SourceName
	case *manifest.UseEvent:
		return u.SourceName
	}
	return values.Name{}
}
