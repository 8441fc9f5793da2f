package validate

import (
	"github.com/routekit-dev/routekit/depgraph"
	"github.com/routekit-dev/routekit/diag"
	"github.com/routekit-dev/routekit/manifest"
	"github.com/routekit-dev/routekit/manifest/values"
)

// validateOffers applies the kind-specific rules to every declaration
// under "offers" and inserts strong offer edges into the dependency
// graph. The offer-to-all pre-computation happens during indexing.
func (r *run) validateOffers() {
	granted := make(grantSet)

	for _, offer := range r.doc.Offers {
		decl := offer.Decl()

		if offer.OfferSourceName().IsEmpty() {
			r.errs.Add(diag.NewMissingField(decl, "source_name"))
		}
		if _, isStorage := offer.(*manifest.OfferStorage); !isStorage && offer.OfferTargetName().IsEmpty() {
			r.errs.Add(diag.NewMissingField(decl, "target_name"))
		}

		r.checkOfferTarget(offer, granted)
		r.checkOfferKindRules(offer)
		r.checkOfferSelfTarget(offer)

		// The from clause runs last.
		r.checkOfferSource(offer)

		// A declared self-target is already rejected (or weak), so its
		// edge would only duplicate that finding as a cycle.
		if !offer.OfferDependencyType().IsWeak() && !isSelfTargetOffer(offer) {
			if target, ok := depgraph.ProjectReference(offer.OfferTarget()); ok {
				r.addStrongDep(offer.OfferSourceName(), offer.OfferSource(), target)
			}
		}
	}
}

// checkOfferTarget validates the to clause: presence, the "all"
// sentinel rules, reference existence, and duplicate grants.
func (r *run) checkOfferTarget(offer manifest.Offer, granted grantSet) {
	decl := offer.Decl()
	target := offer.OfferTarget()

	switch target.Kind() {
	case values.RefInvalid:
		r.errs.Add(diag.NewMissingField(decl, "target"))
		return
	case values.RefAll:
		if offer.Kind() != manifest.KindProtocol {
			r.errs.Add(diag.NewInvalidField(decl, "target", "\"all\" is only supported for protocol offers"))
		}
		return
	case values.RefNamed, values.RefChild:
		name := target.Name().String()
		if !r.idx.children[name] && !r.idx.collections[name] {
			r.errs.Add(diag.NewInvalidChild(decl, "target", name))
		}
	default:
		r.errs.Add(diag.NewInvalidField(decl, "target", target.String()))
		return
	}

	targetName := offer.OfferTargetName()
	if targetName.IsEmpty() {
		return
	}

	// A protocol granted by name must not also reach the same target
	// through a `to: all` offer of the same name.
	if offer.Kind() == manifest.KindProtocol && r.idx.offeredToAll[targetName.String()] {
		r.errs.Add(diag.NewDuplicateField(decl, "target_name", targetName.String()))
		return
	}

	if offer.Kind() == manifest.KindService {
		return
	}
	if !granted.insert(grantID(target, targetName)) {
		r.errs.Add(diag.NewDuplicateField(decl, "target_name", targetName.String()))
	}
}

// checkOfferKindRules applies the per-kind field rules.
func (r *run) checkOfferKindRules(offer manifest.Offer) {
	switch o := offer.(type) {
	case *manifest.OfferService:
		r.checkVoidAvailability(o.Decl(), o.Source, o.Availability)
	case *manifest.OfferProtocol:
		r.checkVoidAvailability(o.Decl(), o.Source, o.Availability)
	case *manifest.OfferDirectory:
		if len(o.Rights) > 0 {
			r.checkRights(o.Decl(), o.Rights)
		}
		r.checkVoidAvailability(o.Decl(), o.Source, o.Availability)
	case *manifest.OfferStorage:
		r.checkVoidAvailability(o.Decl(), o.Source, o.Availability)
	case *manifest.OfferEvent:
		if o.Mode == "" {
			r.errs.Add(diag.NewMissingField(o.Decl(), "mode"))
		}
		if len(o.Filter) > 0 {
			if !eventsAllowingFilter[o.SourceName.String()] {
				r.errs.Add(diag.NewInvalidField(o.Decl(), "filter",
					"only \"capability_requested\" and \"directory_ready\" support a filter"))
			} else if o.Source.Kind() != values.RefFramework {
				r.errs.Add(diag.NewInvalidField(o.Decl(), "filter",
					"filtered events must come from \"framework\""))
			}
		}
		r.checkVoidAvailability(o.Decl(), o.Source, o.Availability)
	case *manifest.OfferEventStream:
		r.checkVoidAvailability(o.Decl(), o.Source, o.Availability)
	}
}

// isSelfTargetOffer reports whether the offer's declared target is the
// same named entity as its declared source.
func isSelfTargetOffer(offer manifest.Offer) bool {
	source := offer.OfferSource()
	target := offer.OfferTarget()
	if source.Kind() != values.RefNamed && source.Kind() != values.RefChild {
		return false
	}
	if target.Kind() != values.RefNamed && target.Kind() != values.RefChild {
		return false
	}
	return source.Name().Equals(target.Name())
}

// checkOfferSelfTarget rejects an offer routed back to its own source
// child. A weak dependency escapes the rule; storage never does, since
// storage cannot flow back through the child that backs it.
func (r *run) checkOfferSelfTarget(offer manifest.Offer) {
	if !isSelfTargetOffer(offer) {
		return
	}
	if offer.Kind() != manifest.KindStorage && offer.OfferDependencyType().IsWeak() {
		return
	}
	r.errs.Add(diag.NewOfferTargetEqualsSource(offer.Decl(), offer.OfferTarget().Name().String()))
}

// checkOfferSource validates the from clause of an offer declaration.
// It runs after the other checks of the same declaration because it
// depends on the capability-kind classification they establish.
func (r *run) checkOfferSource(offer manifest.Offer) {
	decl := offer.Decl()
	source := offer.OfferSource()
	sourceName := offer.OfferSourceName()

	switch source.Kind() {
	case values.RefInvalid:
		r.errs.Add(diag.NewMissingField(decl, "from"))
	case values.RefParent, values.RefFramework, values.RefVoid:
	case values.RefSelf:
		if sourceName.IsEmpty() {
			return
		}
		if r.idx.capabilities[sourceName.String()] != offer.Kind() {
			r.errs.Add(diag.NewInvalidCapability(decl, "from", sourceName.String()))
		}
	case values.RefNamed, values.RefChild:
		name := source.Name().String()
		if !r.idx.children[name] && !r.idx.collections[name] {
			r.errs.Add(diag.NewInvalidChild(decl, "from", name))
		}
	default:
		r.errs.Add(diag.NewInvalidField(decl, "from", source.String()))
	}
}
