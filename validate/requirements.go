package validate

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/routekit-dev/routekit/diag"
	"github.com/routekit-dev/routekit/manifest"
	"github.com/routekit-dev/routekit/manifest/values"
)

// ProtocolRequirements is externally imposed routing policy: protocols
// every manifest must offer to each of its children and collections,
// and protocols every manifest must use. A manifest opts out of a
// requirement through its disable block, whose entries may be
// doublestar patterns.
type ProtocolRequirements struct {
	MustOffer []string
	MustUse   []string
}

// IsEmpty reports whether no requirement is imposed.
func (r ProtocolRequirements) IsEmpty() bool {
	return len(r.MustOffer) == 0 && len(r.MustUse) == 0
}

// disabledBy reports whether any pattern matches the protocol name.
// A malformed pattern never matches.
func disabledBy(patterns []string, protocol string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, protocol); err == nil && ok {
			return true
		}
	}
	return false
}

// checkRequiredOffers verifies that every must-offer protocol reaches
// every declared child and collection, through a direct offer or a
// `to: all` offer, unless the manifest disables the requirement.
func (r *run) checkRequiredOffers() {
	if len(r.reqs.MustOffer) == 0 {
		return
	}

	// target display -> set of protocol target names offered to it.
	direct := make(map[string]map[string]bool)
	for _, offer := range r.doc.Offers {
		protocol, ok := offer.(*manifest.OfferProtocol)
		if !ok {
			continue
		}
		target := protocol.Target
		if target.Kind() == values.RefAll {
			continue
		}
		key := target.String()
		if direct[key] == nil {
			direct[key] = make(map[string]bool)
		}
		direct[key][protocol.OfferTargetName().String()] = true
	}

	for _, protocol := range r.reqs.MustOffer {
		if disabledBy(r.doc.Disable.MustOffer, protocol) {
			continue
		}
		if r.idx.offeredToAll[protocol] {
			continue
		}
		for _, child := range r.doc.Children {
			target := "#" + child.Name.String()
			if !direct[target][protocol] {
				r.errs.Add(requiredOfferMissing(protocol, "child", target))
			}
		}
		for _, coll := range r.doc.Collections {
			target := "#" + coll.Name.String()
			if !direct[target][protocol] {
				r.errs.Add(requiredOfferMissing(protocol, "collection", target))
			}
		}
	}
}

// checkRequiredUses verifies that every must-use protocol appears among
// the manifest's use declarations, unless disabled.
func (r *run) checkRequiredUses() {
	if len(r.reqs.MustUse) == 0 {
		return
	}

	used := make(map[string]bool)
	for _, use := range r.doc.Uses {
		if protocol, ok := use.(*manifest.UseProtocol); ok {
			used[protocol.SourceName.String()] = true
		}
	}

	for _, protocol := range r.reqs.MustUse {
		if disabledBy(r.doc.Disable.MustUse, protocol) {
			continue
		}
		if !used[protocol] {
			r.errs.Add(requiredUseMissing(protocol))
		}
	}
}

func requiredOfferMissing(protocol, targetKind, target string) diag.Error {
	return diag.Error{
		Kind: diag.MissingField, Decl: "OfferProtocolDecl", Field: "target", Name: protocol,
		Message: fmt.Sprintf("protocol %q is not offered to %s %q but is required", protocol, targetKind, target),
	}
}

func requiredUseMissing(protocol string) diag.Error {
	return diag.Error{
		Kind: diag.MissingField, Decl: "UseProtocolDecl", Field: "source_name", Name: protocol,
		Message: fmt.Sprintf("protocol %q is not used but is required", protocol),
	}
}
