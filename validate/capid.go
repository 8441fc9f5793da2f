package validate

import (
	"github.com/routekit-dev/routekit/manifest/values"
)

// capabilityID identifies one capability a routing declaration
// establishes at a target: an offer or expose grants the pair
// (target, target name), and no two declarations in the same list may
// grant an equal pair. Service grants are exempt because services
// aggregate, so the same service name routed twice to one target is a
// legal fan-in.
//
// Use declarations establish namespace paths instead of grants; their
// collision rules live in usePath and checkPathOverlaps.
type capabilityID struct {
	target string
	name   string
}

// grantID computes the ID an offer or expose establishes.
func grantID(target values.Reference, name values.Name) capabilityID {
	return capabilityID{target: target.String(), name: name.String()}
}

// grantSet tracks granted IDs within one declaration list.
type grantSet map[capabilityID]bool

// insert records the ID and reports whether it was new.
func (s grantSet) insert(id capabilityID) bool {
	if s[id] {
		return false
	}
	s[id] = true
	return true
}
