package validate

import (
	"github.com/routekit-dev/routekit/diag"
	"github.com/routekit-dev/routekit/manifest"
	"github.com/routekit-dev/routekit/manifest/values"
)

// validateCapabilities applies the kind-specific rules to every
// declaration under "capabilities". Duplicate names across kinds are
// reported by the indexing phase.
func (r *run) validateCapabilities() {
	for _, capability := range r.doc.Capabilities {
		r.checkDeclaredName(capability.Decl(), capability.CapabilityName())

		switch c := capability.(type) {
		case *manifest.ServiceCapability:
			if c.Path.IsEmpty() {
				r.errs.Add(diag.NewMissingField(c.Decl(), "path"))
			}
		case *manifest.ProtocolCapability:
			if c.Path.IsEmpty() {
				r.errs.Add(diag.NewMissingField(c.Decl(), "path"))
			}
		case *manifest.DirectoryCapability:
			if c.Path.IsEmpty() {
				r.errs.Add(diag.NewMissingField(c.Decl(), "path"))
			}
			r.checkRights(c.Decl(), c.Rights)
		case *manifest.StorageCapability:
			r.validateStorageCapability(c)
		case *manifest.RunnerCapability:
			if c.Path.IsEmpty() {
				r.errs.Add(diag.NewMissingField(c.Decl(), "path"))
			}
		case *manifest.ResolverCapability:
			if c.Path.IsEmpty() {
				r.errs.Add(diag.NewMissingField(c.Decl(), "path"))
			}
		case *manifest.EventCapability, *manifest.EventStreamCapability:
			// Name-only declarations; nothing further to check.
		}
	}
}

func (r *run) validateStorageCapability(c *manifest.StorageCapability) {
	if c.BackingDir.IsEmpty() {
		r.errs.Add(diag.NewMissingField(c.Decl(), "backing_dir"))
	}
	switch c.StorageID {
	case manifest.StorageIDStaticInstance, manifest.StorageIDStaticInstanceOrMoniker:
	case "":
		r.errs.Add(diag.NewMissingField(c.Decl(), "storage_id"))
	default:
		r.errs.Add(diag.NewInvalidField(c.Decl(), "storage_id", string(c.StorageID)))
	}

	// The from clause runs last.
	switch c.Source.Kind() {
	case values.RefInvalid:
		r.errs.Add(diag.NewMissingField(c.Decl(), "from"))
	case values.RefParent:
	case values.RefSelf:
		if !c.BackingDir.IsEmpty() && r.idx.capabilities[c.BackingDir.String()] != manifest.KindDirectory {
			r.errs.Add(diag.NewInvalidCapability(c.Decl(), "backing_dir", c.BackingDir.String()))
		}
	case values.RefNamed, values.RefChild:
		if !r.idx.children[c.Source.Name().String()] {
			r.errs.Add(diag.NewInvalidChild(c.Decl(), "from", c.Source.Name().String()))
		}
	default:
		r.errs.Add(diag.NewInvalidField(c.Decl(), "from", c.Source.String()))
	}
}

// checkDeclaredName applies the shared name rules for declared
// entities: presence and the feature-gated length bound. Capabilities,
// children, collections, and environments all share the same bound.
func (r *run) checkDeclaredName(decl string, name values.Name) {
	if name.IsEmpty() {
		r.errs.Add(diag.NewMissingField(decl, "name"))
		return
	}
	if len(name.String()) > values.MaxNameLength && !r.features.Has(FeatureAllowLongNames) {
		r.errs.Add(diag.NewRestrictedFeature(string(FeatureAllowLongNames)))
	}
}

// checkRights validates a rights token list, expanding aliases and
// rejecting duplicated base rights.
func (r *run) checkRights(decl string, rights []string) {
	if len(rights) == 0 {
		r.errs.Add(diag.NewMissingField(decl, "rights"))
		return
	}
	if _, err := values.ExpandRights(rights); err != nil {
		r.errs.Add(diag.NewInvalidField(decl, "rights", err.Error()))
	}
}
