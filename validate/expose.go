package validate

import (
	"github.com/routekit-dev/routekit/diag"
	"github.com/routekit-dev/routekit/manifest"
	"github.com/routekit-dev/routekit/manifest/values"
)

// validateExposes applies the kind-specific rules to every declaration
// under "exposes". Exposes target the parent scope, so they contribute
// no local dependency edges.
func (r *run) validateExposes() {
	exposed := make(grantSet)

	for _, expose := range r.doc.Exposes {
		decl := expose.Decl()

		if expose.ExposeSourceName().IsEmpty() {
			r.errs.Add(diag.NewMissingField(decl, "source_name"))
		}
		if expose.ExposeTargetName().IsEmpty() {
			r.errs.Add(diag.NewMissingField(decl, "target_name"))
		}

		switch expose.ExposeTarget().Kind() {
		case values.RefInvalid:
			r.errs.Add(diag.NewMissingField(decl, "target"))
		case values.RefParent, values.RefFramework:
		default:
			r.errs.Add(diag.NewInvalidField(decl, "target",
				"must be \"parent\" or \"framework\""))
		}

		if directory, ok := expose.(*manifest.ExposeDirectory); ok && len(directory.Rights) > 0 {
			r.checkRights(decl, directory.Rights)
		}

		if !expose.ExposeTargetName().IsEmpty() && expose.ExposeTarget().Kind() != values.RefInvalid &&
			expose.Kind() != manifest.KindService {
			if !exposed.insert(grantID(expose.ExposeTarget(), expose.ExposeTargetName())) {
				r.errs.Add(diag.NewDuplicateField(decl, "target_name", expose.ExposeTargetName().String()))
			}
		}

		// The from clause runs last.
		r.checkExposeSource(expose)
	}
}

// checkExposeSource validates the from clause of an expose declaration.
func (r *run) checkExposeSource(expose manifest.Expose) {
	decl := expose.Decl()
	source := expose.ExposeSource()
	sourceName := expose.ExposeSourceName()

	switch source.Kind() {
	case values.RefInvalid:
		r.errs.Add(diag.NewMissingField(decl, "from"))
	case values.RefFramework, values.RefVoid:
	case values.RefSelf:
		if sourceName.IsEmpty() {
			return
		}
		if r.idx.capabilities[sourceName.String()] != expose.Kind() {
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
