package validate

import (
	"github.com/routekit-dev/routekit/depgraph"
	"github.com/routekit-dev/routekit/diag"
	"github.com/routekit-dev/routekit/manifest"
	"github.com/routekit-dev/routekit/manifest/values"
)

// validateChildren checks every child declaration and inserts the edge
// its environment selection contributes: the environment feeds the
// child.
func (r *run) validateChildren() {
	for i := range r.doc.Children {
		child := &r.doc.Children[i]

		r.checkDeclaredName("ChildDecl", child.Name)
		if child.URL.IsEmpty() {
			r.errs.Add(diag.NewMissingField("ChildDecl", "url"))
		}
		if child.Environment.IsEmpty() {
			continue
		}
		if !r.idx.environments[child.Environment.String()] {
			r.errs.Add(diag.NewInvalidEnvironment("ChildDecl", "environment", child.Environment.String()))
			continue
		}
		if !child.Name.IsEmpty() {
			r.graph.AddEdge(depgraph.Named(child.Environment.String()), depgraph.Named(child.Name.String()))
		}
	}
}

// validateCollections checks every collection declaration, gates the
// allowed_offers policy, and inserts the environment-selection edge.
func (r *run) validateCollections() {
	for i := range r.doc.Collections {
		coll := &r.doc.Collections[i]

		r.checkDeclaredName("CollectionDecl", coll.Name)
		if coll.Durability == "" {
			r.errs.Add(diag.NewMissingField("CollectionDecl", "durability"))
		}
		switch coll.AllowedOffers {
		case "":
		case manifest.AllowedOffersStaticOnly, manifest.AllowedOffersStaticAndDynamic:
			if !r.features.Has(FeatureDynamicOffers) {
				r.errs.Add(diag.NewRestrictedFeature(string(FeatureDynamicOffers)))
			}
		default:
			r.errs.Add(diag.NewInvalidField("CollectionDecl", "allowed_offers", string(coll.AllowedOffers)))
		}
		if coll.Environment.IsEmpty() {
			continue
		}
		if !r.idx.environments[coll.Environment.String()] {
			r.errs.Add(diag.NewInvalidEnvironment("CollectionDecl", "environment", coll.Environment.String()))
			continue
		}
		if !coll.Name.IsEmpty() {
			r.graph.AddEdge(depgraph.Named(coll.Environment.String()), depgraph.Named(coll.Name.String()))
		}
	}
}

// validateEnvironments checks every environment declaration and inserts
// the edges its registrations contribute: each registration's provider
// feeds the environment node.
func (r *run) validateEnvironments() {
	for i := range r.doc.Environments {
		env := &r.doc.Environments[i]
		decl := "EnvironmentDecl"

		r.checkDeclaredName(decl, env.Name)
		switch env.Extends {
		case "":
			r.errs.Add(diag.NewMissingField(decl, "extends"))
		case values.ExtendsNone:
			if env.StopTimeoutMs == nil {
				r.errs.Add(diag.NewMissingField(decl, "stop_timeout_ms"))
			}
		case values.ExtendsRealm:
		default:
			r.errs.Add(diag.NewInvalidField(decl, "extends", string(env.Extends)))
		}

		var registrationSources []values.Reference

		runnerTargets := make(map[string]bool)
		for _, reg := range env.Runners {
			if reg.SourceName.IsEmpty() {
				r.errs.Add(diag.NewMissingField("RunnerRegistration", "source_name"))
			}
			if reg.TargetName.IsEmpty() {
				r.errs.Add(diag.NewMissingField("RunnerRegistration", "target_name"))
			} else if runnerTargets[reg.TargetName.String()] {
				r.errs.Add(diag.NewDuplicateField("RunnerRegistration", "target_name", reg.TargetName.String()))
			} else {
				runnerTargets[reg.TargetName.String()] = true
			}
			r.checkRegistrationSource("RunnerRegistration", reg.Source, reg.SourceName, manifest.KindRunner)
			registrationSources = append(registrationSources, reg.Source)
		}

		schemes := make(map[string]bool)
		for _, reg := range env.Resolvers {
			if reg.Resolver.IsEmpty() {
				r.errs.Add(diag.NewMissingField("ResolverRegistration", "resolver"))
			}
			if reg.Scheme == "" {
				r.errs.Add(diag.NewMissingField("ResolverRegistration", "scheme"))
			} else if schemes[reg.Scheme] {
				r.errs.Add(diag.NewDuplicateField("ResolverRegistration", "scheme", reg.Scheme))
			} else {
				schemes[reg.Scheme] = true
			}
			r.checkRegistrationSource("ResolverRegistration", reg.Source, reg.Resolver, manifest.KindResolver)
			registrationSources = append(registrationSources, reg.Source)
		}

		for _, reg := range env.Debugs {
			if reg.SourceName.IsEmpty() {
				r.errs.Add(diag.NewMissingField("DebugRegistration", "source_name"))
			}
			if reg.TargetName.IsEmpty() {
				r.errs.Add(diag.NewMissingField("DebugRegistration", "target_name"))
			}
			r.checkRegistrationSource("DebugRegistration", reg.Source, reg.SourceName, manifest.KindProtocol)
			registrationSources = append(registrationSources, reg.Source)
		}

		if !env.Name.IsEmpty() {
			r.addEnvironmentEdges(env.Name, registrationSources)
		}
	}
}

// checkRegistrationSource validates the from clause of an environment
// registration: parent, self, or a declared child, with self-sourced
// registrations required to name a declared capability of the right
// kind.
func (r *run) checkRegistrationSource(decl string, source values.Reference, sourceName values.Name, kind manifest.CapabilityKind) {
	switch source.Kind() {
	case values.RefInvalid:
		r.errs.Add(diag.NewMissingField(decl, "from"))
	case values.RefParent:
	case values.RefSelf:
		if sourceName.IsEmpty() {
			return
		}
		if r.idx.capabilities[sourceName.String()] != kind {
			if kind == manifest.KindRunner {
				r.errs.Add(diag.NewInvalidRunner(decl, "from", sourceName.String()))
			} else {
				r.errs.Add(diag.NewInvalidCapability(decl, "from", sourceName.String()))
			}
		}
	case values.RefNamed, values.RefChild:
		if !r.idx.children[source.Name().String()] {
			r.errs.Add(diag.NewInvalidChild(decl, "from", source.Name().String()))
		}
	default:
		r.errs.Add(diag.NewInvalidField(decl, "from", source.String()))
	}
}
