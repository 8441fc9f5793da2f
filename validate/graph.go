package validate

import (
	"github.com/routekit-dev/routekit/depgraph"
	"github.com/routekit-dev/routekit/manifest/values"
)

// addStrongDep inserts the strong dependency edge a routed capability
// implies, translating storage indirection first: depending on a
// declared storage capability really means depending on whatever backs
// it, so the storage's own declared source replaces the routing source
// before projection.
//
// Sources that projection drops (parent, framework, debug, void) are
// resolved by an encompassing scope and insert nothing.
func (r *run) addStrongDep(capabilityName values.Name, source values.Reference, target depgraph.Node) {
	if !capabilityName.IsEmpty() {
		if backing, ok := r.idx.storageSources[capabilityName.String()]; ok {
			switch source.Kind() {
			case values.RefSelf:
				source = backing
			case values.RefNamed, values.RefChild:
				if source.Name().Equals(capabilityName) {
					source = backing
				}
			}
		}
	}

	node, ok := depgraph.ProjectReference(source)
	if !ok {
		return
	}
	r.graph.AddEdge(node, target)
}

// addEnvironmentEdges inserts the edges an environment contributes:
// each registration's capability provider feeds the environment node,
// and the environment feeds every child or collection that selects it.
// The selection half is inserted where children and collections are
// validated; this half covers the registrations.
func (r *run) addEnvironmentEdges(envName values.Name, registrationSources []values.Reference) {
	envNode := depgraph.Named(envName.String())
	for _, source := range registrationSources {
		node, ok := depgraph.ProjectReference(source)
		if !ok {
			continue
		}
		r.graph.AddEdge(node, envNode)
	}
}
