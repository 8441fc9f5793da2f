package validate

import (
	"github.com/routekit-dev/routekit/diag"
	"github.com/routekit-dev/routekit/manifest"
	"github.com/routekit-dev/routekit/manifest/values"
)

// index holds the lookup tables built during the indexing phase. Every
// reference-existence check queries these, so indexing must complete
// before any per-declaration check runs.
type index struct {
	children     map[string]bool
	collections  map[string]bool
	environments map[string]bool

	// capabilities maps every declared capability name to its kind,
	// across all kinds (capability names share one namespace).
	capabilities map[string]manifest.CapabilityKind

	// storageSources maps each declared storage name to its backing
	// source; consulted by the storage indirection translation.
	storageSources map[string]values.Reference

	// usedEvents holds event target names introduced by use event
	// declarations; event-stream subscriptions must reference them.
	usedEvents map[string]bool

	// offeredToAll holds protocol target names offered with `to: all`.
	offeredToAll map[string]bool
}

// buildIndex populates the lookup tables and reports the duplicates the
// indexing phase is responsible for: capability names across kinds, and
// entity names across children, collections, environments, and the
// storage/runner/resolver capability namespaces.
func (r *run) buildIndex() {
	idx := &index{
		children:       make(map[string]bool),
		collections:    make(map[string]bool),
		environments:   make(map[string]bool),
		capabilities:   make(map[string]manifest.CapabilityKind),
		storageSources: make(map[string]values.Reference),
		usedEvents:     make(map[string]bool),
		offeredToAll:   make(map[string]bool),
	}
	r.idx = idx

	// name -> declaration label, shared across the entity namespaces.
	entities := make(map[string]string)
	record := func(name values.Name, decl string) {
		if name.IsEmpty() {
			return
		}
		key := name.String()
		if _, exists := entities[key]; exists {
			r.errs.Add(diag.NewDuplicateField(decl, "name", key))
			return
		}
		entities[key] = decl
	}

	for _, capability := range r.doc.Capabilities {
		name := capability.CapabilityName()
		if name.IsEmpty() {
			continue
		}
		key := name.String()
		if _, exists := idx.capabilities[key]; exists {
			r.errs.Add(diag.NewDuplicateField(capability.Decl(), "name", key))
		} else {
			idx.capabilities[key] = capability.Kind()
		}
		switch c := capability.(type) {
		case *manifest.StorageCapability:
			idx.storageSources[key] = c.Source
			record(name, c.Decl())
		case *manifest.RunnerCapability:
			record(name, c.Decl())
		case *manifest.ResolverCapability:
			record(name, c.Decl())
		}
	}

	for i := range r.doc.Children {
		child := &r.doc.Children[i]
		record(child.Name, "ChildDecl")
		if !child.Name.IsEmpty() {
			idx.children[child.Name.String()] = true
		}
	}
	for i := range r.doc.Collections {
		coll := &r.doc.Collections[i]
		record(coll.Name, "CollectionDecl")
		if !coll.Name.IsEmpty() {
			idx.collections[coll.Name.String()] = true
		}
	}
	for i := range r.doc.Environments {
		env := &r.doc.Environments[i]
		record(env.Name, "EnvironmentDecl")
		if !env.Name.IsEmpty() {
			idx.environments[env.Name.String()] = true
		}
	}

	for _, use := range r.doc.Uses {
		if event, ok := use.(*manifest.UseEvent); ok && !event.TargetName.IsEmpty() {
			idx.usedEvents[event.TargetName.String()] = true
		}
	}

	// Pre-compute protocols offered to all, and flag a protocol name
	// offered to all more than once across the manifest.
	for _, offer := range r.doc.Offers {
		protocol, ok := offer.(*manifest.OfferProtocol)
		if !ok || protocol.Target.Kind() != values.RefAll {
			continue
		}
		name := protocol.OfferTargetName().String()
		if name == "" {
			continue
		}
		if idx.offeredToAll[name] {
			r.errs.Add(diag.NewDuplicateField(protocol.Decl(), "target", name))
			continue
		}
		idx.offeredToAll[name] = true
	}
}
