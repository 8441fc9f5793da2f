package manifest

import "github.com/routekit-dev/routekit/manifest/values"

// Offer is a declaration under the "offers" section: grant a capability
// from a source to a child or collection (or to all of them).
//
// A declaration that grants several capabilities or targets several
// children in source form is expanded to one Offer per
// capability-target pair before validation.
type Offer interface {
	Kind() CapabilityKind
	Decl() string
	// OfferSource is the routing source of the declaration.
	OfferSource() values.Reference
	// OfferSourceName is the capability name at the source.
	OfferSourceName() values.Name
	// OfferTarget is the routing target: a child or collection
	// reference, or the "all" sentinel.
	OfferTarget() values.Reference
	// OfferTargetName is the capability name granted at the target.
	OfferTargetName() values.Name
	// OfferDependencyType is the dependency strength; always strong
	// for kinds that do not carry one.
	OfferDependencyType() values.DependencyType
}

// OfferService grants a service capability. Multiple service offers may
// share a target name; the service aggregates (fan-in).
type OfferService struct {
	Source       values.Reference
	SourceName   values.Name
	Target       values.Reference
	TargetName   values.Name
	Availability values.Availability
}

func (o *OfferService) Kind() CapabilityKind { return KindService }
func (o *OfferService) Decl() string { return "OfferServiceDecl" }
func (o *OfferService) OfferSource() values.Reference { return o.Source }
func (o *OfferService) OfferSourceName() values.Name { return o.SourceName }
func (o *OfferService) OfferTarget() values.Reference { return o.Target }
func (o *OfferService) OfferTargetName() values.Name { return o.TargetName }
func (o *OfferService) OfferDependencyType() values.DependencyType { return values.DependencyStrong }

// OfferProtocol grants a protocol capability.
type OfferProtocol struct {
	Source         values.Reference
	SourceName     values.Name
	Target         values.Reference
	TargetName     values.Name
	DependencyType values.DependencyType
	Availability   values.Availability
}

func (o *OfferProtocol) Kind() CapabilityKind { return KindProtocol }
func (o *OfferProtocol) Decl() string { return "OfferProtocolDecl" }
func (o *OfferProtocol) OfferSource() values.Reference { return o.Source }
func (o *OfferProtocol) OfferSourceName() values.Name { return o.SourceName }
func (o *OfferProtocol) OfferTarget() values.Reference { return o.Target }
func (o *OfferProtocol) OfferTargetName() values.Name { return o.TargetName }
func (o *OfferProtocol) OfferDependencyType() values.DependencyType { return o.DependencyType }

// OfferDirectory grants a directory capability.
type OfferDirectory struct {
	Source         values.Reference
	SourceName     values.Name
	Target         values.Reference
	TargetName     values.Name
	Rights         []string
	Subdir         values.RelativePath
	DependencyType values.DependencyType
	Availability   values.Availability
}

func (o *OfferDirectory) Kind() CapabilityKind { return KindDirectory }
func (o *OfferDirectory) Decl() string { return "OfferDirectoryDecl" }
func (o *OfferDirectory) OfferSource() values.Reference { return o.Source }
func (o *OfferDirectory) OfferSourceName() values.Name { return o.SourceName }
func (o *OfferDirectory) OfferTarget() values.Reference { return o.Target }
func (o *OfferDirectory) OfferTargetName() values.Name { return o.TargetName }
func (o *OfferDirectory) OfferDependencyType() values.DependencyType { return o.DependencyType }

// OfferStorage grants a storage capability. TargetName defaults to
// SourceName when unset.
type OfferStorage struct {
	Source       values.Reference
	SourceName   values.Name
	Target       values.Reference
	TargetName   values.Name
	Availability values.Availability
}

func (o *OfferStorage) Kind() CapabilityKind { return KindStorage }
func (o *OfferStorage) Decl() string { return "OfferStorageDecl" }
func (o *OfferStorage) OfferSource() values.Reference { return o.Source }
func (o *OfferStorage) OfferSourceName() values.Name { return o.SourceName }
func (o *OfferStorage) OfferTarget() values.Reference { return o.Target }

// OfferTargetName returns the capability name at the target,
// defaulting to the source name.
func (o *OfferStorage) OfferTargetName() values.Name {
	if o.TargetName.IsEmpty() {
		return o.SourceName
	}
	return o.TargetName
}

func (o *OfferStorage) OfferDependencyType() values.DependencyType { return values.DependencyStrong }

// OfferRunner grants a runner capability.
type OfferRunner struct {
	Source     values.Reference
	SourceName values.Name
	Target     values.Reference
	TargetName values.Name
}

func (o *OfferRunner) Kind() CapabilityKind { return KindRunner }
func (o *OfferRunner) Decl() string { return "OfferRunnerDecl" }
func (o *OfferRunner) OfferSource() values.Reference { return o.Source }
func (o *OfferRunner) OfferSourceName() values.Name { return o.SourceName }
func (o *OfferRunner) OfferTarget() values.Reference { return o.Target }
func (o *OfferRunner) OfferTargetName() values.Name { return o.TargetName }
func (o *OfferRunner) OfferDependencyType() values.DependencyType { return values.DependencyStrong }

// OfferResolver grants a resolver capability.
type OfferResolver struct {
	Source     values.Reference
	SourceName values.Name
	Target     values.Reference
	TargetName values.Name
}

func (o *OfferResolver) Kind() CapabilityKind { return KindResolver }
func (o *OfferResolver) Decl() string { return "OfferResolverDecl" }
func (o *OfferResolver) OfferSource() values.Reference { return o.Source }
func (o *OfferResolver) OfferSourceName() values.Name { return o.SourceName }
func (o *OfferResolver) OfferTarget() values.Reference { return o.Target }
func (o *OfferResolver) OfferTargetName() values.Name { return o.TargetName }
func (o *OfferResolver) OfferDependencyType() values.DependencyType { return values.DependencyStrong }

// OfferEvent grants a framework event.
type OfferEvent struct {
	Source       values.Reference
	SourceName   values.Name
	Target       values.Reference
	TargetName   values.Name
	Filter       map[string]string
	Mode         values.EventMode
	Availability values.Availability
}

func (o *OfferEvent) Kind() CapabilityKind { return KindEvent }
func (o *OfferEvent) Decl() string { return "OfferEventDecl" }
func (o *OfferEvent) OfferSource() values.Reference { return o.Source }
func (o *OfferEvent) OfferSourceName() values.Name { return o.SourceName }
func (o *OfferEvent) OfferTarget() values.Reference { return o.Target }
func (o *OfferEvent) OfferTargetName() values.Name { return o.TargetName }
func (o *OfferEvent) OfferDependencyType() values.DependencyType { return values.DependencyStrong }

// OfferEventStream grants an event stream.
type OfferEventStream struct {
	Source       values.Reference
	SourceName   values.Name
	Target       values.Reference
	TargetName   values.Name
	Availability values.Availability
}

func (o *OfferEventStream) Kind() CapabilityKind { return KindEventStream }
func (o *OfferEventStream) Decl() string { return "OfferEventStreamDecl" }
func (o *OfferEventStream) OfferSource() values.Reference { return o.Source }
func (o *OfferEventStream) OfferSourceName() values.Name { return o.SourceName }
func (o *OfferEventStream) OfferTarget() values.Reference { return o.Target }
func (o *OfferEventStream) OfferTargetName() values.Name { return o.TargetName }
func (o *OfferEventStream) OfferDependencyType() values.DependencyType { return values.DependencyStrong }
