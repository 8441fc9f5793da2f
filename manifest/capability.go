// Package manifest defines the typed document model for component
// manifests: the declaration a component makes about the capabilities
// it uses, offers, exposes, and declares, plus its children,
// collections, and environments.
//
// Each declaration category (Capability, Use, Offer, Expose) is a
// tagged union over the capability kinds, modeled as an interface over
// one struct per kind. Validator logic type-switches on the concrete
// type, so adding a kind is a compile-time-visible update to every
// switch.
package manifest

import "github.com/routekit-dev/routekit/manifest/values"

// CapabilityKind identifies one of the routable capability kinds.
type CapabilityKind string

const (
	KindService     CapabilityKind = "service"
	KindProtocol    CapabilityKind = "protocol"
	KindDirectory   CapabilityKind = "directory"
	KindStorage     CapabilityKind = "storage"
	KindRunner      CapabilityKind = "runner"
	KindResolver    CapabilityKind = "resolver"
	KindEvent       CapabilityKind = "event"
	KindEventStream CapabilityKind = "event_stream"
)

// StorageID selects how storage instances are keyed.
type StorageID string

const (
	StorageIDStaticInstance          StorageID = "static_instance_id"
	StorageIDStaticInstanceOrMoniker StorageID = "static_instance_id_or_moniker"
)

// Capability is a declaration under the "capabilities" section.
// Names are unique across all capability declarations regardless of
// kind.
type Capability interface {
	Kind() CapabilityKind
	CapabilityName() values.Name
	Decl() string
}

// ServiceCapability declares a service provided by this component.
type ServiceCapability struct {
	Name values.Name
	Path values.Path
}

func (c *ServiceCapability) Kind() CapabilityKind { return KindService }
func (c *ServiceCapability) CapabilityName() values.Name { return c.Name }
func (c *ServiceCapability) Decl() string { return "ServiceDecl" }

// ProtocolCapability declares a protocol provided by this component.
type ProtocolCapability struct {
	Name values.Name
	Path values.Path
}

func (c *ProtocolCapability) Kind() CapabilityKind { return KindProtocol }
func (c *ProtocolCapability) CapabilityName() values.Name { return c.Name }
func (c *ProtocolCapability) Decl() string { return "ProtocolDecl" }

// DirectoryCapability declares a directory provided by this component.
// Rights are token strings expanded by values.ExpandRights.
type DirectoryCapability struct {
	Name   values.Name
	Path   values.Path
	Rights []string
}

func (c *DirectoryCapability) Kind() CapabilityKind { return KindDirectory }
func (c *DirectoryCapability) CapabilityName() values.Name { return c.Name }
func (c *DirectoryCapability) Decl() string { return "DirectoryDecl" }

// StorageCapability declares isolated storage backed by a directory
// capability. Source is where the backing directory comes from;
// BackingDir names it there.
type StorageCapability struct {
	Name       values.Name
	Source     values.Reference
	BackingDir values.Name
	Subdir     values.RelativePath
	StorageID  StorageID
}

func (c *StorageCapability) Kind() CapabilityKind { return KindStorage }
func (c *StorageCapability) CapabilityName() values.Name { return c.Name }
func (c *StorageCapability) Decl() string { return "StorageDecl" }

// RunnerCapability declares a runner provided by this component.
type RunnerCapability struct {
	Name values.Name
	Path values.Path
}

func (c *RunnerCapability) Kind() CapabilityKind { return KindRunner }
func (c *RunnerCapability) CapabilityName() values.Name { return c.Name }
func (c *RunnerCapability) Decl() string { return "RunnerDecl" }

// ResolverCapability declares a component resolver provided by this
// component.
type ResolverCapability struct {
	Name values.Name
	Path values.Path
}

func (c *ResolverCapability) Kind() CapabilityKind { return KindResolver }
func (c *ResolverCapability) CapabilityName() values.Name { return c.Name }
func (c *ResolverCapability) Decl() string { return "ResolverDecl" }

// EventCapability declares a framework event this component surfaces.
type EventCapability struct {
	Name values.Name
}

func (c *EventCapability) Kind() CapabilityKind { return KindEvent }
func (c *EventCapability) CapabilityName() values.Name { return c.Name }
func (c *EventCapability) Decl() string { return "EventDecl" }

// EventStreamCapability declares an event stream this component
// surfaces.
type EventStreamCapability struct {
	Name values.Name
}

func (c *EventStreamCapability) Kind() CapabilityKind { return KindEventStream }
func (c *EventStreamCapability) CapabilityName() values.Name { return c.Name }
func (c *EventStreamCapability) Decl() string { return "EventStreamDecl" }
