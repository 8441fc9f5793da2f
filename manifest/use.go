package manifest

import "github.com/routekit-dev/routekit/manifest/values"

// Use is a declaration under the "uses" section: this component
// consumes a capability from some source.
type Use interface {
	Kind() CapabilityKind
	Decl() string
	// UseSource is the routing source of the declaration.
	UseSource() values.Reference
	// UseDependencyType is the dependency strength of the declaration;
	// always strong for kinds that do not carry one.
	UseDependencyType() values.DependencyType
}

// UseService consumes a service capability at TargetPath.
type UseService struct {
	Source       values.Reference
	SourceName   values.Name
	TargetPath   values.Path
	Availability values.Availability
}

func (u *UseService) Kind() CapabilityKind { return KindService }
func (u *UseService) Decl() string { return "UseServiceDecl" }
func (u *UseService) UseSource() values.Reference { return u.Source }
func (u *UseService) UseDependencyType() values.DependencyType { return values.DependencyStrong }

// UseProtocol consumes a protocol capability at TargetPath.
type UseProtocol struct {
	Source         values.Reference
	SourceName     values.Name
	TargetPath     values.Path
	DependencyType values.DependencyType
	Availability   values.Availability
}

func (u *UseProtocol) Kind() CapabilityKind { return KindProtocol }
func (u *UseProtocol) Decl() string { return "UseProtocolDecl" }
func (u *UseProtocol) UseSource() values.Reference { return u.Source }
func (u *UseProtocol) UseDependencyType() values.DependencyType { return u.DependencyType }

// UseDirectory consumes a directory capability at TargetPath.
type UseDirectory struct {
	Source         values.Reference
	SourceName     values.Name
	TargetPath     values.Path
	Rights         []string
	Subdir         values.RelativePath
	DependencyType values.DependencyType
	Availability   values.Availability
}

func (u *UseDirectory) Kind() CapabilityKind { return KindDirectory }
func (u *UseDirectory) Decl() string { return "UseDirectoryDecl" }
func (u *UseDirectory) UseSource() values.Reference { return u.Source }
func (u *UseDirectory) UseDependencyType() values.DependencyType { return u.DependencyType }

// UseStorage consumes a storage capability at TargetPath. Storage is
// always supplied by the parent, so there is no source field.
type UseStorage struct {
	SourceName   values.Name
	TargetPath   values.Path
	Availability values.Availability
}

func (u *UseStorage) Kind() CapabilityKind { return KindStorage }
func (u *UseStorage) Decl() string { return "UseStorageDecl" }
func (u *UseStorage) UseSource() values.Reference { return values.ParentRef() }
func (u *UseStorage) UseDependencyType() values.DependencyType { return values.DependencyStrong }

// UseEvent subscribes this component to a single framework event under
// TargetName.
type UseEvent struct {
	Source       values.Reference
	SourceName   values.Name
	TargetName   values.Name
	Filter       map[string]string
	Mode         values.EventMode
	Availability values.Availability
}

func (u *UseEvent) Kind() CapabilityKind { return KindEvent }
func (u *UseEvent) Decl() string { return "UseEventDecl" }
func (u *UseEvent) UseSource() values.Reference { return u.Source }
func (u *UseEvent) UseDependencyType() values.DependencyType { return values.DependencyStrong }

// Subscription names one previously used event inside a use
// event_stream declaration.
type Subscription struct {
	EventName values.Name
}

// UseEventStream consumes a stream of previously used events at
// TargetPath.
type UseEventStream struct {
	TargetPath    values.Path
	Subscriptions []Subscription
	Availability  values.Availability
}

func (u *UseEventStream) Kind() CapabilityKind { return KindEventStream }
func (u *UseEventStream) Decl() string { return "UseEventStreamDecl" }
func (u *UseEventStream) UseSource() values.Reference { return values.SelfRef() }
func (u *UseEventStream) UseDependencyType() values.DependencyType { return values.DependencyStrong }
