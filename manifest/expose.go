package manifest

import "github.com/routekit-dev/routekit/manifest/values"

// Expose is a declaration under the "exposes" section: make a
// capability visible to this component's parent (or to the framework).
// Storage and events cannot be exposed.
type Expose interface {
	Kind() CapabilityKind
	Decl() string
	// ExposeSource is the routing source of the declaration.
	ExposeSource() values.Reference
	// ExposeSourceName is the capability name at the source.
	ExposeSourceName() values.Name
	// ExposeTarget is parent or framework.
	ExposeTarget() values.Reference
	// ExposeTargetName is the capability name visible at the target.
	ExposeTargetName() values.Name
}

// ExposeService exposes a service capability. Multiple service exposes
// may share a target name; the service aggregates (fan-in).
type ExposeService struct {
	Source       values.Reference
	SourceName   values.Name
	Target       values.Reference
	TargetName   values.Name
	Availability values.Availability
}

func (e *ExposeService) Kind() CapabilityKind { return KindService }
func (e *ExposeService) Decl() string { return "ExposeServiceDecl" }
func (e *ExposeService) ExposeSource() values.Reference { return e.Source }
func (e *ExposeService) ExposeSourceName() values.Name { return e.SourceName }
func (e *ExposeService) ExposeTarget() values.Reference { return e.Target }
func (e *ExposeService) ExposeTargetName() values.Name { return e.TargetName }

// ExposeProtocol exposes a protocol capability.
type ExposeProtocol struct {
	Source       values.Reference
	SourceName   values.Name
	Target       values.Reference
	TargetName   values.Name
	Availability values.Availability
}

func (e *ExposeProtocol) Kind() CapabilityKind { return KindProtocol }
func (e *ExposeProtocol) Decl() string { return "ExposeProtocolDecl" }
func (e *ExposeProtocol) ExposeSource() values.Reference { return e.Source }
func (e *ExposeProtocol) ExposeSourceName() values.Name { return e.SourceName }
func (e *ExposeProtocol) ExposeTarget() values.Reference { return e.Target }
func (e *ExposeProtocol) ExposeTargetName() values.Name { return e.TargetName }

// ExposeDirectory exposes a directory capability.
type ExposeDirectory struct {
	Source       values.Reference
	SourceName   values.Name
	Target       values.Reference
	TargetName   values.Name
	Rights       []string
	Subdir       values.RelativePath
	Availability values.Availability
}

func (e *ExposeDirectory) Kind() CapabilityKind { return KindDirectory }
func (e *ExposeDirectory) Decl() string { return "ExposeDirectoryDecl" }
func (e *ExposeDirectory) ExposeSource() values.Reference { return e.Source }
func (e *ExposeDirectory) ExposeSourceName() values.Name { return e.SourceName }
func (e *ExposeDirectory) ExposeTarget() values.Reference { return e.Target }
func (e *ExposeDirectory) ExposeTargetName() values.Name { return e.TargetName }

// ExposeRunner exposes a runner capability.
type ExposeRunner struct {
	Source     values.Reference
	SourceName values.Name
	Target     values.Reference
	TargetName values.Name
}

func (e *ExposeRunner) Kind() CapabilityKind { return KindRunner }
func (e *ExposeRunner) Decl() string { return "ExposeRunnerDecl" }
func (e *ExposeRunner) ExposeSource() values.Reference { return e.Source }
func (e *ExposeRunner) ExposeSourceName() values.Name { return e.SourceName }
func (e *ExposeRunner) ExposeTarget() values.Reference { return e.Target }
func (e *ExposeRunner) ExposeTargetName() values.Name { return e.TargetName }

// ExposeResolver exposes a resolver capability.
type ExposeResolver struct {
	Source     values.Reference
	SourceName values.Name
	Target     values.Reference
	TargetName values.Name
}

func (e *ExposeResolver) Kind() CapabilityKind { return KindResolver }
func (e *ExposeResolver) Decl() string { return "ExposeResolverDecl" }
func (e *ExposeResolver) ExposeSource() values.Reference { return e.Source }
func (e *ExposeResolver) ExposeSourceName() values.Name { return e.SourceName }
func (e *ExposeResolver) ExposeTarget() values.Reference { return e.Target }
func (e *ExposeResolver) ExposeTargetName() values.Name { return e.TargetName }
