package manifest

import "github.com/routekit-dev/routekit/manifest/values"

// Child declares a statically named child component.
type Child struct {
	Name        values.Name
	URL         values.URL
	Startup     values.StartupMode
	Environment values.Name // optional
	OnTerminate values.OnTerminate
}

// AllowedOffers is a collection's dynamic-offer policy. Using it
// requires the dynamic-offers feature.
type AllowedOffers string

const (
	AllowedOffersStaticOnly       AllowedOffers = "static_only"
	AllowedOffersStaticAndDynamic AllowedOffers = "static_and_dynamic"
)

// Collection declares a collection of dynamically created children.
type Collection struct {
	Name          values.Name
	Durability    values.Durability
	AllowedOffers AllowedOffers // optional, feature gated
	Environment   values.Name   // optional
}

// RunnerRegistration registers a runner under TargetName inside an
// environment.
type RunnerRegistration struct {
	Source     values.Reference
	SourceName values.Name
	TargetName values.Name
}

// ResolverRegistration registers a resolver for a URL scheme inside an
// environment.
type ResolverRegistration struct {
	Source   values.Reference
	Resolver values.Name
	Scheme   string
}

// DebugRegistration registers a protocol into the debug capability set
// of an environment.
type DebugRegistration struct {
	Source     values.Reference
	SourceName values.Name
	TargetName values.Name
}

// Environment declares a named bundle of runner, resolver, and debug
// registrations assignable to children and collections.
type Environment struct {
	Name          values.Name
	Extends       values.EnvironmentExtends
	StopTimeoutMs *uint32 // required when Extends is none
	Runners       []RunnerRegistration
	Resolvers     []ResolverRegistration
	Debugs        []DebugRegistration
}
