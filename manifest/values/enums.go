package values

import "fmt"

// DependencyType classifies a routing relationship for cycle detection.
// Only strong dependencies participate in the acyclicity check; weak
// markup is the sanctioned way to break an otherwise-illegal cycle.
type DependencyType string

const (
	DependencyStrong           DependencyType = "strong"
	DependencyWeak             DependencyType = "weak"
	DependencyWeakForMigration DependencyType = "weak_for_migration"
)

// ParseDependencyType parses the string encoding of a DependencyType.
// The empty string resolves to DependencyStrong.
func ParseDependencyType(s string) (DependencyType, error) {
	switch DependencyType(s) {
	case "":
		return DependencyStrong, nil
	case DependencyStrong, DependencyWeak, DependencyWeakForMigration:
		return DependencyType(s), nil
	}
	return "", fmt.Errorf("invalid dependency type %q: must be one of \"strong\", \"weak\", \"weak_for_migration\"", s)
}

// IsWeak reports whether the dependency is excluded from cycle
// detection.
func (d DependencyType) IsWeak() bool {
	return d == DependencyWeak || d == DependencyWeakForMigration
}

// Availability states how a routed capability's presence is guaranteed.
type Availability string

const (
	AvailabilityRequired     Availability = "required"
	AvailabilityOptional     Availability = "optional"
	AvailabilitySameAsTarget Availability = "same_as_target"
	AvailabilityTransitional Availability = "transitional"
)

// ParseAvailability parses the string encoding of an Availability.
// The empty string resolves to AvailabilityRequired.
func ParseAvailability(s string) (Availability, error) {
	switch Availability(s) {
	case "":
		return AvailabilityRequired, nil
	case AvailabilityRequired, AvailabilityOptional, AvailabilitySameAsTarget, AvailabilityTransitional:
		return Availability(s), nil
	}
	return "", fmt.Errorf("invalid availability %q: must be one of \"required\", \"optional\", \"same_as_target\", \"transitional\"", s)
}

// StartupMode controls when a child is started.
type StartupMode string

const (
	StartupLazy  StartupMode = "lazy"
	StartupEager StartupMode = "eager"
)

// ParseStartupMode parses the string encoding of a StartupMode.
// The empty string resolves to StartupLazy.
func ParseStartupMode(s string) (StartupMode, error) {
	switch StartupMode(s) {
	case "":
		return StartupLazy, nil
	case StartupLazy, StartupEager:
		return StartupMode(s), nil
	}
	return "", fmt.Errorf("invalid startup mode %q: must be \"lazy\" or \"eager\"", s)
}

// OnTerminate is the action taken when a child terminates.
type OnTerminate string

const (
	OnTerminateNone   OnTerminate = "none"
	OnTerminateReboot OnTerminate = "reboot"
)

// ParseOnTerminate parses the string encoding of an OnTerminate.
// The empty string resolves to OnTerminateNone.
func ParseOnTerminate(s string) (OnTerminate, error) {
	switch OnTerminate(s) {
	case "":
		return OnTerminateNone, nil
	case OnTerminateNone, OnTerminateReboot:
		return OnTerminate(s), nil
	}
	return "", fmt.Errorf("invalid on_terminate %q: must be \"none\" or \"reboot\"", s)
}

// Durability states how long instances in a collection survive.
type Durability string

const (
	DurabilityTransient  Durability = "transient"
	DurabilitySingleRun  Durability = "single_run"
	DurabilityPersistent Durability = "persistent"
)

// ParseDurability parses the string encoding of a Durability.
func ParseDurability(s string) (Durability, error) {
	switch Durability(s) {
	case DurabilityTransient, DurabilitySingleRun, DurabilityPersistent:
		return Durability(s), nil
	}
	return "", fmt.Errorf("invalid durability %q: must be one of \"transient\", \"single_run\", \"persistent\"", s)
}

// EnvironmentExtends states what an environment inherits from.
type EnvironmentExtends string

const (
	ExtendsNone  EnvironmentExtends = "none"
	ExtendsRealm EnvironmentExtends = "realm"
)

// ParseEnvironmentExtends parses the string encoding of an
// EnvironmentExtends.
func ParseEnvironmentExtends(s string) (EnvironmentExtends, error) {
	switch EnvironmentExtends(s) {
	case ExtendsNone, ExtendsRealm:
		return EnvironmentExtends(s), nil
	}
	return "", fmt.Errorf("invalid extends %q: must be \"none\" or \"realm\"", s)
}

// EventMode is the delivery mode of an event subscription.
type EventMode string

const (
	EventModeSync  EventMode = "sync"
	EventModeAsync EventMode = "async"
)

// ParseEventMode parses the string encoding of an EventMode.
func ParseEventMode(s string) (EventMode, error) {
	switch EventMode(s) {
	case EventModeSync, EventModeAsync:
		return EventMode(s), nil
	}
	return "", fmt.Errorf("invalid event mode %q: must be \"sync\" or \"async\"", s)
}
