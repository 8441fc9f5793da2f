package parser

import (
	"encoding/json"
	"fmt"
)

// oneOrMany accepts either a bare string or a list of strings, the way
// manifest source form allows `protocol: "a"` and `protocol: ["a","b"]`
// interchangeably.
type oneOrMany []string

func (l *oneOrMany) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*l = oneOrMany{single}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("expected a string or a list of strings")
	}
	*l = oneOrMany(many)
	return nil
}

func (l *oneOrMany) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*l = oneOrMany{single}
		return nil
	}
	var many []string
	if err := unmarshal(&many); err != nil {
		return fmt.Errorf("expected a string or a list of strings")
	}
	*l = oneOrMany(many)
	return nil
}

// rawDocument is the source form of a manifest before expansion into
// the typed document model.
type rawDocument struct {
	SchemaVersion string `json:"schema_version,omitempty" yaml:"schema_version,omitempty"`

	Use          []rawUse         `json:"use,omitempty" yaml:"use,omitempty"`
	Expose       []rawExpose      `json:"expose,omitempty" yaml:"expose,omitempty"`
	Offer        []rawOffer       `json:"offer,omitempty" yaml:"offer,omitempty"`
	Capabilities []rawCapability  `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
	Children     []rawChild       `json:"children,omitempty" yaml:"children,omitempty"`
	Collections  []rawCollection  `json:"collections,omitempty" yaml:"collections,omitempty"`
	Environments []rawEnvironment `json:"environments,omitempty" yaml:"environments,omitempty"`
	Disable      rawDisable       `json:"disable,omitempty" yaml:"disable,omitempty"`

	Config map[string]interface{} `json:"config,omitempty" yaml:"config,omitempty"`
}

// rawUse is one entry under "use". Exactly one capability-kind field
// must be set; a multi-name field expands to one declaration per name.
type rawUse struct {
	Service     oneOrMany `json:"service,omitempty" yaml:"service,omitempty"`
	Protocol    oneOrMany `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	Directory   oneOrMany `json:"directory,omitempty" yaml:"directory,omitempty"`
	Storage     oneOrMany `json:"storage,omitempty" yaml:"storage,omitempty"`
	Event       oneOrMany `json:"event,omitempty" yaml:"event,omitempty"`
	EventStream string    `json:"event_stream,omitempty" yaml:"event_stream,omitempty"`

	From         string            `json:"from,omitempty" yaml:"from,omitempty"`
	Path         string            `json:"path,omitempty" yaml:"path,omitempty"`
	As           string            `json:"as,omitempty" yaml:"as,omitempty"`
	Rights       []string          `json:"rights,omitempty" yaml:"rights,omitempty"`
	Subdir       string            `json:"subdir,omitempty" yaml:"subdir,omitempty"`
	Dependency   string            `json:"dependency,omitempty" yaml:"dependency,omitempty"`
	Availability string            `json:"availability,omitempty" yaml:"availability,omitempty"`
	Filter       map[string]string `json:"filter,omitempty" yaml:"filter,omitempty"`
	Mode         string            `json:"mode,omitempty" yaml:"mode,omitempty"`

	Subscriptions oneOrMany `json:"subscriptions,omitempty" yaml:"subscriptions,omitempty"`
}

// rawOffer is one entry under "offer". Both the capability field and
// "to" may name several entries; the cross product expands.
type rawOffer struct {
	Service     oneOrMany `json:"service,omitempty" yaml:"service,omitempty"`
	Protocol    oneOrMany `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	Directory   oneOrMany `json:"directory,omitempty" yaml:"directory,omitempty"`
	Storage     oneOrMany `json:"storage,omitempty" yaml:"storage,omitempty"`
	Runner      oneOrMany `json:"runner,omitempty" yaml:"runner,omitempty"`
	Resolver    oneOrMany `json:"resolver,omitempty" yaml:"resolver,omitempty"`
	Event       oneOrMany `json:"event,omitempty" yaml:"event,omitempty"`
	EventStream oneOrMany `json:"event_stream,omitempty" yaml:"event_stream,omitempty"`

	From         string            `json:"from,omitempty" yaml:"from,omitempty"`
	To           oneOrMany         `json:"to,omitempty" yaml:"to,omitempty"`
	As           string            `json:"as,omitempty" yaml:"as,omitempty"`
	Rights       []string          `json:"rights,omitempty" yaml:"rights,omitempty"`
	Subdir       string            `json:"subdir,omitempty" yaml:"subdir,omitempty"`
	Dependency   string            `json:"dependency,omitempty" yaml:"dependency,omitempty"`
	Availability string            `json:"availability,omitempty" yaml:"availability,omitempty"`
	Filter       map[string]string `json:"filter,omitempty" yaml:"filter,omitempty"`
	Mode         string            `json:"mode,omitempty" yaml:"mode,omitempty"`
}

// rawExpose is one entry under "expose".
type rawExpose struct {
	Service   oneOrMany `json:"service,omitempty" yaml:"service,omitempty"`
	Protocol  oneOrMany `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	Directory oneOrMany `json:"directory,omitempty" yaml:"directory,omitempty"`
	Runner    oneOrMany `json:"runner,omitempty" yaml:"runner,omitempty"`
	Resolver  oneOrMany `json:"resolver,omitempty" yaml:"resolver,omitempty"`

	From         string   `json:"from,omitempty" yaml:"from,omitempty"`
	To           string   `json:"to,omitempty" yaml:"to,omitempty"`
	As           string   `json:"as,omitempty" yaml:"as,omitempty"`
	Rights       []string `json:"rights,omitempty" yaml:"rights,omitempty"`
	Subdir       string   `json:"subdir,omitempty" yaml:"subdir,omitempty"`
	Availability string   `json:"availability,omitempty" yaml:"availability,omitempty"`
}

// rawCapability is one entry under "capabilities".
type rawCapability struct {
	Service     oneOrMany `json:"service,omitempty" yaml:"service,omitempty"`
	Protocol    oneOrMany `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	Directory   string    `json:"directory,omitempty" yaml:"directory,omitempty"`
	Storage     string    `json:"storage,omitempty" yaml:"storage,omitempty"`
	Runner      string    `json:"runner,omitempty" yaml:"runner,omitempty"`
	Resolver    string    `json:"resolver,omitempty" yaml:"resolver,omitempty"`
	Event       oneOrMany `json:"event,omitempty" yaml:"event,omitempty"`
	EventStream string    `json:"event_stream,omitempty" yaml:"event_stream,omitempty"`

	Path       string   `json:"path,omitempty" yaml:"path,omitempty"`
	Rights     []string `json:"rights,omitempty" yaml:"rights,omitempty"`
	From       string   `json:"from,omitempty" yaml:"from,omitempty"`
	BackingDir string   `json:"backing_dir,omitempty" yaml:"backing_dir,omitempty"`
	Subdir     string   `json:"subdir,omitempty" yaml:"subdir,omitempty"`
	StorageID  string   `json:"storage_id,omitempty" yaml:"storage_id,omitempty"`
}

type rawChild struct {
	Name        string `json:"name,omitempty" yaml:"name,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
	Startup     string `json:"startup,omitempty" yaml:"startup,omitempty"`
	Environment string `json:"environment,omitempty" yaml:"environment,omitempty"`
	OnTerminate string `json:"on_terminate,omitempty" yaml:"on_terminate,omitempty"`
}

type rawCollection struct {
	Name          string `json:"name,omitempty" yaml:"name,omitempty"`
	Durability    string `json:"durability,omitempty" yaml:"durability,omitempty"`
	AllowedOffers string `json:"allowed_offers,omitempty" yaml:"allowed_offers,omitempty"`
	Environment   string `json:"environment,omitempty" yaml:"environment,omitempty"`
}

type rawRunnerRegistration struct {
	Runner string `json:"runner,omitempty" yaml:"runner,omitempty"`
	From   string `json:"from,omitempty" yaml:"from,omitempty"`
	As     string `json:"as,omitempty" yaml:"as,omitempty"`
}

type rawResolverRegistration struct {
	Resolver string `json:"resolver,omitempty" yaml:"resolver,omitempty"`
	From     string `json:"from,omitempty" yaml:"from,omitempty"`
	Scheme   string `json:"scheme,omitempty" yaml:"scheme,omitempty"`
}

type rawDebugRegistration struct {
	Protocol string `json:"protocol,omitempty" yaml:"protocol,omitempty"`
	From     string `json:"from,omitempty" yaml:"from,omitempty"`
	As       string `json:"as,omitempty" yaml:"as,omitempty"`
}

type rawEnvironment struct {
	Name          string                    `json:"name,omitempty" yaml:"name,omitempty"`
	Extends       string                    `json:"extends,omitempty" yaml:"extends,omitempty"`
	StopTimeoutMs *uint32                   `json:"stop_timeout_ms,omitempty" yaml:"stop_timeout_ms,omitempty"`
	Runners       []rawRunnerRegistration   `json:"runners,omitempty" yaml:"runners,omitempty"`
	Resolvers     []rawResolverRegistration `json:"resolvers,omitempty" yaml:"resolvers,omitempty"`
	Debug         []rawDebugRegistration    `json:"debug,omitempty" yaml:"debug,omitempty"`
}

type rawDisable struct {
	MustOffer []string `json:"must_offer,omitempty" yaml:"must_offer,omitempty"`
	MustUse   []string `json:"must_use,omitempty" yaml:"must_use,omitempty"`
}
