package parser

import (
	"fmt"

	"github.com/Masterminds/semver/v3"

	"github.com/routekit-dev/routekit/diag"
	"github.com/routekit-dev/routekit/manifest"
	"github.com/routekit-dev/routekit/manifest/values"
)

// supportedSchema bounds the manifest schema versions this parser
// understands. Documents without a schema_version are treated as
// current.
var supportedSchema = mustConstraint("^1")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// converter accumulates parse errors while expanding a raw document.
// A declaration naming several capabilities or targets expands to one
// typed declaration per capability-target pair.
type converter struct {
	errs *diag.List
}

func (c *converter) fail(format string, args ...interface{}) {
	c.errs.Add(diag.NewParse(fmt.Sprintf(format, args...)))
}

// document expands the raw source form into a typed Document. On any
// parse error the document is withheld and the accumulated list
// returned instead.
func (raw *rawDocument) document() (*manifest.Document, error) {
	c := &converter{errs: diag.NewList()}

	c.checkSchemaVersion(raw.SchemaVersion)

	doc := &manifest.Document{
		Disable: manifest.Disable{
			MustOffer: raw.Disable.MustOffer,
			MustUse:   raw.Disable.MustUse,
		},
		Config: raw.Config,
	}

	for _, u := range raw.Use {
		doc.Uses = append(doc.Uses, c.convertUse(u)...)
	}
	for _, o := range raw.Offer {
		doc.Offers = append(doc.Offers, c.convertOffer(o)...)
	}
	for _, e := range raw.Expose {
		doc.Exposes = append(doc.Exposes, c.convertExpose(e)...)
	}
	for _, capability := range raw.Capabilities {
		doc.Capabilities = append(doc.Capabilities, c.convertCapability(capability)...)
	}
	for _, child := range raw.Children {
		doc.Children = append(doc.Children, c.convertChild(child))
	}
	for _, coll := range raw.Collections {
		doc.Collections = append(doc.Collections, c.convertCollection(coll))
	}
	for _, env := range raw.Environments {
		doc.Environments = append(doc.Environments, c.convertEnvironment(env))
	}

	if err := c.errs.Err(); err != nil {
		return nil, err
	}
	return doc, nil
}

func (c *converter) checkSchemaVersion(s string) {
	if s == "" {
		return
	}
	version, err := semver.NewVersion(s)
	if err != nil {
		c.fail("invalid schema_version %q: %v", s, err)
		return
	}
	if !supportedSchema.Check(version) {
		c.fail("unsupported schema_version %q: this tool understands %s", s, supportedSchema)
	}
}

// name parses a capability or entity name. The relaxed long-name bound
// applies here; the strict bound is feature-gated and enforced by the
// validator.
func (c *converter) name(s, field string) values.Name {
	if s == "" {
		return values.Name{}
	}
	n, err := values.NewLongName(s)
	if err != nil {
		c.fail("invalid %s: %v", field, err)
		return values.Name{}
	}
	return n
}

func (c *converter) path(s, field string) values.Path {
	if s == "" {
		return values.Path{}
	}
	p, err := values.NewPath(s)
	if err != nil {
		c.fail("invalid %s: %v", field, err)
		return values.Path{}
	}
	return p
}

func (c *converter) relPath(s, field string) values.RelativePath {
	if s == "" {
		return values.RelativePath{}
	}
	p, err := values.NewRelativePath(s)
	if err != nil {
		c.fail("invalid %s: %v", field, err)
		return values.RelativePath{}
	}
	return p
}

func (c *converter) ref(s, field string) values.Reference {
	if s == "" {
		return values.Reference{}
	}
	r, err := values.ParseReference(s)
	if err != nil {
		c.fail("invalid %s: %v", field, err)
		return values.Reference{}
	}
	return r
}

func (c *converter) availability(s string) values.Availability {
	if s == "" {
		// Left unset so void-source defaulting stays observable.
		return ""
	}
	a, err := values.ParseAvailability(s)
	if err != nil {
		c.fail("%v", err)
		return ""
	}
	return a
}

func (c *converter) dependency(s string) values.DependencyType {
	if s == "" {
		return ""
	}
	d, err := values.ParseDependencyType(s)
	if err != nil {
		c.fail("%v", err)
		return ""
	}
	return d
}

func (c *converter) eventMode(s string) values.EventMode {
	if s == "" {
		return ""
	}
	m, err := values.ParseEventMode(s)
	if err != nil {
		c.fail("%v", err)
		return ""
	}
	return m
}

// singleKind enforces that exactly one capability-kind field is set on
// a declaration and returns the names under it.
func (c *converter) singleKind(section string, kinds map[manifest.CapabilityKind][]string) (manifest.CapabilityKind, []string, bool) {
	var found manifest.CapabilityKind
	var names []string
	count := 0
	for kind, kindNames := range kinds {
		if len(kindNames) > 0 {
			found, names = kind, kindNames
			count++
		}
	}
	switch count {
	case 1:
		return found, names, true
	case 0:
		c.fail("%s declaration names no capability", section)
	default:
		c.fail("%s declaration names more than one capability kind", section)
	}
	return "", nil, false
}

// checkSingular rejects `path`/`as` on declarations expanding to more
// than one capability: the alias would have to apply to all of them.
func (c *converter) checkSingular(section string, names []string, path, as string) bool {
	if len(names) <= 1 || (path == "" && as == "") {
		return true
	}
	c.fail(`"path"/"as" can only be specified when one capability is supplied in a %s declaration`, section)
	return false
}

// svcPath resolves the target path of a service-like use: explicit, or
// the conventional /svc/<name> mount.
func (c *converter) svcPath(explicit, name string) values.Path {
	if explicit != "" {
		return c.path(explicit, "use path")
	}
	return c.path("/svc/"+name, "use path")
}

func (c *converter) convertUse(raw rawUse) []manifest.Use {
	var eventStream []string
	if raw.EventStream != "" {
		eventStream = []string{raw.EventStream}
	}
	kind, names, ok := c.singleKind("use", map[manifest.CapabilityKind][]string{
		manifest.KindService:     raw.Service,
		manifest.KindProtocol:    raw.Protocol,
		manifest.KindDirectory:   raw.Directory,
		manifest.KindStorage:     raw.Storage,
		manifest.KindEvent:       raw.Event,
		manifest.KindEventStream: eventStream,
	})
	if !ok || !c.checkSingular("use", names, raw.Path, raw.As) {
		return nil
	}

	source := c.ref(raw.From, "use from")
	availability := c.availability(raw.Availability)
	dependency := c.dependency(raw.Dependency)

	uses := make([]manifest.Use, 0, len(names))
	for _, name := range names {
		switch kind {
		case manifest.KindService:
			uses = append(uses, &manifest.UseService{
				Source:       source,
				SourceName:   c.name(name, "use service"),
				TargetPath:   c.svcPath(raw.Path, name),
				Availability: availability,
			})
		case manifest.KindProtocol:
			uses = append(uses, &manifest.UseProtocol{
				Source:         source,
				SourceName:     c.name(name, "use protocol"),
				TargetPath:     c.svcPath(raw.Path, name),
				DependencyType: dependency,
				Availability:   availability,
			})
		case manifest.KindDirectory:
			uses = append(uses, &manifest.UseDirectory{
				Source:         source,
				SourceName:     c.name(name, "use directory"),
				TargetPath:     c.path(raw.Path, "use path"),
				Rights:         raw.Rights,
				Subdir:         c.relPath(raw.Subdir, "use subdir"),
				DependencyType: dependency,
				Availability:   availability,
			})
		case manifest.KindStorage:
			uses = append(uses, &manifest.UseStorage{
				SourceName:   c.name(name, "use storage"),
				TargetPath:   c.path(raw.Path, "use path"),
				Availability: availability,
			})
		case manifest.KindEvent:
			targetName := name
			if raw.As != "" {
				targetName = raw.As
			}
			uses = append(uses, &manifest.UseEvent{
				Source:       source,
				SourceName:   c.name(name, "use event"),
				TargetName:   c.name(targetName, "use event as"),
				Filter:       raw.Filter,
				Mode:         c.eventMode(raw.Mode),
				Availability: availability,
			})
		case manifest.KindEventStream:
			subscriptions := make([]manifest.Subscription, 0, len(raw.Subscriptions))
			for _, event := range raw.Subscriptions {
				subscriptions = append(subscriptions, manifest.Subscription{
					EventName: c.name(event, "use event_stream subscription"),
				})
			}
			uses = append(uses, &manifest.UseEventStream{
				TargetPath:    c.path(name, "use event_stream"),
				Subscriptions: subscriptions,
				Availability:  availability,
			})
		}
	}
	return uses
}

func (c *converter) convertOffer(raw rawOffer) []manifest.Offer {
	kind, names, ok := c.singleKind("offer", map[manifest.CapabilityKind][]string{
		manifest.KindService:     raw.Service,
		manifest.KindProtocol:    raw.Protocol,
		manifest.KindDirectory:   raw.Directory,
		manifest.KindStorage:     raw.Storage,
		manifest.KindRunner:      raw.Runner,
		manifest.KindResolver:    raw.Resolver,
		manifest.KindEvent:       raw.Event,
		manifest.KindEventStream: raw.EventStream,
	})
	if !ok || !c.checkSingular("offer", names, "", raw.As) {
		return nil
	}

	source := c.ref(raw.From, "offer from")
	availability := c.availability(raw.Availability)
	dependency := c.dependency(raw.Dependency)

	// An offer with no "to" still expands once per name so the missing
	// target surfaces as a validation finding on each declaration.
	targets := raw.To
	if len(targets) == 0 {
		targets = oneOrMany{""}
	}

	offers := make([]manifest.Offer, 0, len(names)*len(targets))
	for _, name := range names {
		sourceName := c.name(name, "offer capability")
		targetName := sourceName
		if raw.As != "" {
			targetName = c.name(raw.As, "offer as")
		}
		for _, to := range targets {
			target := c.ref(to, "offer to")
			switch kind {
			case manifest.KindService:
				offers = append(offers, &manifest.OfferService{
					Source: source, SourceName: sourceName,
					Target: target, TargetName: targetName,
					Availability: availability,
				})
			case manifest.KindProtocol:
				offers = append(offers, &manifest.OfferProtocol{
					Source: source, SourceName: sourceName,
					Target: target, TargetName: targetName,
					DependencyType: dependency,
					Availability:   availability,
				})
			case manifest.KindDirectory:
				offers = append(offers, &manifest.OfferDirectory{
					Source: source, SourceName: sourceName,
					Target: target, TargetName: targetName,
					Rights:         raw.Rights,
					Subdir:         c.relPath(raw.Subdir, "offer subdir"),
					DependencyType: dependency,
					Availability:   availability,
				})
			case manifest.KindStorage:
				storage := &manifest.OfferStorage{
					Source: source, SourceName: sourceName,
					Target:       target,
					Availability: availability,
				}
				if raw.As != "" {
					storage.TargetName = targetName
				}
				offers = append(offers, storage)
			case manifest.KindRunner:
				offers = append(offers, &manifest.OfferRunner{
					Source: source, SourceName: sourceName,
					Target: target, TargetName: targetName,
				})
			case manifest.KindResolver:
				offers = append(offers, &manifest.OfferResolver{
					Source: source, SourceName: sourceName,
					Target: target, TargetName: targetName,
				})
			case manifest.KindEvent:
				offers = append(offers, &manifest.OfferEvent{
					Source: source, SourceName: sourceName,
					Target: target, TargetName: targetName,
					Filter:       raw.Filter,
					Mode:         c.eventMode(raw.Mode),
					Availability: availability,
				})
			case manifest.KindEventStream:
				offers = append(offers, &manifest.OfferEventStream{
					Source: source, SourceName: sourceName,
					Target: target, TargetName: targetName,
					Availability: availability,
				})
			}
		}
	}
	return offers
}

func (c *converter) convertExpose(raw rawExpose) []manifest.Expose {
	kind, names, ok := c.singleKind("expose", map[manifest.CapabilityKind][]string{
		manifest.KindService:   raw.Service,
		manifest.KindProtocol:  raw.Protocol,
		manifest.KindDirectory: raw.Directory,
		manifest.KindRunner:    raw.Runner,
		manifest.KindResolver:  raw.Resolver,
	})
	if !ok || !c.checkSingular("expose", names, "", raw.As) {
		return nil
	}

	source := c.ref(raw.From, "expose from")
	availability := c.availability(raw.Availability)

	// Exposes default to the parent scope.
	to := raw.To
	if to == "" {
		to = "parent"
	}
	target := c.ref(to, "expose to")

	exposes := make([]manifest.Expose, 0, len(names))
	for _, name := range names {
		sourceName := c.name(name, "expose capability")
		targetName := sourceName
		if raw.As != "" {
			targetName = c.name(raw.As, "expose as")
		}
		switch kind {
		case manifest.KindService:
			exposes = append(exposes, &manifest.ExposeService{
				Source: source, SourceName: sourceName,
				Target: target, TargetName: targetName,
				Availability: availability,
			})
		case manifest.KindProtocol:
			exposes = append(exposes, &manifest.ExposeProtocol{
				Source: source, SourceName: sourceName,
				Target: target, TargetName: targetName,
				Availability: availability,
			})
		case manifest.KindDirectory:
			exposes = append(exposes, &manifest.ExposeDirectory{
				Source: source, SourceName: sourceName,
				Target: target, TargetName: targetName,
				Rights:       raw.Rights,
				Subdir:       c.relPath(raw.Subdir, "expose subdir"),
				Availability: availability,
			})
		case manifest.KindRunner:
			exposes = append(exposes, &manifest.ExposeRunner{
				Source: source, SourceName: sourceName,
				Target: target, TargetName: targetName,
			})
		case manifest.KindResolver:
			exposes = append(exposes, &manifest.ExposeResolver{
				Source: source, SourceName: sourceName,
				Target: target, TargetName: targetName,
			})
		}
	}
	return exposes
}

func (c *converter) convertCapability(raw rawCapability) []manifest.Capability {
	var directory, storage, runner, resolver, eventStream []string
	if raw.Directory != "" {
		directory = []string{raw.Directory}
	}
	if raw.Storage != "" {
		storage = []string{raw.Storage}
	}
	if raw.Runner != "" {
		runner = []string{raw.Runner}
	}
	if raw.Resolver != "" {
		resolver = []string{raw.Resolver}
	}
	if raw.EventStream != "" {
		eventStream = []string{raw.EventStream}
	}
	kind, names, ok := c.singleKind("capability", map[manifest.CapabilityKind][]string{
		manifest.KindService:     raw.Service,
		manifest.KindProtocol:    raw.Protocol,
		manifest.KindDirectory:   directory,
		manifest.KindStorage:     storage,
		manifest.KindRunner:      runner,
		manifest.KindResolver:    resolver,
		manifest.KindEvent:       raw.Event,
		manifest.KindEventStream: eventStream,
	})
	if !ok || !c.checkSingular("capability", names, raw.Path, "") {
		return nil
	}
	c.checkCapabilityFields(kind, raw)

	capabilities := make([]manifest.Capability, 0, len(names))
	for _, name := range names {
		capabilityName := c.name(name, "capability name")
		switch kind {
		case manifest.KindService:
			capabilities = append(capabilities, &manifest.ServiceCapability{
				Name: capabilityName,
				Path: c.path(raw.Path, "capability path"),
			})
		case manifest.KindProtocol:
			capabilities = append(capabilities, &manifest.ProtocolCapability{
				Name: capabilityName,
				Path: c.path(raw.Path, "capability path"),
			})
		case manifest.KindDirectory:
			capabilities = append(capabilities, &manifest.DirectoryCapability{
				Name:   capabilityName,
				Path:   c.path(raw.Path, "capability path"),
				Rights: raw.Rights,
			})
		case manifest.KindStorage:
			capabilities = append(capabilities, &manifest.StorageCapability{
				Name:       capabilityName,
				Source:     c.ref(raw.From, "capability from"),
				BackingDir: c.name(raw.BackingDir, "capability backing_dir"),
				Subdir:     c.relPath(raw.Subdir, "capability subdir"),
				StorageID:  manifest.StorageID(raw.StorageID),
			})
		case manifest.KindRunner:
			capabilities = append(capabilities, &manifest.RunnerCapability{
				Name: capabilityName,
				Path: c.path(raw.Path, "capability path"),
			})
		case manifest.KindResolver:
			capabilities = append(capabilities, &manifest.ResolverCapability{
				Name: capabilityName,
				Path: c.path(raw.Path, "capability path"),
			})
		case manifest.KindEvent:
			capabilities = append(capabilities, &manifest.EventCapability{Name: capabilityName})
		case manifest.KindEventStream:
			capabilities = append(capabilities, &manifest.EventStreamCapability{Name: capabilityName})
		}
	}
	return capabilities
}

// checkCapabilityFields rejects fields that do not apply to the
// declared capability kind instead of silently dropping them: storage
// forbids path and rights, every kind but storage forbids the
// storage-routing fields, and only directories take rights.
func (c *converter) checkCapabilityFields(kind manifest.CapabilityKind, raw rawCapability) {
	forbid := func(field string, set bool) {
		if set {
			c.fail("%q cannot be specified in %s capability declarations", field, kind)
		}
	}
	switch kind {
	case manifest.KindStorage, manifest.KindEvent, manifest.KindEventStream:
		forbid("path", raw.Path != "")
	}
	if kind != manifest.KindDirectory {
		forbid("rights", len(raw.Rights) > 0)
	}
	if kind != manifest.KindStorage {
		forbid("from", raw.From != "")
		forbid("backing_dir", raw.BackingDir != "")
		forbid("subdir", raw.Subdir != "")
		forbid("storage_id", raw.StorageID != "")
	}
}

// envName accepts both bare environment names and "#name" references.
func (c *converter) envName(s, field string) values.Name {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	return c.name(s, field)
}

func (c *converter) convertChild(raw rawChild) manifest.Child {
	child := manifest.Child{
		Name:        c.name(raw.Name, "child name"),
		Environment: c.envName(raw.Environment, "child environment"),
	}
	if raw.URL != "" {
		url, err := values.NewURL(raw.URL)
		if err != nil {
			c.fail("invalid child url: %v", err)
		} else {
			child.URL = url
		}
	}
	if raw.Startup != "" {
		startup, err := values.ParseStartupMode(raw.Startup)
		if err != nil {
			c.fail("%v", err)
		} else {
			child.Startup = startup
		}
	}
	if raw.OnTerminate != "" {
		onTerminate, err := values.ParseOnTerminate(raw.OnTerminate)
		if err != nil {
			c.fail("%v", err)
		} else {
			child.OnTerminate = onTerminate
		}
	}
	return child
}

func (c *converter) convertCollection(raw rawCollection) manifest.Collection {
	coll := manifest.Collection{
		Name:          c.name(raw.Name, "collection name"),
		AllowedOffers: manifest.AllowedOffers(raw.AllowedOffers),
		Environment:   c.envName(raw.Environment, "collection environment"),
	}
	if raw.Durability != "" {
		durability, err := values.ParseDurability(raw.Durability)
		if err != nil {
			c.fail("%v", err)
		} else {
			coll.Durability = durability
		}
	}
	return coll
}

func (c *converter) convertEnvironment(raw rawEnvironment) manifest.Environment {
	env := manifest.Environment{
		Name:          c.name(raw.Name, "environment name"),
		StopTimeoutMs: raw.StopTimeoutMs,
	}
	if raw.Extends != "" {
		extends, err := values.ParseEnvironmentExtends(raw.Extends)
		if err != nil {
			c.fail("%v", err)
		} else {
			env.Extends = extends
		}
	}
	for _, reg := range raw.Runners {
		targetName := reg.Runner
		if reg.As != "" {
			targetName = reg.As
		}
		env.Runners = append(env.Runners, manifest.RunnerRegistration{
			Source:     c.ref(reg.From, "runner from"),
			SourceName: c.name(reg.Runner, "runner name"),
			TargetName: c.name(targetName, "runner as"),
		})
	}
	for _, reg := range raw.Resolvers {
		env.Resolvers = append(env.Resolvers, manifest.ResolverRegistration{
			Source:   c.ref(reg.From, "resolver from"),
			Resolver: c.name(reg.Resolver, "resolver name"),
			Scheme:   reg.Scheme,
		})
	}
	for _, reg := range raw.Debug {
		targetName := reg.Protocol
		if reg.As != "" {
			targetName = reg.As
		}
		env.Debugs = append(env.Debugs, manifest.DebugRegistration{
			Source:     c.ref(reg.From, "debug from"),
			SourceName: c.name(reg.Protocol, "debug protocol"),
			TargetName: c.name(targetName, "debug as"),
		})
	}
	return env
}
