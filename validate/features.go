package validate

// Feature names an optional manifest syntax gate. Validators report a
// RestrictedFeature error when gated syntax appears in a manifest
// whose feature set does not include the gate.
type Feature string

const (
	// FeatureAllowLongNames relaxes the capability-name length bound
	// from 100 to 255 bytes.
	FeatureAllowLongNames Feature = "allow_long_names"

	// FeatureDynamicOffers permits the allowed_offers policy on
	// collections.
	FeatureDynamicOffers Feature = "dynamic_offers"

	// FeatureHubAccess permits using the framework hub directory.
	FeatureHubAccess Feature = "hub_access"
)

// ParseFeature parses a feature name.
func ParseFeature(s string) (Feature, bool) {
	switch Feature(s) {
	case FeatureAllowLongNames, FeatureDynamicOffers, FeatureHubAccess:
		return Feature(s), true
	}
	return "", false
}

// FeatureSet is the set of features enabled for one validation run.
type FeatureSet map[Feature]bool

// NewFeatureSet creates a FeatureSet holding the given features.
func NewFeatureSet(features ...Feature) FeatureSet {
	set := make(FeatureSet, len(features))
	for _, f := range features {
		set[f] = true
	}
	return set
}

// Has reports whether the feature is enabled.
func (s FeatureSet) Has(f Feature) bool {
	return s[f]
}
