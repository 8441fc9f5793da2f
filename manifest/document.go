package manifest

// Disable names protocols exempted from externally imposed must-offer /
// must-use requirements. Entries may be doublestar-style patterns.
type Disable struct {
	MustOffer []string
	MustUse   []string
}

// Document is a fully parsed component manifest. Every section is
// independently optional: a nil slice means no declarations of that
// kind and is never an error.
type Document struct {
	Uses         []Use
	Exposes      []Expose
	Offers       []Offer
	Capabilities []Capability
	Children     []Child
	Collections  []Collection
	Environments []Environment
	Disable      Disable

	// Config carries the component's structured-config section. It is
	// preserved through parsing but not validated here.
	Config map[string]interface{}
}
