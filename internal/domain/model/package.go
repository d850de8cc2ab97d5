package model

// PackageSource tells whether a package came from a group or from leftovers.
type PackageSource string

const (
	// SourceGroup marks a package formed by a stacking group.
	SourceGroup PackageSource = "group"
	// SourceLoose marks the package holding ungrouped units.
	SourceLoose PackageSource = "loose"
)

// ContentLine is a product quantity consumed into a package.
type ContentLine struct {
	ProductID int64 `json:"product_id" example:"101"`
	Quantity  int   `json:"quantity" example:"2"`
}

// Package is a shippable unit derived by the matcher.
//
// @Description Derived package with dimensions (cm) and weight (kg)
type Package struct {
	Source        PackageSource `json:"source" example:"group"`
	GroupID       string        `json:"group_id,omitempty"`
	InstanceCount int           `json:"instance_count,omitempty" example:"2"`
	Contents      []ContentLine `json:"contents"`
	Weight        float64       `json:"weight" example:"3"`
	Height        float64       `json:"height" example:"15"`
	Width         float64       `json:"width" example:"30"`
	Length        float64       `json:"length" example:"40"`
}

// Volume returns height × width × length in cm³.
func (p Package) Volume() float64 {
	return p.Height * p.Width * p.Length
}

// Units returns the number of product units inside the package.
func (p Package) Units() int {
	total := 0
	for _, c := range p.Contents {
		total += c.Quantity
	}
	return total
}

// Summary aggregates a list of packages for the rate calculator.
type Summary struct {
	PackageCount int     `json:"package_count" example:"2"`
	GroupedUnits int     `json:"grouped_units" example:"4"`
	LooseUnits   int     `json:"loose_units" example:"1"`
	TotalWeight  float64 `json:"total_weight" example:"7"`
	TotalVolume  float64 `json:"total_volume" example:"16000"`
}

// Shipment is the result of one shipping simulation.
//
// @Description Packages produced for a cart plus aggregate totals
type Shipment struct {
	Strategy string    `json:"strategy" example:"min_volume"`
	Packages []Package `json:"packages"`
	Summary  Summary   `json:"summary"`
	// Truncated is set when the search hit its branch limit and the cart
	// was shipped as a single loose package.
	Truncated bool `json:"truncated" example:"false"`
	// CatalogUnavailable is set when the group store could not be read and
	// every unit shipped loose.
	CatalogUnavailable bool `json:"catalog_unavailable,omitempty" example:"false"`
}

// Summarize computes aggregate totals over packages.
func Summarize(packages []Package) Summary {
	s := Summary{PackageCount: len(packages)}
	for _, p := range packages {
		if p.Source == SourceGroup {
			s.GroupedUnits += p.Units()
		} else {
			s.LooseUnits += p.Units()
		}
		s.TotalWeight += p.Weight
		s.TotalVolume += p.Volume()
	}
	return s
}
