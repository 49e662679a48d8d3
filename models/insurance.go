package models

import "time"

type Coverage struct {
	Name  string `bson:"name" json:"name" validate:"required"`
	Limit Money  `bson:"limit" json:"limit"`
}

type Premium struct {
	AgeGroup string `bson:"ageGroup" json:"ageGroup" validate:"required"`
	Price    Money  `bson:"price" json:"price"`
}

// InsurancePlan is a travel insurance product.
type InsurancePlan struct {
	InventoryMeta `bson:",inline"`
	Name          string     `bson:"name" json:"name" validate:"required"`
	PolicyType    string     `bson:"policyType" json:"policyType" validate:"required"`
	Areas         []string   `bson:"areas" json:"areas" validate:"required,min=1"`
	Coverage      []Coverage `bson:"coverage,omitempty" json:"coverage,omitempty" validate:"dive"`
	Premiums      []Premium  `bson:"premiums" json:"premiums" validate:"required,min=1,dive"`
	MaxTripDays   int        `bson:"maxTripDays" json:"maxTripDays" validate:"gte=1"`
}

// PremiumFor returns the premium for an age group code.
func (p *InsurancePlan) PremiumFor(ageGroup string) (Money, bool) {
	for _, pr := range p.Premiums {
		if pr.AgeGroup == ageGroup {
			return pr.Price, true
		}
	}
	return Money{}, false
}

type Country struct {
	Code string `bson:"code" json:"code" validate:"required,len=2"`
	Name string `bson:"name" json:"name" validate:"required"`
	Area string `bson:"area,omitempty" json:"area,omitempty"`
}

type AgeGroup struct {
	Code   string `bson:"code" json:"code" validate:"required"`
	MinAge int    `bson:"minAge" json:"minAge" validate:"gte=0"`
	MaxAge int    `bson:"maxAge" json:"maxAge" validate:"gtefield=MinAge"`
}

// InsuranceConfig is the master lookup table validated against before plans
// or bookings are created. There is exactly one.
type InsuranceConfig struct {
	PolicyTypes    []string   `bson:"policyTypes" json:"policyTypes" validate:"required,min=1"`
	Areas          []string   `bson:"areas" json:"areas" validate:"required,min=1"`
	Countries      []Country  `bson:"countries" json:"countries" validate:"required,min=1,dive"`
	AgeGroups      []AgeGroup `bson:"ageGroups" json:"ageGroups" validate:"required,min=1,dive"`
	TravellerTypes []string   `bson:"travellerTypes" json:"travellerTypes" validate:"required,min=1"`
	Revision       int        `bson:"revision" json:"revision"`
	UpdatedBy      string     `bson:"updatedBy,omitempty" json:"updatedBy,omitempty"`
	UpdatedAt      time.Time  `bson:"updatedAt" json:"updatedAt"`
}

func (c *InsuranceConfig) HasPolicyType(t string) bool { return containsString(c.PolicyTypes, t) }

func (c *InsuranceConfig) HasArea(a string) bool { return containsString(c.Areas, a) }

func (c *InsuranceConfig) HasTravellerType(t string) bool {
	return containsString(c.TravellerTypes, t)
}

func (c *InsuranceConfig) Country(code string) (Country, bool) {
	for _, ct := range c.Countries {
		if ct.Code == code {
			return ct, true
		}
	}
	return Country{}, false
}

func (c *InsuranceConfig) AgeGroup(code string) (AgeGroup, bool) {
	for _, g := range c.AgeGroups {
		if g.Code == code {
			return g, true
		}
	}
	return AgeGroup{}, false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// InsuranceConfigRevision archives a replaced InsuranceConfig.
type InsuranceConfigRevision struct {
	Revision   int             `bson:"revision" json:"revision"`
	Config     InsuranceConfig `bson:"config" json:"config"`
	ArchivedAt time.Time       `bson:"archivedAt" json:"archivedAt"`
}
