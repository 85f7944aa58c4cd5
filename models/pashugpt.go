// ABOUTME: Data models for the preauthorized PashuGPT lookup backend
// ABOUTME: Plain JSON arrays/objects, no envelope; dates arrive as strings

package models

// PashuGPTFarmer is a farmer profile from the lookup backend. One mobile
// number may resolve to several profiles (multi-membership). TagNo carries a
// comma-separated list of animal tag numbers when present.
type PashuGPTFarmer struct {
	State                string  `json:"state"`
	District             string  `json:"district"`
	SubDistrict          string  `json:"subDistrict"`
	Village              string  `json:"village"`
	UnionName            string  `json:"unionName"`
	SocietyName          string  `json:"societyName"`
	FarmerName           string  `json:"farmerName"`
	MobileNumber         string  `json:"mobileNumber"`
	FarmerCode           string  `json:"farmerCode"`
	TagNo                string  `json:"tagNo,omitempty"`
	AvgMilkPerDayInLiter float64 `json:"avgMilkPerDayInLiter"`
	TotalAnimals         int     `json:"totalAnimals"`
	Cow                  int     `json:"cow"`
	Buffalo              int     `json:"buffalo"`
	TotalMilkingAnimals  int     `json:"totalMilkingAnimals"`
}

// BreedingActivity is the last recorded breeding data for an animal.
// Dates are kept as raw upstream strings; the lookup service parses them.
type BreedingActivity struct {
	LastAI      *string `json:"lastAI"`
	LastPD      *string `json:"lastPD"`
	LastCalving *string `json:"lastCalving"`
	CalfTagNo   *string `json:"calfTagNo"`
	CalfMale    int     `json:"calfMale"`
	CalfFemale  int     `json:"calfFemale"`
}

// PashuGPTAnimal is an animal record keyed by tag number, with an
// independent lifecycle from FarmerDetail.
type PashuGPTAnimal struct {
	TagNumber            string           `json:"tagNumber"`
	AnimalType           string           `json:"animalType"`
	Breed                string           `json:"breed"`
	MilkingStage         string           `json:"milkingStage"`
	PregnancyStage       string           `json:"pregnancyStage"`
	DateOfBirth          string           `json:"dateOfBirth"`
	LactationNo          int              `json:"lactationNo"`
	LastBreedingActivity BreedingActivity `json:"lastBreedingActivity"`
	LastHealthActivity   interface{}      `json:"lastHealthActivity"`
}

// PregnancyStagePregnant is the upstream value that suppresses the
// pregnancy-check recommendation.
const PregnancyStagePregnant = "Pregnant"
