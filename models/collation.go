// ABOUTME: Collated farmer view merged from the three backends
// ABOUTME: Ephemeral shape used only for token issuance, never persisted

package models

// CollatedFarmer joins one PashuGPT farmer profile with matching AMCS data,
// the shared society record, and the tag-queried animal. AmulData is non-nil
// exactly when an AMCS registration with a matching FarmerCode was found;
// absence serializes as an explicit JSON null.
type CollatedFarmer struct {
	PashuGPTData  PashuGPTFarmer  `json:"pashuGPTData"`
	AmulData      *FarmerDetail   `json:"amulData"`
	Society       *SocietyData    `json:"society"`
	AnimalDetails *PashuGPTAnimal `json:"animalDetails"`
}
