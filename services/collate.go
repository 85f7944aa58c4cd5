// ABOUTME: Collation of farmer records across backends plus financial masking
// ABOUTME: Joins by farmer code, masks account fields, produces the token payload

package services

import (
	"strings"

	"github.com/OpenAgriNet/amul-sdk-go/models"
)

// MaskValue renders a display mask of a sensitive value: first two and last
// two characters kept, interior replaced with asterisks. Values shorter than
// four characters keep only the first character; empty strings pass through.
func MaskValue(value string) string {
	if value == "" {
		return value
	}
	if len(value) < 4 {
		if len(value) == 1 {
			return "*"
		}
		return value[:1] + strings.Repeat("*", len(value)-1)
	}
	return value[:2] + strings.Repeat("*", len(value)-4) + value[len(value)-2:]
}

// MaskFarmerFinancials returns a copy of the farmer record with the bank
// account number, IFSC code, and branch code masked. The bank name is not
// sensitive and is never masked.
func MaskFarmerFinancials(f models.FarmerDetail) models.FarmerDetail {
	masked := f
	masked.BankAccountNo = MaskValue(f.BankAccountNo)
	masked.IFSCCode = MaskValue(f.IFSCCode)
	masked.BankBranchCode = MaskValue(f.BankBranchCode)
	return masked
}

// Collate merges records from the three backends into one view per PashuGPT
// farmer profile. The AMCS registration is matched by exact FarmerCode
// equality, first match wins; entries without a match carry a nil AmulData
// (serialized as an explicit null). The society record and the tag-queried
// animal apply to every entry: a tag lookup is not tied to a single
// membership.
func Collate(farmers []models.PashuGPTFarmer, animal *models.PashuGPTAnimal, amulFarmers []models.FarmerDetail, society *models.SocietyData) []models.CollatedFarmer {
	collated := make([]models.CollatedFarmer, 0, len(farmers))
	for _, farmer := range farmers {
		var amulData *models.FarmerDetail
		for i := range amulFarmers {
			if amulFarmers[i].FarmerCode == farmer.FarmerCode {
				masked := MaskFarmerFinancials(amulFarmers[i])
				amulData = &masked
				break
			}
		}

		collated = append(collated, models.CollatedFarmer{
			PashuGPTData:  farmer,
			AmulData:      amulData,
			Society:       society,
			AnimalDetails: animal,
		})
	}
	return collated
}
