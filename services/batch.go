// ABOUTME: Parallel fan-out of per-tag animal and registry lookups
// ABOUTME: Partial-failure tolerant; one bad tag never voids the batch

package services

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/OpenAgriNet/amul-sdk-go/models"
)

// batchConcurrency bounds the number of in-flight upstream lookups.
const batchConcurrency = 8

// TagLookupResult carries the outcome of both lookups for one tag number.
// Errors are recorded per item and per backend; they never cancel siblings.
type TagLookupResult struct {
	TagNo    string
	Animal   *models.PashuGPTAnimal
	Registry map[string]interface{}

	AnimalErr   error
	RegistryErr error
}

// CollectTagNumbers builds the deduplicated tag set for a batch: an explicit
// tag (if any) plus every tag listed on the farmer profiles, which carry
// comma-separated tag lists. Order of first appearance is preserved.
func CollectTagNumbers(explicit string, farmers []models.PashuGPTFarmer) []string {
	seen := make(map[string]struct{})
	var tags []string

	add := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	add(explicit)
	for _, farmer := range farmers {
		for _, tag := range strings.Split(farmer.TagNo, ",") {
			add(tag)
		}
	}
	return tags
}

// BatchTagLookup fetches the animal record and the registry record for every
// tag concurrently. Both clients are optional; a nil client simply skips
// that backend. The result slice matches the order of tags.
func BatchTagLookup(ctx context.Context, tags []string, lookup *PashuGPTClient, registry *CVCCClient) []TagLookupResult {
	results := make([]TagLookupResult, len(tags))
	for i, tag := range tags {
		results[i].TagNo = tag
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i := range results {
		if lookup != nil {
			g.Go(func() error {
				results[i].Animal, results[i].AnimalErr = lookup.AnimalByTag(ctx, results[i].TagNo)
				return nil
			})
		}
		if registry != nil {
			g.Go(func() error {
				results[i].Registry, results[i].RegistryErr = registry.CattleDetail(ctx, results[i].TagNo)
				return nil
			})
		}
	}

	// goroutines always return nil: item failures are recorded, not propagated
	_ = g.Wait()

	return results
}
