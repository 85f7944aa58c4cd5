// ABOUTME: Tests for tag collection and the parallel lookup fan-out
// ABOUTME: Verifies per-item failure isolation and deduplication order

package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/OpenAgriNet/amul-sdk-go/models"
)

func TestCollectTagNumbers(t *testing.T) {
	tests := []struct {
		name     string
		explicit string
		farmers  []models.PashuGPTFarmer
		want     []string
	}{
		{
			name: "empty inputs",
			want: nil,
		},
		{
			name:     "explicit only",
			explicit: "111111",
			want:     []string{"111111"},
		},
		{
			name: "comma lists split and trimmed",
			farmers: []models.PashuGPTFarmer{
				{TagNo: "111111, 222222 ,333333"},
			},
			want: []string{"111111", "222222", "333333"},
		},
		{
			name:     "duplicates collapse, first appearance wins",
			explicit: "222222",
			farmers: []models.PashuGPTFarmer{
				{TagNo: "111111,222222"},
				{TagNo: "111111,444444"},
			},
			want: []string{"222222", "111111", "444444"},
		},
		{
			name: "farmers without tags skipped",
			farmers: []models.PashuGPTFarmer{
				{TagNo: ""},
				{TagNo: "555555"},
			},
			want: []string{"555555"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollectTagNumbers(tt.explicit, tt.farmers)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CollectTagNumbers = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBatchTagLookup(t *testing.T) {
	lookupServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tag := r.URL.Query().Get("tagNo")
		if tag == "222222" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"tagNumber":"` + tag + `","animalType":"Cow"}`))
	}))
	defer lookupServer.Close()

	registryServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"msg":"Success"}`))
	}))
	defer registryServer.Close()

	lookup := NewPashuGPTClient(lookupServer.URL, "token", nil)
	registry := NewCVCCClient(registryServer.URL, "token", "9999999", nil)

	tags := []string{"111111", "222222", "333333"}
	results := BatchTagLookup(context.Background(), tags, lookup, registry)

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	for i, tag := range tags {
		if results[i].TagNo != tag {
			t.Errorf("Result %d out of order: got %s, want %s", i, results[i].TagNo, tag)
		}
	}

	if results[0].AnimalErr != nil || results[0].Animal == nil {
		t.Errorf("Expected success for first tag, got err %v", results[0].AnimalErr)
	}
	if results[0].Animal != nil && results[0].Animal.TagNumber != "111111" {
		t.Errorf("Animal record mismatched: %+v", results[0].Animal)
	}

	// the failing tag is isolated
	if results[1].AnimalErr == nil {
		t.Error("Expected AnimalErr for the failing tag")
	}
	if results[1].RegistryErr != nil {
		t.Errorf("Registry lookup must not be affected: %v", results[1].RegistryErr)
	}

	// siblings after the failure still complete
	if results[2].AnimalErr != nil || results[2].Animal == nil {
		t.Errorf("Expected success for third tag, got err %v", results[2].AnimalErr)
	}

	for i, res := range results {
		if res.RegistryErr != nil || res.Registry["msg"] != "Success" {
			t.Errorf("Result %d registry lookup failed: %v", i, res.RegistryErr)
		}
	}
}

func TestBatchTagLookupNilClients(t *testing.T) {
	results := BatchTagLookup(context.Background(), []string{"111111"}, nil, nil)
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Animal != nil || results[0].Registry != nil {
		t.Error("Expected no lookups with nil clients")
	}
	if results[0].AnimalErr != nil || results[0].RegistryErr != nil {
		t.Error("Expected no errors with nil clients")
	}
}
