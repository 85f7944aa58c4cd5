// ABOUTME: CVCC cattle registry client with trailing-comma JSON repair
// ABOUTME: The registry intermittently emits trailing commas; repair is scoped to it

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"
	"time"
)

// CVCCClient queries the cattle registry by ear-tag number using a
// pre-provisioned token and vendor number.
type CVCCClient struct {
	apiURL   string
	tokenNo  string
	vendorNo string
	client   *http.Client
}

func NewCVCCClient(apiURL, tokenNo, vendorNo string, client *http.Client) *CVCCClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &CVCCClient{
		apiURL:   apiURL,
		tokenNo:  tokenNo,
		vendorNo: vendorNo,
		client:   client,
	}
}

type cvccRequest struct {
	TokenNo  string `json:"token_no"`
	VendorNo string `json:"vendor_no"`
	TagNo    string `json:"tag_no"`
}

// CattleDetail fetches the registry record for a tag number. The response
// schema is ad hoc, so the record is returned as a generic map; a "msg"
// value of "Success" marks a usable record.
func (c *CVCCClient) CattleDetail(ctx context.Context, tagNo string) (map[string]interface{}, error) {
	payload, err := json.Marshal(cvccRequest{TokenNo: c.tokenNo, VendorNo: c.vendorNo, TagNo: tagNo})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "CattleDetail", URL: c.apiURL, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, &NetworkError{Op: "CattleDetail", URL: c.apiURL, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{Backend: "CVCC", StatusCode: resp.StatusCode, Message: string(raw)}
	}

	return parseCVCCBody(raw)
}

// trailing commas before a closing brace or bracket, the one malformation
// this upstream is known to produce
var (
	trailingCommaObject = regexp.MustCompile(`,\s*}`)
	trailingCommaArray  = regexp.MustCompile(`,\s*]`)
)

// parseCVCCBody parses a registry response, repairing trailing commas on a
// first failure. This is a narrow heuristic, not a lenient JSON parser; a
// second failure is surfaced, never swallowed.
func parseCVCCBody(raw []byte) (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal(raw, &data); err == nil {
		return data, nil
	}

	repaired := trailingCommaObject.ReplaceAll(raw, []byte("}"))
	repaired = trailingCommaArray.ReplaceAll(repaired, []byte("]"))

	if err := json.Unmarshal(repaired, &data); err != nil {
		return nil, &MalformedResponseError{Backend: "CVCC", Err: err}
	}
	return data, nil
}
