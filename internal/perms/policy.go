package perms

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// PolicyVersion is the policy grammar version used for synthesized documents.
const PolicyVersion = "2012-10-17"

// PolicyDocument is an IAM policy as returned by AWS. It is never evaluated,
// only passed through and printed.
type PolicyDocument map[string]any

// NewAllowPolicy builds a single-statement Allow policy over all resources.
func NewAllowPolicy(actions []string) PolicyDocument {
	return PolicyDocument{
		"Version": PolicyVersion,
		"Statement": []any{
			map[string]any{
				"Effect":   "Allow",
				"Action":   actions,
				"Resource": "*",
			},
		},
	}
}

// DecodePolicyDocument percent-decodes and parses a policy document as
// returned by GetUserPolicy. '+' is kept literal.
func DecodePolicyDocument(encoded string) (PolicyDocument, error) {
	raw, err := url.PathUnescape(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: unescape: %v", ErrDecode, err)
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var doc PolicyDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", ErrDecode, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", ErrDecode)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrDecode)
	}
	return doc, nil
}

// Pretty renders the document as indented JSON.
func (d PolicyDocument) Pretty() string {
	out, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", map[string]any(d))
	}
	return string(out)
}
