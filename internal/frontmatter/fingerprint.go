package frontmatter

import (
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"
)

// volatileFields are header keys that change without the content changing.
var volatileFields = map[string]struct{}{
	mdfp.FingerprintField: {},
	"lastmod":             {},
	"uid":                 {},
	"aliases":             {},
}

// Fingerprint computes the content fingerprint of a document. Volatile
// header fields are ignored and the remaining fields are serialized with
// sorted keys, so reordering the header does not change the result.
func Fingerprint(fields map[string]any, body []byte) (string, error) {
	stable := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, skip := volatileFields[k]; skip {
			continue
		}
		stable[k] = v
	}

	header := ""
	if len(stable) > 0 {
		out, err := yaml.Marshal(stable)
		if err != nil {
			return "", err
		}
		header = strings.TrimSuffix(string(out), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(header, string(body)), nil
}
