// SPDX-License-Identifier: EPL-2.0

package patch

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"maps"
)

// Template is a patch document kept as raw JSON per top-level field, so
// engine, envelope, fx and lfo settings pass through untouched.
type Template map[string]json.RawMessage

//go:embed templates/drum.json
var drumTemplate []byte

//go:embed templates/sampler.json
var samplerTemplate []byte

func ParseTemplate(data []byte) (Template, error) {
	var t Template
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadTemplate, err)
	}

	if t == nil {
		return nil, ErrBadTemplate
	}

	return t, nil
}

func mustTemplate(data []byte) Template {
	t, err := ParseTemplate(data)
	if err != nil {
		panic(err)
	}

	return t
}

// DrumTemplate returns a fresh copy of the default drum kit patch.
func DrumTemplate() Template { return mustTemplate(drumTemplate) }

// SamplerTemplate returns a fresh copy of the default multisample patch.
func SamplerTemplate() Template { return mustTemplate(samplerTemplate) }

// Kind reports the template's "type" field, or "" when it has none.
func (t Template) Kind() string {
	var kind string
	if raw, ok := t["type"]; ok {
		_ = json.Unmarshal(raw, &kind)
	}

	return kind
}

// Build renders template with its regions replaced. template itself is not
// modified.
func Build(template Template, regions []SampleMetadata) ([]byte, error) {
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}

	doc := make(Template, len(template)+1)
	maps.Copy(doc, template)

	raw, err := json.Marshal(regions)
	if err != nil {
		return nil, fmt.Errorf("encoding regions: %w", err)
	}
	doc["regions"] = raw

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding patch: %w", err)
	}

	return out, nil
}
