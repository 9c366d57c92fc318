package profile

import (
	"encoding/json"
	"fmt"
)

// ApplyUpdate merges patch into doc at section.key and returns the
// updated document. Map patches merge recursively with the existing
// value; scalar patches replace it. doc is not modified.
func ApplyUpdate(doc map[string]any, section, key string, patch any) (map[string]any, error) {
	switch section {
	case SectionBasicInfo, SectionPerformance, SectionCustomers, SectionTrends:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	if key == "" {
		return nil, ErrEmptyKey
	}

	out := cloneDoc(doc)
	sec, ok := out[section].(map[string]any)
	if !ok {
		sec = make(map[string]any)
	}
	sec[key] = mergeValue(sec[key], patch)
	out[section] = sec
	return out, nil
}

// DecodeDoc converts a raw profile document into a typed profile.
func DecodeDoc(id string, doc map[string]any) (*Profile, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode profile doc: %w", err)
	}
	var core Core
	if err := json.Unmarshal(data, &core); err != nil {
		return nil, fmt.Errorf("decode profile doc: %w", err)
	}
	return &Profile{ID: id, Core: core}, nil
}

// EncodeDoc converts a typed profile into a raw document.
func EncodeDoc(p *Profile) (map[string]any, error) {
	data, err := json.Marshal(p.Core)
	if err != nil {
		return nil, fmt.Errorf("encode profile: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	return doc, nil
}

func mergeValue(existing, patch any) any {
	patchMap, patchIsMap := patch.(map[string]any)
	existingMap, existingIsMap := existing.(map[string]any)
	if !patchIsMap || !existingIsMap {
		return patch
	}
	merged := cloneDoc(existingMap)
	for k, v := range patchMap {
		merged[k] = mergeValue(merged[k], v)
	}
	return merged
}

func cloneDoc(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		if m, ok := v.(map[string]any); ok {
			out[k] = cloneDoc(m)
			continue
		}
		out[k] = v
	}
	return out
}
