package blogcontent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent/imaging"
)

// Normalization of structured-text form fields. Depending on the client,
// list-valued fields arrive either as JSON or as plain comma-separated
// text; everything is folded into the typed representation here, before
// validation proper.

// parseStringList accepts a JSON string array or a comma-separated list.
// Empty input yields an empty, non-nil slice.
func parseStringList(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}

	if strings.HasPrefix(raw, "[") {
		var items []string
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return nil, fmt.Errorf("not a JSON string array: %w", err)
		}
		return normalizeList(items), nil
	}

	return normalizeList(strings.Split(raw, ",")), nil
}

func normalizeList(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

// parseSections decodes the section descriptor array. Empty input yields
// an empty, non-nil slice so a blog without sections round-trips as [].
func parseSections(raw string) ([]Section, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []Section{}, nil
	}

	var sections []Section
	if err := json.Unmarshal([]byte(raw), &sections); err != nil {
		return nil, fmt.Errorf("not a JSON section array: %w", err)
	}
	for i := range sections {
		if sections[i].List == nil {
			sections[i].List = []string{}
		}
	}
	return sections, nil
}

// parseMeta decodes the SEO metadata object. meta_keywords additionally
// accepts comma-separated text for form-encoded clients.
func parseMeta(raw string) (Meta, error) {
	var payload struct {
		Title       string          `json:"meta_title"`
		Description string          `json:"meta_description"`
		Keywords    json.RawMessage `json:"meta_keywords"`
	}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return Meta{}, fmt.Errorf("not a JSON meta object: %w", err)
	}

	meta := Meta{
		Title:       strings.TrimSpace(payload.Title),
		Description: strings.TrimSpace(payload.Description),
		Keywords:    []string{},
	}
	if len(payload.Keywords) > 0 {
		var items []string
		if err := json.Unmarshal(payload.Keywords, &items); err == nil {
			meta.Keywords = normalizeList(items)
		} else {
			var text string
			if err := json.Unmarshal(payload.Keywords, &text); err != nil {
				return Meta{}, fmt.Errorf("meta_keywords is neither an array nor a string")
			}
			meta.Keywords = normalizeList(strings.Split(text, ","))
		}
	}
	return meta, nil
}

// parseEdits decodes the image-edit descriptor array.
func parseEdits(raw string) ([]imaging.Edit, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	var edits []imaging.Edit
	if err := json.Unmarshal([]byte(raw), &edits); err != nil {
		return nil, fmt.Errorf("not a JSON edit array: %w", err)
	}
	return edits, nil
}

// parseFeatured coerces the textual featured flag. Anything other than
// "true" (case-insensitive) is false.
func parseFeatured(raw string) bool {
	return strings.EqualFold(strings.TrimSpace(raw), "true")
}
