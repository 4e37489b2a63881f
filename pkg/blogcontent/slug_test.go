package blogcontent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple title", "Hello World", "hello-world"},
		{"punctuation stripped", "Hello, World! 2026", "hello-world-2026"},
		{"surrounding whitespace", "  Trimmed Title  ", "trimmed-title"},
		{"consecutive separators", "a -- b  c", "a-b-c"},
		{"unicode removed", "Crème Brûlée", "crme-brle"},
		{"only punctuation", "!!!", ""},
		{"already a slug", "already-a-slug", "already-a-slug"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, blogcontent.Slugify(tt.input))
		})
	}
}
