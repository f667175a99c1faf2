// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package slice

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMap(t *testing.T) {
	assert.Equal(t, []string{"GO", "PG"}, Map([]string{"go", "pg"}, strings.ToUpper))
	assert.Nil(t, Map(nil, strings.ToUpper))
}

func TestFilter(t *testing.T) {
	nonEmpty := func(s string) bool { return s != "" }

	assert.Equal(t, []string{"go"}, Filter([]string{"go", ""}, nonEmpty))
	assert.Nil(t, Filter(nil, nonEmpty))

	// A present-but-empty result must stay distinguishable from no input:
	// the tag replacement path reads nil as "leave tags alone" and an empty
	// slice as "clear them".
	filtered := Filter([]string{"", "  "}, func(s string) bool { return strings.TrimSpace(s) != "" })
	assert.NotNil(t, filtered)
	assert.Empty(t, filtered)
}

func TestUniq(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, Uniq([]string{"a", "b", "a", "c", "b"}))
	assert.Nil(t, Uniq[string](nil))

	deduped := Uniq([]string{})
	assert.NotNil(t, deduped)
	assert.Empty(t, deduped)
}
