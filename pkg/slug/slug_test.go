// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple title", input: "Ten Ways to Brew Tea", want: "ten-ways-to-brew-tea"},
		{name: "accents stripped", input: "Crème Brûlée Recipes", want: "creme-brulee-recipes"},
		{name: "punctuation collapsed", input: "Go 1.24: What's New?", want: "go-1-24-what-s-new"},
		{name: "leading and trailing junk", input: "  --Hello World--  ", want: "hello-world"},
		{name: "already a slug", input: "hello-world", want: "hello-world"},
		{name: "empty input", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, From(tt.input))
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("hello-world-42"))
	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Hello-World"))
	assert.False(t, IsValid("hello world"))
	assert.False(t, IsValid("héllo"))
}
