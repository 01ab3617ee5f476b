package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnknownEscapesFindsUnrecognized(t *testing.T) {
	found := UnknownEscapes("animal\n  d\\qog\n")
	if assert.Len(t, found, 1) {
		assert.Equal(t, byte('q'), found[0].Char)
		assert.Equal(t, 2, found[0].LineNo)
	}
}

func TestUnknownEscapesIgnoresRecognized(t *testing.T) {
	found := UnknownEscapes("animal\n  d\\so\\[g\\]\n")
	assert.Empty(t, found)
}
