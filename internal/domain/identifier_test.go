package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractClickID_Gclid(t *testing.T) {
	id := ExtractClickID("https://example.com/landing?gclid=Cj0KCQabc&utm_source=google")
	assert.Equal(t, "Cj0KCQabc", id)
}

func TestExtractClickID_GbraidFallback(t *testing.T) {
	id := ExtractClickID("https://example.com/landing?gbraid=0AAAbr41d")
	assert.Equal(t, "0AAAbr41d", id)
}

func TestExtractClickID_GclidWinsOverGbraid(t *testing.T) {
	id := ExtractClickID("https://example.com/?gbraid=br&gclid=gc")
	assert.Equal(t, "gc", id)
}

func TestExtractClickID_NoneFound(t *testing.T) {
	assert.Equal(t, "", ExtractClickID("https://example.com/landing?utm_source=google"))
	assert.Equal(t, "", ExtractClickID("https://example.com/landing"))
	assert.Equal(t, "", ExtractClickID(""))
}

func TestExtractClickID_MalformedURL(t *testing.T) {
	// URL imparseable equivale a "sin identificador", nunca panic
	assert.Equal(t, "", ExtractClickID("ht tp://%zz^"))
	assert.Equal(t, "", ExtractClickID("://???"))
}

func TestExtractClickID_RepeatedParamUsesFirst(t *testing.T) {
	id := ExtractClickID("https://example.com/?gclid=first&gclid=second")
	assert.Equal(t, "first", id)
}

func TestUnmappedKeyword_RoundTrip(t *testing.T) {
	label := UnmappedKeyword("Cj0Kxyz")
	assert.Equal(t, "Unmapped(Cj0Kxyz)", label)
	assert.True(t, IsUnmapped(label))
	assert.False(t, IsUnmapped("running shoes"))
	assert.False(t, IsUnmapped(KeywordUnknown))
}
