package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAdGroupAdResource_Valid(t *testing.T) {
	ref, err := ParseAdGroupAdResource("customers/1234567890/adGroupAds/111222~333444")
	require.NoError(t, err)
	assert.Equal(t, "111222", ref.AdGroupID)
	assert.Equal(t, "333444", ref.AdID)
}

func TestParseAdGroupAdResource_MissingSegment(t *testing.T) {
	_, err := ParseAdGroupAdResource("customers/123/campaigns/456")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adGroupAds")
}

func TestParseAdGroupAdResource_MissingSeparator(t *testing.T) {
	_, err := ParseAdGroupAdResource("customers/123/adGroupAds/111222")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "separator")
}

func TestParseAdGroupAdResource_NonDigitIDs(t *testing.T) {
	cases := []string{
		"customers/123/adGroupAds/abc~456",
		"customers/123/adGroupAds/123~def",
		"customers/123/adGroupAds/~456",
		"customers/123/adGroupAds/123~",
	}
	for _, resource := range cases {
		_, err := ParseAdGroupAdResource(resource)
		assert.Error(t, err, resource)
	}
}

func TestParseAdGroupAdResource_Empty(t *testing.T) {
	_, err := ParseAdGroupAdResource("")
	assert.Error(t, err)
}
