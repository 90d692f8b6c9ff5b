package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/templui/homerender/internal/catalog"
)

func TestFrontExteriorStripsPool(t *testing.T) {
	descriptions := []string{
		"Modern home with a pool",
		"Modern home with a POOL and a Swimming Pool",
		"poolside cabana, pool house",
		"Pool",
	}

	for _, d := range descriptions {
		got := Build("Front Exterior", nil, d, false)
		assert.NotContains(t, strings.ToLower(got), "pool", d)
	}
}

func TestBackExteriorKeepsPool(t *testing.T) {
	got := Build("Back Exterior", nil, "Modern home with a pool", false)
	assert.Contains(t, got, "with a pool")
	assert.Contains(t, got, "view from the backyard")
}

func TestBackExteriorWithReference(t *testing.T) {
	got := Build("Back Exterior", nil, "Craftsman", true)
	assert.Contains(t, got, "reference image")
	assert.Contains(t, got, "same house")
}

func TestFallbackWhenNothingApplies(t *testing.T) {
	selections := []catalog.Selection{
		{Attribute: "Flooring", Value: catalog.None},
		{Attribute: "Lighting", Value: ""},
	}
	got := Build("Kitchen", selections, "", false)
	assert.True(t, strings.HasSuffix(got, Fallback), got)
	assert.NotContains(t, got, "Specific features include")
}

func TestInteriorLayout(t *testing.T) {
	selections := catalog.Ordered("Kitchen", map[string]string{
		"Lighting":    "Pendant",
		"Countertops": "Quartz",
		"Island":      catalog.None,
	})

	got := Build("Kitchen", selections, "  warm farmhouse  ", false)

	want := realism + " This is an interior view of the Kitchen." +
		" The overall style is: warm farmhouse." +
		" Specific features include: Countertops is Quartz, Lighting is Pendant."
	assert.Equal(t, want, got)
}

func TestDefaultStyle(t *testing.T) {
	got := Build("Living Room", nil, "   ", false)
	assert.Contains(t, got, "The overall style is: a tasteful contemporary design.")
}
