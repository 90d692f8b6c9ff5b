package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomsFor(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        int
		basement    bool
	}{
		{"empty", "", 8, false},
		{"no basement", "A two-story craftsman with a big porch", 8, false},
		{"basement lowercase", "A cozy basement retreat", 12, true},
		{"basement mixed case", "Finished BaseMent with bar", 12, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rooms := RoomsFor(tt.description)
			require.Len(t, rooms, tt.want)
			assert.Equal(t, BaseRooms, rooms[:len(BaseRooms)])
			if tt.basement {
				assert.Equal(t, BasementRooms, rooms[len(BaseRooms):])
			}
		})
	}
}

func TestRoomsForDoesNotAliasBaseList(t *testing.T) {
	rooms := RoomsFor("basement")
	rooms[0] = "Changed"
	assert.Equal(t, "Living Room", BaseRooms[0])
}

func TestEveryOfferedRoomHasAttributes(t *testing.T) {
	for _, sub := range Subcategories() {
		assert.True(t, Has(sub), sub)
		assert.NotEmpty(t, Attributes(sub), sub)
		for _, a := range Attributes(sub) {
			assert.Equal(t, None, a.Values[0], "%s/%s", sub, a.Name)
		}
	}
	assert.False(t, Has("Garage Loft"))
}

func TestOrderedFollowsCatalogAndDropsUnknown(t *testing.T) {
	got := Ordered("Kitchen", map[string]string{
		"Lighting":   "Pendant",
		"Cabinets":   "White Shaker",
		"Helicopter": "Yes",
	})
	assert.Equal(t, []Selection{
		{Attribute: "Cabinets", Value: "White Shaker"},
		{Attribute: "Lighting", Value: "Pendant"},
	}, got)
}

func TestValues(t *testing.T) {
	assert.Contains(t, Values("Kitchen", "Countertops"), "Quartz")
	assert.Nil(t, Values("Kitchen", "Pool"))
}

func TestSummarySkipsSentinels(t *testing.T) {
	got := Summary([]Selection{
		{Attribute: "Cabinets", Value: "Navy Shaker"},
		{Attribute: "Island", Value: None},
		{Attribute: "Lighting", Value: ""},
		{Attribute: "Countertops", Value: "Marble"},
	})
	assert.Equal(t, "Cabinets: Navy Shaker, Countertops: Marble", got)
}
