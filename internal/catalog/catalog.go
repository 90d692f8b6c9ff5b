// Package catalog holds the static set of views and rooms a rendering can be
// requested for, and the attributes a user may pick for each of them.
package catalog

import (
	"slices"
	"strings"
)

// None marks an attribute as not applicable. It is offered as the first
// value of every attribute and never reaches a prompt or summary.
const None = "None"

// Attribute is one selectable feature of a view, with its allowed values in
// display order.
type Attribute struct {
	Name   string
	Values []string
}

// Selection is a chosen value for a named attribute.
type Selection struct {
	Attribute string
	Value     string
}

var BaseRooms = []string{
	"Living Room",
	"Kitchen",
	"Home Office",
	"Primary Bedroom",
	"Primary Bathroom",
	"Other Bedroom",
	"Half Bath",
	"Family Room",
}

var BasementRooms = []string{
	"Basement: Game Room",
	"Basement: Gym",
	"Basement: Theater Room",
	"Basement: Hallway",
}

func attr(name string, values ...string) Attribute {
	return Attribute{Name: name, Values: append([]string{None}, values...)}
}

var flooring = attr("Flooring", "Hardwood", "Wide-Plank Oak", "Polished Concrete", "Porcelain Tile", "Natural Stone", "Carpet", "Luxury Vinyl")
var lighting = attr("Lighting", "Recessed", "Pendant", "Chandelier", "Track", "Natural Light Emphasis", "Wall Sconces")
var wallColor = attr("Wall Color", "Warm White", "Greige", "Soft Gray", "Sage Green", "Navy Accent", "Charcoal")

var options = map[string][]Attribute{
	"Front Exterior": {
		attr("Architectural Style", "Modern Farmhouse", "Craftsman", "Colonial", "Contemporary", "Mediterranean", "Ranch", "Tudor"),
		attr("Siding", "Board and Batten", "Brick", "Stone Veneer", "Stucco", "Fiber Cement Lap", "Cedar Shake"),
		attr("Roof", "Asphalt Shingle", "Standing Seam Metal", "Clay Tile", "Slate", "Flat Membrane"),
		attr("Garage", "Two-Car Attached", "Three-Car Attached", "Side-Load", "Detached", "No Garage"),
		attr("Front Door", "Black Steel", "Natural Wood", "Glass Pivot", "Painted Red", "Double Doors"),
		attr("Landscaping", "Manicured Lawn", "Xeriscape", "Cottage Garden", "Mature Trees", "Minimalist Gravel"),
	},
	"Back Exterior": {
		attr("Patio", "Stone Pavers", "Stamped Concrete", "Composite Deck", "Wood Deck", "Covered Porch"),
		attr("Pool", "Rectangular Pool", "Freeform Pool", "Lap Pool", "Plunge Pool"),
		attr("Outdoor Kitchen", "Built-In Grill", "Full Outdoor Kitchen", "Pizza Oven"),
		attr("Fire Feature", "Fire Pit", "Outdoor Fireplace", "Fire Table"),
		attr("Landscaping", "Lush Lawn", "Native Plantings", "Terraced Gardens", "Privacy Hedges"),
	},
	"Living Room": {
		flooring,
		attr("Fireplace", "Linear Gas", "Stone Surround", "Brick Surround", "Built-In Shelving Flank"),
		attr("Ceiling", "Vaulted", "Coffered", "Exposed Beams", "Flat Nine Foot"),
		attr("Furniture Style", "Mid-Century Modern", "Transitional", "Coastal", "Industrial", "Scandinavian"),
		lighting,
		wallColor,
	},
	"Kitchen": {
		attr("Cabinets", "White Shaker", "Navy Shaker", "Flat-Panel Walnut", "Two-Tone", "Glass-Front Uppers"),
		attr("Countertops", "Quartz", "Marble", "Granite", "Butcher Block", "Concrete"),
		attr("Backsplash", "Subway Tile", "Zellige", "Full-Height Slab", "Herringbone", "Patterned Cement Tile"),
		attr("Island", "Waterfall Island", "Seating for Four", "Two-Tier", "Butcher Block Top"),
		attr("Appliances", "Stainless Steel", "Panel-Ready", "Matte Black", "Professional Range"),
		flooring,
		lighting,
	},
	"Home Office": {
		attr("Desk", "Built-In Desk", "Executive Wood Desk", "Standing Desk", "Floating Desk"),
		attr("Shelving", "Floor-to-Ceiling Built-Ins", "Floating Shelves", "Library Ladder"),
		flooring,
		lighting,
		wallColor,
	},
	"Primary Bedroom": {
		attr("Bed", "Upholstered King", "Four-Poster", "Platform", "Canopy"),
		attr("Accent Wall", "Wainscoting", "Shiplap", "Wallpaper", "Upholstered Headboard Wall"),
		attr("Ceiling", "Tray", "Vaulted", "Exposed Beams", "Flat"),
		flooring,
		lighting,
		wallColor,
	},
	"Primary Bathroom": {
		attr("Vanity", "Double Floating", "Double Furniture-Style", "Single Vessel Sink"),
		attr("Shower", "Walk-In Curbless", "Glass Enclosure", "Steam Shower", "Wet Room"),
		attr("Tub", "Freestanding Soaking", "Clawfoot", "Built-In Jetted"),
		attr("Tile", "Marble", "Large-Format Porcelain", "Zellige", "Terrazzo"),
		attr("Fixtures", "Brushed Brass", "Matte Black", "Polished Nickel", "Chrome"),
		lighting,
	},
	"Other Bedroom": {
		attr("Bed", "Queen", "Full", "Twin Bunk", "Daybed"),
		attr("Theme", "Classic", "Nursery", "Teen Retreat", "Guest Suite"),
		flooring,
		lighting,
		wallColor,
	},
	"Half Bath": {
		attr("Vanity", "Pedestal Sink", "Floating Vanity", "Vintage Dresser Conversion"),
		attr("Wall Treatment", "Bold Wallpaper", "Wainscoting", "Floor-to-Ceiling Tile"),
		attr("Fixtures", "Brushed Brass", "Matte Black", "Polished Nickel", "Chrome"),
		lighting,
	},
	"Family Room": {
		attr("Seating", "Sectional Sofa", "Pair of Sofas", "Recliners"),
		attr("Media Wall", "Built-In Cabinetry", "Floating Console", "Fireplace with TV Above"),
		flooring,
		lighting,
		wallColor,
	},
	"Basement: Game Room": {
		attr("Games", "Pool Table", "Ping Pong", "Arcade Cabinets", "Card Table"),
		attr("Bar", "Wet Bar", "Full Bar with Stools", "Beverage Center"),
		flooring,
		lighting,
	},
	"Basement: Gym": {
		attr("Equipment", "Free Weights", "Squat Rack", "Cardio Machines", "Peloton"),
		attr("Flooring", "Rubber Gym Flooring", "Turf Strip", "Cork"),
		attr("Walls", "Mirrored Wall", "Acoustic Panels", "Painted Brick"),
		lighting,
	},
	"Basement: Theater Room": {
		attr("Seating", "Tiered Recliners", "Sectional", "Stadium Rows"),
		attr("Screen", "Projector with Screen", "Large Format TV", "Curved Screen"),
		attr("Acoustics", "Fabric Wall Panels", "Star Ceiling", "Velvet Curtains"),
		lighting,
	},
	"Basement: Hallway": {
		attr("Wall Treatment", "Gallery Wall", "Wainscoting", "Painted Brick"),
		flooring,
		lighting,
		wallColor,
	},
}

// RoomsFor lists the rooms offered for a home description: the base rooms,
// plus the basement rooms when the description mentions a basement.
func RoomsFor(description string) []string {
	rooms := slices.Clone(BaseRooms)
	if strings.Contains(strings.ToLower(description), "basement") {
		rooms = append(rooms, BasementRooms...)
	}
	return rooms
}

// Has reports whether subcategory is a known view or room.
func Has(subcategory string) bool {
	_, ok := options[subcategory]
	return ok
}

// Attributes returns the attributes registered for subcategory, in display order.
func Attributes(subcategory string) []Attribute {
	return options[subcategory]
}

// AttributeNames returns just the attribute names for subcategory.
func AttributeNames(subcategory string) []string {
	attrs := options[subcategory]
	names := make([]string, 0, len(attrs))
	for _, a := range attrs {
		names = append(names, a.Name)
	}
	return names
}

// Values returns the allowed values of one attribute, or nil when the
// subcategory has no such attribute.
func Values(subcategory, attribute string) []string {
	for _, a := range options[subcategory] {
		if a.Name == attribute {
			return a.Values
		}
	}
	return nil
}

// Subcategories returns every catalog key, exteriors first then rooms in
// the order they are offered.
func Subcategories() []string {
	keys := []string{"Front Exterior", "Back Exterior"}
	keys = append(keys, BaseRooms...)
	return append(keys, BasementRooms...)
}

// Ordered turns a selection map into catalog order. Keys that are not
// attributes of subcategory are dropped.
func Ordered(subcategory string, values map[string]string) []Selection {
	var out []Selection
	for _, a := range options[subcategory] {
		v, ok := values[a.Name]
		if !ok {
			continue
		}
		out = append(out, Selection{Attribute: a.Name, Value: v})
	}
	return out
}

// Applicable reports whether a value should be rendered.
func Applicable(value string) bool {
	return value != "" && value != None
}

// Summary renders "Attribute: Value" pairs for display, skipping sentinels.
func Summary(selections []Selection) string {
	parts := make([]string, 0, len(selections))
	for _, s := range selections {
		if !Applicable(s.Value) {
			continue
		}
		parts = append(parts, s.Attribute+": "+s.Value)
	}
	return strings.Join(parts, ", ")
}
