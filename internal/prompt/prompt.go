// Package prompt composes the text sent to the image model.
package prompt

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/templui/homerender/internal/catalog"
	"github.com/templui/homerender/internal/model"
)

const (
	realism = "A high-resolution, photorealistic architectural photograph of a residential home. " +
		"The lighting is soft and natural, creating a warm and inviting atmosphere. " +
		"The image has the quality of a professional magazine feature."

	defaultStyle = "a tasteful contemporary design"

	// Fallback is used when no selection carries a value.
	Fallback = "The designer's choice of cohesive, high-end materials should be used."
)

// The front of the house never shows the backyard pool.
var poolPattern = regexp.MustCompile(`(?i)swimming pool|pool`)

// Build returns the prompt for one rendering. Selections keep their order;
// pass them through catalog.Ordered to get catalog order.
func Build(subcategory string, selections []catalog.Selection, description string, referenceUsed bool) string {
	var view string
	switch subcategory {
	case model.SubcategoryFrontExterior:
		view = fmt.Sprintf("This is a %s view from the street, clearly showing the driveway, garage, and front entrance.", subcategory)
		description = poolPattern.ReplaceAllString(description, "")
	case model.SubcategoryBackExterior:
		if referenceUsed {
			view = fmt.Sprintf("This is a %s view of the same house shown in the reference image. "+
				"Treat the reference image as the source of truth for the architecture, materials, and colors, "+
				"and render the rear of that exact structure from the backyard.", subcategory)
		} else {
			view = fmt.Sprintf("This is a %s view from the backyard, with a focus on outdoor living areas like the patio.", subcategory)
		}
	default:
		view = fmt.Sprintf("This is an interior view of the %s.", subcategory)
	}

	style := strings.TrimSpace(description)
	if style == "" {
		style = defaultStyle
	}

	return strings.Join([]string{
		realism,
		view,
		fmt.Sprintf("The overall style is: %s.", style),
		features(selections),
	}, " ")
}

func features(selections []catalog.Selection) string {
	var parts []string
	for _, s := range selections {
		if !catalog.Applicable(s.Value) {
			continue
		}
		parts = append(parts, s.Attribute+" is "+s.Value)
	}
	if len(parts) == 0 {
		return Fallback
	}
	return "Specific features include: " + strings.Join(parts, ", ") + "."
}
