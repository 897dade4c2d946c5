package reducer

// DefaultIdentityTypes lists STEP entity types that carry identity and must
// never be deduplicated, even when their content is identical. Two wheels on
// the same axle are equal geometry but distinct products; merging them would
// collapse the assembly structure.
var DefaultIdentityTypes = []string{
	"PRODUCT",
	"PRODUCT_DEFINITION",
	"PRODUCT_DEFINITION_FORMATION",
	"PRODUCT_DEFINITION_FORMATION_WITH_SPECIFIED_SOURCE",
	"PRODUCT_DEFINITION_SHAPE",
	"PRODUCT_DEFINITION_CONTEXT",
	"PRODUCT_DEFINITION_WITH_ASSOCIATED_DOCUMENTS",
	"PRODUCT_RELATED_PRODUCT_CATEGORY",
	"SHAPE_DEFINITION_REPRESENTATION",
	"SHAPE_REPRESENTATION",
	"SHAPE_REPRESENTATION_RELATIONSHIP",
	"ADVANCED_BREP_SHAPE_REPRESENTATION",
	"MANIFOLD_SOLID_BREP",
	"MANIFOLD_SURFACE_SHAPE_REPRESENTATION",
	"GEOMETRICALLY_BOUNDED_SURFACE_SHAPE_REPRESENTATION",
	"GEOMETRICALLY_BOUNDED_WIREFRAME_SHAPE_REPRESENTATION",
	"STYLED_ITEM",
	"OVER_RIDING_STYLED_ITEM",
	"PRESENTATION_LAYER_ASSIGNMENT",
	"APPLICATION_CONTEXT",
	"APPLICATION_PROTOCOL_DEFINITION",
	"PRODUCT_CONTEXT",
	"DESIGN_CONTEXT",
}

// DefaultGCRootTypes lists STEP entity types that serve as reachability
// roots for orphan removal. Anything not transitively referenced from an
// entity of one of these types is structurally dead and can be dropped.
var DefaultGCRootTypes = []string{
	"APPLICATION_CONTEXT",
	"APPLICATION_PROTOCOL_DEFINITION",
	"CONTEXT_DEPENDENT_SHAPE_REPRESENTATION",
	"DRAUGHTING_MODEL",
	"MECHANICAL_DESIGN_GEOMETRIC_PRESENTATION_REPRESENTATION",
	"PRESENTATION_LAYER_ASSIGNMENT",
	"PRODUCT_DEFINITION",
	"SHAPE_DEFINITION_REPRESENTATION",
	"SHAPE_REPRESENTATION_RELATIONSHIP",
}

// typeSet builds a membership set from a type list, falling back to defaults
// when the list is nil.
func typeSet(list, defaults []string) map[string]bool {
	if list == nil {
		list = defaults
	}
	set := make(map[string]bool, len(list))
	for _, t := range list {
		set[t] = true
	}
	return set
}
