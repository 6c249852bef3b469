package types

// IngredientItem is one line of an ingredient list. Quantity is kept as text
// so qualitative amounts ("q.b.", "un pizzico") survive untouched.
type IngredientItem struct {
	Quantity string `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
	Name     string `json:"name"`
	Notes    string `json:"notes,omitempty"`
}

// IngredientGroup is a named block of ingredients ("Per la frolla", "Per la crema").
type IngredientGroup struct {
	GroupName string           `json:"group_name,omitempty"`
	Items     []IngredientItem `json:"items"`
}

// ScalingContext describes a request to resize a recipe.
type ScalingContext struct {
	BaseServings    int      `json:"base_servings"`
	TargetServings  int      `json:"target_servings"`
	BasePanDiameter *float64 `json:"base_pan_diameter,omitempty"`
}

// CloneGroups returns a deep copy of the ingredient groups.
func CloneGroups(groups []IngredientGroup) []IngredientGroup {
	if groups == nil {
		return nil
	}
	out := make([]IngredientGroup, len(groups))
	for i, g := range groups {
		out[i] = IngredientGroup{GroupName: g.GroupName}
		if g.Items != nil {
			out[i].Items = append([]IngredientItem(nil), g.Items...)
		}
	}
	return out
}
