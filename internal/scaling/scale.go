package scaling

import (
	"github.com/jonathan/pastry-blog/internal/types"
)

// MinServings is the lowest serving count a recipe can be scaled to.
const MinServings = 1

// Scaled is a recipe ingredient list resized to a new serving count.
type Scaled struct {
	BaseServings   int                     `json:"base_servings"`
	TargetServings int                     `json:"target_servings"`
	Ratio          float64                 `json:"ratio"`
	Ingredients    []types.IngredientGroup `json:"ingredients"`
	PanDiameterCM  *int                    `json:"pan_diameter_cm,omitempty"`
}

// ScaleIngredients returns a copy of groups with every numeric quantity
// multiplied by ratio. Non-numeric quantities are kept verbatim and the
// input is never modified.
func ScaleIngredients(groups []types.IngredientGroup, ratio float64) []types.IngredientGroup {
	out := types.CloneGroups(groups)
	if ratio == 1 {
		return out
	}
	for gi := range out {
		for ii := range out[gi].Items {
			item := &out[gi].Items[ii]
			item.Quantity = ParseQuantity(item.Quantity).Scale(ratio)
		}
	}
	return out
}

// ClampServings applies the serving floor used by the serving controls.
func ClampServings(target int) int {
	return max(target, MinServings)
}

// Ratio returns target/base. A non-positive base yields 1 so that a badly
// configured recipe renders unscaled rather than dividing by zero.
func Ratio(baseServings, targetServings int) float64 {
	if baseServings <= 0 {
		return 1
	}
	return float64(targetServings) / float64(baseServings)
}

// Scale resizes groups according to sc. The target is clamped to
// MinServings, and a pan size is only computed when the base recipe has one.
func Scale(sc types.ScalingContext, groups []types.IngredientGroup) Scaled {
	target := ClampServings(sc.TargetServings)
	ratio := Ratio(sc.BaseServings, target)

	out := Scaled{
		BaseServings:   sc.BaseServings,
		TargetServings: target,
		Ratio:          ratio,
		Ingredients:    ScaleIngredients(groups, ratio),
	}
	if sc.BasePanDiameter != nil {
		pan := CalculatePanSize(target, sc.BaseServings, *sc.BasePanDiameter)
		out.PanDiameterCM = &pan
	}
	return out
}

// ScaleRecipe resizes a recipe to targetServings.
func ScaleRecipe(r *types.Recipe, targetServings int) Scaled {
	return Scale(types.ScalingContext{
		BaseServings:    r.Servings,
		TargetServings:  targetServings,
		BasePanDiameter: r.PanDiameterCM,
	}, r.Ingredients)
}
