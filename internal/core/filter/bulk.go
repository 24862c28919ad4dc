package filter

// SelectAll checks every facet value; scalars are kept
func SelectAll(f SearchFilter) SearchFilter {
	out := f.Clone()
	out.ItemTypes = f.ItemTypes.SetAll(true)
	out.Jobs = f.Jobs.SetAll(true)
	out.RecipeTypes = f.RecipeTypes.SetAll(true)
	out.RecipeItemTypes = f.RecipeItemTypes.SetAll(true)
	out.Repeatable = f.Repeatable.SetAll(true)
	return out
}

// ClearAll unchecks every facet value and empties every scalar.
// Names survive, so the result is the default filter again when f was built from it.
func ClearAll(f SearchFilter) SearchFilter {
	return SearchFilter{
		ItemTypes:       f.ItemTypes.SetAll(false),
		Jobs:            f.Jobs.SetAll(false),
		RecipeTypes:     f.RecipeTypes.SetAll(false),
		RecipeItemTypes: f.RecipeItemTypes.SetAll(false),
		Repeatable:      f.Repeatable.SetAll(false),
	}
}

// Reset returns a copy of the default filter
func Reset(def SearchFilter) SearchFilter { return def.Clone() }

// Clear empties one scalar field. Merge cannot express this because an empty
// scalar in the delta means "unchanged".
func Clear(f SearchFilter, field Field) SearchFilter {
	out := f.Clone()
	switch field {
	case FieldItem:
		out.Item = ""
	case FieldRecipe:
		out.Recipe = ""
	case FieldOvercharge:
		out.Overcharge = OverchargeAny
	case FieldPricing:
		out.Pricing = PricingDefault
	case FieldPage:
		out.Page = ""
	}
	return out
}

// Set assigns one scalar field; an empty value clears it
func Set(f SearchFilter, field Field, value string) SearchFilter {
	if value == "" {
		return Clear(f, field)
	}
	var delta SearchFilter
	switch field {
	case FieldItem:
		delta.Item = value
	case FieldRecipe:
		delta.Recipe = value
	case FieldOvercharge:
		delta.Overcharge = OverchargeMode(value)
	case FieldPricing:
		delta.Pricing = PricingMode(value)
	case FieldPage:
		delta.Page = value
	}
	return Merge(f, delta)
}
