package rules

// ContextFromSubject converts a Subject into a map suitable for CEL evaluation.
func ContextFromSubject(s *Subject) map[string]any {
	if s == nil {
		return map[string]any{}
	}
	types := make([]any, 0, len(s.Types))
	for _, t := range s.Types {
		types = append(types, t)
	}
	stages := make(map[string]any, len(s.Stages))
	for k, v := range s.Stages {
		stages[k] = int64(v)
	}
	flags := make(map[string]any, len(s.Flags))
	for k, v := range s.Flags {
		flags[k] = v
	}
	return map[string]any{
		"name":   s.Name,
		"level":  int64(s.Level),
		"hp":     int64(s.HP),
		"max_hp": int64(s.MaxHP),
		"status": s.Status,
		"types":  types,
		"stages": stages,
		"flags":  flags,
	}
}

// BuildEvalContext creates the standard context with user, target and field.
func BuildEvalContext(user, target *Subject, field FieldView) map[string]any {
	return map[string]any{
		"user":   ContextFromSubject(user),
		"target": ContextFromSubject(target),
		"field": map[string]any{
			"weather": field.Weather,
			"terrain": field.Terrain,
			"turn":    int64(field.Turn),
		},
	}
}
