package lesson

// Reorganize orders lessons by plan: every category in turn, its lessons in the listed order,
// each tagged with the category name. Lessons the plan does not mention follow in their
// original order under plan.Fallback. Planned ids missing from lessons are skipped, and an
// id planned twice is placed at its first position only.
func Reorganize(lessons []Lesson, plan Plan) []Lesson {
	byID := make(map[string]int, len(lessons))
	for i, l := range lessons {
		if _, dup := byID[l.ID]; !dup {
			byID[l.ID] = i
		}
	}

	fallback := plan.Fallback
	if fallback == "" {
		fallback = DefaultFallbackCategory
	}

	out := make([]Lesson, 0, len(lessons))
	placed := make([]bool, len(lessons))
	for _, c := range plan.Categories {
		for _, id := range c.Lessons {
			i, ok := byID[id]
			if !ok || placed[i] {
				continue
			}
			placed[i] = true
			l := lessons[i].Clone()
			l.Category = c.Name
			out = append(out, l)
		}
	}
	for i := range lessons {
		if placed[i] {
			continue
		}
		l := lessons[i].Clone()
		l.Category = fallback
		out = append(out, l)
	}
	return out
}
