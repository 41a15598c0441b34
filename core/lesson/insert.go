package lesson

// DefaultSentinel is the reference appendix that stays last in the course.
const DefaultSentinel = "ref_ta_all"

type InsertOptions struct {
	// Sentinel is the id new lessons are placed in front of. Empty means append.
	Sentinel string
	// Replace refreshes lessons whose id already exists with the batch version, in place.
	Replace bool
}

type InsertReport struct {
	Added    []string
	Replaced []string
	Skipped  []string
}

// Insert merges batch into lessons without duplicating ids.
// New lessons keep their batch order and land right before the sentinel,
// or at the end when the sentinel is absent. Running it again with the same batch changes nothing.
func Insert(lessons, batch []Lesson, opts InsertOptions) ([]Lesson, InsertReport) {
	var report InsertReport
	out := CloneAll(lessons)

	existing := make(map[string]int, len(out))
	for i, l := range out {
		existing[l.ID] = i
	}

	fresh := make([]Lesson, 0, len(batch))
	seen := make(map[string]bool, len(batch))
	for _, l := range batch {
		if seen[l.ID] {
			report.Skipped = append(report.Skipped, l.ID)
			continue
		}
		seen[l.ID] = true

		if i, ok := existing[l.ID]; ok {
			if opts.Replace {
				repl := l.Clone()
				if repl.Category == "" {
					repl.Category = out[i].Category
				}
				out[i] = repl
				report.Replaced = append(report.Replaced, l.ID)
			} else {
				report.Skipped = append(report.Skipped, l.ID)
			}
			continue
		}
		fresh = append(fresh, l.Clone())
		report.Added = append(report.Added, l.ID)
	}
	if len(fresh) == 0 {
		return out, report
	}

	at := len(out)
	if opts.Sentinel != "" {
		if i := Find(out, opts.Sentinel); i >= 0 {
			at = i
		}
	}

	merged := make([]Lesson, 0, len(out)+len(fresh))
	merged = append(merged, out[:at]...)
	merged = append(merged, fresh...)
	merged = append(merged, out[at:]...)
	return merged, report
}
