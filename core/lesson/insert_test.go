package lesson_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xufeiok/PineScript-Study/core/lesson"
	"github.com/xufeiok/PineScript-Study/tests"
)

func lessons(ids ...string) []lesson.Lesson {
	out := make([]lesson.Lesson, len(ids))
	for i, id := range ids {
		out[i] = testutil.NewLesson(id, id, "")
	}
	return out
}

func TestInsert(t *testing.T) {
	opts := lesson.InsertOptions{Sentinel: lesson.DefaultSentinel}
	tests := []struct {
		name        string
		store       []string
		batch       []string
		opts        lesson.InsertOptions
		want        []string
		wantAdded   []string
		wantSkipped []string
	}{
		{
			name:      "before sentinel",
			store:     []string{"a", "b", "ref_ta_all"},
			batch:     []string{"x", "y"},
			opts:      opts,
			want:      []string{"a", "b", "x", "y", "ref_ta_all"},
			wantAdded: []string{"x", "y"},
		},
		{
			name:      "sentinel in the middle",
			store:     []string{"a", "ref_ta_all", "z"},
			batch:     []string{"x"},
			opts:      opts,
			want:      []string{"a", "x", "ref_ta_all", "z"},
			wantAdded: []string{"x"},
		},
		{
			name:      "no sentinel in store",
			store:     []string{"a", "b"},
			batch:     []string{"x", "y"},
			opts:      opts,
			want:      []string{"a", "b", "x", "y"},
			wantAdded: []string{"x", "y"},
		},
		{
			name:      "append mode",
			store:     []string{"a", "ref_ta_all"},
			batch:     []string{"x"},
			want:      []string{"a", "ref_ta_all", "x"},
			wantAdded: []string{"x"},
		},
		{
			name:        "existing ids skipped",
			store:       []string{"a", "x", "ref_ta_all"},
			batch:       []string{"x", "y"},
			opts:        opts,
			want:        []string{"a", "x", "y", "ref_ta_all"},
			wantAdded:   []string{"y"},
			wantSkipped: []string{"x"},
		},
		{
			name:        "duplicates within batch",
			store:       []string{"ref_ta_all"},
			batch:       []string{"x", "y", "x"},
			opts:        opts,
			want:        []string{"x", "y", "ref_ta_all"},
			wantAdded:   []string{"x", "y"},
			wantSkipped: []string{"x"},
		},
		{
			name:  "empty batch",
			store: []string{"a", "ref_ta_all"},
			opts:  opts,
			want:  []string{"a", "ref_ta_all"},
		},
		{
			name:      "empty store",
			store:     []string{},
			batch:     []string{"x"},
			opts:      opts,
			want:      []string{"x"},
			wantAdded: []string{"x"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := lessons(tt.store...)
			got, report := lesson.Insert(store, lessons(tt.batch...), tt.opts)

			assert.Equal(t, tt.want, lesson.IDs(got))
			assert.Equal(t, tt.wantAdded, report.Added)
			assert.Equal(t, tt.wantSkipped, report.Skipped)
			assert.Equal(t, tt.store, lesson.IDs(store), "input mutated")

			// idempotent
			again, report := lesson.Insert(got, lessons(tt.batch...), tt.opts)
			assert.Equal(t, lesson.IDs(got), lesson.IDs(again))
			assert.Empty(t, report.Added)
		})
	}
}

func TestInsert_replace(t *testing.T) {
	store := []lesson.Lesson{
		testutil.NewLesson("a", "1. A", "基础语法 (Basics)"),
		testutil.NewLesson("b", "2. B", "基础语法 (Basics)"),
		testutil.NewLesson("ref_ta_all", "附录: 速查", "参考资料 (Reference)"),
	}
	fresh := testutil.NewLesson("b", "2. B v2", "")
	moved := testutil.NewLesson("a", "1. A v2", "其他 (Others)")

	got, report := lesson.Insert(store, []lesson.Lesson{fresh, moved, testutil.NewLesson("c", "C", "")},
		lesson.InsertOptions{Sentinel: lesson.DefaultSentinel, Replace: true})

	assert.Equal(t, []string{"a", "b", "c", "ref_ta_all"}, lesson.IDs(got))
	assert.Equal(t, []string{"b", "a"}, report.Replaced)
	assert.Equal(t, []string{"c"}, report.Added)
	assert.Equal(t, "2. B v2", got[1].Title)
	assert.Equal(t, "基础语法 (Basics)", got[1].Category, "category kept when batch has none")
	assert.Equal(t, "其他 (Others)", got[0].Category)
	assert.Equal(t, "2. B", store[1].Title, "input mutated")
}
