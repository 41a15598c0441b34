package lesson_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xufeiok/PineScript-Study/core"
	"github.com/xufeiok/PineScript-Study/core/lesson"
	"github.com/xufeiok/PineScript-Study/core/obfuscate"
	"github.com/xufeiok/PineScript-Study/tests"
)

const validLesson = `{"id": "l1_intro", "title": "1. 简介", "pine_code": "//@version=5", "python_code": "", "quiz": []}`

func TestDecode_presenceRules(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantField string
	}{
		{name: "no lessons key", doc: `{}`, wantField: "lessons"},
		{name: "missing id", doc: `{"lessons": [{"title": "t", "pine_code": "", "python_code": "", "quiz": []}]}`, wantField: "lessons[0].id"},
		{name: "missing title", doc: `{"lessons": [{"id": "a", "pine_code": "", "python_code": "", "quiz": []}]}`, wantField: "lessons[0].title"},
		{name: "missing pine_code", doc: `{"lessons": [{"id": "a", "title": "t", "python_code": "", "quiz": []}]}`, wantField: "lessons[0].pine_code"},
		{name: "missing python_code", doc: `{"lessons": [{"id": "a", "title": "t", "pine_code": "", "quiz": []}]}`, wantField: "lessons[0].python_code"},
		{name: "missing quiz", doc: `{"lessons": [{"id": "a", "title": "t", "pine_code": "", "python_code": ""}]}`, wantField: "lessons[0].quiz"},
		{name: "null quiz", doc: `{"lessons": [{"id": "a", "title": "t", "pine_code": "", "python_code": "", "quiz": null}]}`, wantField: "lessons[0].quiz"},
		{name: "second lesson", doc: `{"lessons": [` + validLesson + `, {"id": "b", "pine_code": "", "python_code": "", "quiz": []}]}`, wantField: "lessons[1].title"},
		{name: "blank id", doc: `{"lessons": [{"id": " ", "title": "t", "pine_code": "", "python_code": "", "quiz": []}]}`, wantField: "lessons[0].id"},
		{name: "blank title", doc: `{"lessons": [{"id": "a", "title": "", "pine_code": "", "python_code": "", "quiz": []}]}`, wantField: "lessons[0].title"},
		{name: "duplicate id", doc: `{"lessons": [` + validLesson + `, ` + validLesson + `]}`, wantField: "lessons[1].id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := lesson.Decode([]byte(tt.doc))
			require.Error(t, err)
			assert.True(t, lesson.IsInvalid(err))

			vErr, ok := core.AsValidationError(err)
			require.True(t, ok, "%v", err)
			var fields []string
			for _, f := range vErr.Fields {
				fields = append(fields, f.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestDecode_malformed(t *testing.T) {
	for _, doc := range []string{
		``,
		`{"lessons": [`,
		`{"lessons": {}}`,
		`{"lessons": [{"id": "a", "title": "t", "pine_code": "ENC:%%%", "python_code": "", "quiz": []}]}`,
		`{"lessons": [{"id": "a", "title": "t", "pine_code": 1, "python_code": "", "quiz": []}]}`,
	} {
		_, err := lesson.Decode([]byte(doc))
		assert.True(t, lesson.IsInvalid(err), "%q: %v", doc, err)
		assert.False(t, lesson.IsNotFound(err))
	}
}

func TestDecode_contentVariants(t *testing.T) {
	doc, err := lesson.Decode([]byte(`{"lessons": [{
		"id": "ind_macd", "title": "指标 1: MACD",
		"concept": "<h3>MACD</h3>",
		"pine_code": "ENC:EQsN",
		"python_code": "",
		"quiz": [],
		"isLocked": true, "isEncrypted": true
	}]}`))
	require.NoError(t, err)
	require.Len(t, doc.Lessons, 1)
	l := doc.Lessons[0]

	txt, ok := l.Concept.Plaintext()
	assert.True(t, ok)
	assert.Equal(t, "<h3>MACD</h3>", txt)

	cipher, ok := l.PineCode.Ciphertext()
	assert.True(t, ok)
	codec, err := obfuscate.New(obfuscate.DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(codec.XOR(cipher)))

	assert.True(t, l.ConceptExtra.IsEmpty())
	assert.True(t, l.IsLocked)
	assert.True(t, l.IsEncrypted)
	assert.NotNil(t, l.Quiz)
}

func TestMarshal_fidelity(t *testing.T) {
	in := `{"lessons": [{"id": "l1_intro", "title": "1. 简介 & <开始>", "concept": "<div class=\"detail-box\">均线 > 0</div>", ` +
		`"pine_code": "plot(close)", "python_code": "", "quiz": [], "difficulty": 2, "tags": ["basics", "<b>"], "author": {"name": "x"}}]}`
	doc, err := lesson.Decode([]byte(in))
	require.NoError(t, err)

	out, err := lesson.Marshal(doc)
	require.NoError(t, err)
	s := string(out)

	t.Run("no html escaping", func(t *testing.T) {
		assert.Contains(t, s, `"title": "1. 简介 & <开始>"`)
		assert.Contains(t, s, `"concept": "<div class=\"detail-box\">均线 > 0</div>"`)
		assert.NotContains(t, s, `\u003c`)
		assert.NotContains(t, s, `\u0026`)
	})

	t.Run("layout", func(t *testing.T) {
		assert.True(t, strings.HasPrefix(s, "{\n  \"lessons\": [\n    {\n      \"id\": \"l1_intro\",\n"))
		assert.True(t, strings.HasSuffix(s, "}\n"))
		assert.NotContains(t, s, "concept_extra")
		assert.NotContains(t, s, "summary")
		assert.Contains(t, s, `"quiz": []`)
	})

	t.Run("unknown keys survive", func(t *testing.T) {
		assert.Contains(t, s, `"difficulty": 2`)
		assert.Contains(t, s, `"<b>"`)
		assert.Contains(t, s, `"author": {`)

		again, err := lesson.Decode(out)
		require.NoError(t, err)
		out2, err := lesson.Marshal(again)
		require.NoError(t, err)
		assert.Equal(t, s, string(out2))
	})
}

func TestMarshal_emptyDocument(t *testing.T) {
	out, err := lesson.Marshal(lesson.Document{})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"lessons\": []\n}\n", string(out))
}

func TestLesson_Clone(t *testing.T) {
	l := testutil.NewLesson("l1_intro", "1. 简介", "")
	l.Summary = []string{"a"}
	c := l.Clone()

	c.Summary[0] = "b"
	c.Quiz[0].Choices[0].Text = "changed"
	assert.Equal(t, "a", l.Summary[0])
	assert.Equal(t, "this", l.Quiz[0].Choices[0].Text)
}

func TestLint(t *testing.T) {
	validate, translator := testutil.NewValidator()
	good := testutil.NewLesson("l1_intro", "1. 简介", "")
	noneCorrect := testutil.NewLesson("l2_vars_types", "2. 变量", "")
	noneCorrect.Quiz[0].Choices[0].IsCorrect = false
	oneChoice := testutil.NewLesson("l3_operators", "3. 运算符", "")
	oneChoice.Quiz[0].Choices = oneChoice.Quiz[0].Choices[:1]
	noQuestion := testutil.NewLesson("l4_control_flow", "4. 控制流", "")
	noQuestion.Quiz[0].Question = ""

	findings := lesson.Lint([]lesson.Lesson{good, noneCorrect, oneChoice, noQuestion}, validate, translator)

	var got []string
	for _, f := range findings {
		got = append(got, fmt.Sprintf("%s: %s", f.Field, f.Error))
	}
	assert.ElementsMatch(t, []string{
		"lessons[1](l2_vars_types).quiz[0].choices: exactly one choice must be correct",
		"lessons[2](l3_operators).quiz[0].choices: choices must contain at least 2 items",
		"lessons[3](l4_control_flow).quiz[0].q: this field is required",
	}, got)
}
