package tests

import (
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xufeiok/PineScript-Study/core/obfuscate"
	"github.com/xufeiok/PineScript-Study/storage/inmem"
	"github.com/xufeiok/PineScript-Study/storage/jsonfile"
	"github.com/xufeiok/PineScript-Study/tests"
)

func Test_lessonApi_list(t *testing.T) {
	t.Run("missing document", func(t *testing.T) {
		app := setup(t)

		rec := app.do(http.MethodGet, "/lessons")

		checkCodeAndData(t, httpTest{
			wantCode: http.StatusNotFound,
			wantData: marchallObj(t, httpErr{Error: "lesson data not found"}),
		}, rec)
	})

	t.Run("served verbatim", func(t *testing.T) {
		app := setup(t)
		sealed := testutil.LockedLesson("strat_turtle", "策略 5: 海龟交易", "量化策略 (Strategies)")
		sealed.PineCode = obfuscate.Sealed([]byte("secret"))
		sealed.IsEncrypted = true
		data := testutil.MarshalLessons(t, testutil.NewLesson("l1_intro", "1. 简介 <Intro>", "基础语法 (Basics)"), sealed)
		repo := inmemdb.NewLessonRepository(app.db, lessonsDoc)
		require.NoError(t, repo.WriteRaw(context.Background(), data))

		rec := app.do(http.MethodGet, "/lessons")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, echo.MIMEApplicationJSONCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
		assert.Equal(t, string(data), rec.Body.String())
		assert.Contains(t, rec.Body.String(), `"<h3>1. 简介 <Intro></h3>"`)
		assert.Contains(t, rec.Body.String(), `"pine_code": "ENC:`)
	})

	t.Run("malformed document still served", func(t *testing.T) {
		app := setup(t)
		repo := inmemdb.NewLessonRepository(app.db, lessonsDoc)
		require.NoError(t, repo.WriteRaw(context.Background(), []byte(`{"lessons": [`)))

		rec := app.do(http.MethodGet, "/lessons")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, `{"lessons": [`, rec.Body.String())
	})

	t.Run("from disk", func(t *testing.T) {
		dir := t.TempDir()
		db := inmemdb.Open()
		path := filepath.Join(dir, "web", "data", "lessons.json")
		app := setupWith(t, db, jsonfile.NewLessonRepository(path), inmemdb.NewProgressRepository(db))

		rec := app.do(http.MethodGet, "/lessons")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		data := testutil.MarshalLessons(t, testutil.NewLesson("l1_intro", "1. 简介", "基础语法 (Basics)"))
		testutil.WriteFile(t, dir, filepath.Join("web", "data", "lessons.json"), data)

		rec = app.do(http.MethodGet, "/lessons")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, string(data), rec.Body.String())
	})
}
