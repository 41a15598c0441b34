package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	. "github.com/xufeiok/PineScript-Study/apps/api/echo"
	"github.com/xufeiok/PineScript-Study/core"
	"github.com/xufeiok/PineScript-Study/core/lesson"
	"github.com/xufeiok/PineScript-Study/core/progress"
	"github.com/xufeiok/PineScript-Study/storage/inmem"
	"github.com/xufeiok/PineScript-Study/tests"
)

const lessonsDoc = "lessons"

type testApp struct {
	*Server
	db     *inmemdb.DB
	logger *testutil.Logger
	conf   *core.Config
}

func testConfig() *core.Config {
	return &core.Config{
		Env:      "TEST",
		TestMode: true,
		AppName:  "PineScript Study",
		Server:   core.ServerConfig{DisableReqLogs: true},
	}
}

// setup builds a server over fresh in-memory stores.
func setup(t *testing.T) *testApp {
	t.Helper()
	db := inmemdb.Open()
	return setupWith(t, db, inmemdb.NewLessonRepository(db, lessonsDoc), inmemdb.NewProgressRepository(db))
}

func setupWith(t *testing.T, db *inmemdb.DB, lessonRepo lesson.Repository, progressRepo progress.Repository) *testApp {
	t.Helper()
	conf := testConfig()
	logger := &testutil.Logger{}
	srv := NewServer(ServerDeps{
		Conf:        conf,
		Logger:      logger,
		LessonRepo:  lessonRepo,
		ProgressSvc: progress.NewService(progressRepo, logger),
		Validate:    validate,
		Translator:  translator,
	})
	return &testApp{Server: srv, db: db, logger: logger, conf: conf}
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func (app *testApp) do(method, path string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newRequest(method, path, data...)
	app.ServeHTTP(rec, req)
	return rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
