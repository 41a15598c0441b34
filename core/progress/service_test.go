package progress_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xufeiok/PineScript-Study/core/progress"
	"github.com/xufeiok/PineScript-Study/storage/inmem"
	"github.com/xufeiok/PineScript-Study/tests"
)

func TestService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("missing store is silent", func(t *testing.T) {
		logger := &testutil.Logger{}
		svc := progress.NewService(inmemdb.NewProgressRepository(inmemdb.Open()), logger)

		got := svc.Get(ctx, "")
		assert.Equal(t, progress.DefaultUser, got.User)
		assert.JSONEq(t, `{}`, string(got.Progress))
		assert.Zero(t, logger.Count("WARN"))
	})

	t.Run("malformed store is logged", func(t *testing.T) {
		db := inmemdb.Open()
		db.SetProgressRaw([]byte(`{"u1": `))
		logger := &testutil.Logger{}
		svc := progress.NewService(inmemdb.NewProgressRepository(db), logger)

		got := svc.Get(ctx, "u1")
		assert.JSONEq(t, `{}`, string(got.Progress))
		assert.Equal(t, 1, logger.Count("WARN"))
	})

	t.Run("known and unknown users", func(t *testing.T) {
		db := inmemdb.Open()
		db.SetProgressRaw([]byte(`{"u1": {"completed": ["l1_intro"]}, "default": {"x": 1}}`))
		svc := progress.NewService(inmemdb.NewProgressRepository(db), &testutil.Logger{})

		assert.JSONEq(t, `{"completed": ["l1_intro"]}`, string(svc.Get(ctx, " u1 ").Progress))
		assert.JSONEq(t, `{"x": 1}`, string(svc.Get(ctx, "   ").Progress))
		assert.JSONEq(t, `{}`, string(svc.Get(ctx, "u2").Progress))
	})
}

func TestService_Save(t *testing.T) {
	ctx := context.Background()
	db := inmemdb.Open()
	svc := progress.NewService(inmemdb.NewProgressRepository(db), &testutil.Logger{})

	require.NoError(t, svc.Save(ctx, "u1", progress.Record(`{"completed": ["a"], "scores": {"a": 3}}`)))
	require.NoError(t, svc.Save(ctx, "u2", progress.Record(`{"completed": []}`)))
	require.NoError(t, svc.Save(ctx, "u1", progress.Record(`{"completed": ["b"]}`)))

	// overwrite, no merge
	assert.JSONEq(t, `{"completed": ["b"]}`, string(svc.Get(ctx, "u1").Progress))
	assert.JSONEq(t, `{"completed": []}`, string(svc.Get(ctx, "u2").Progress))

	t.Run("write failure", func(t *testing.T) {
		db.FailProgressWrites(errors.New("disk full"))
		defer db.FailProgressWrites(nil)

		err := svc.Save(ctx, "u1", progress.Record(`{}`))
		require.Error(t, err)
		assert.Equal(t, "disk full", errors.Cause(err).Error())
		assert.JSONEq(t, `{"completed": ["b"]}`, string(svc.Get(ctx, "u1").Progress))
	})

	t.Run("malformed store", func(t *testing.T) {
		db.SetProgressRaw([]byte(`[]`))
		err := svc.Save(ctx, "u1", progress.Record(`{}`))
		assert.Error(t, err)
	})
}

func TestSaveProgress_Validate(t *testing.T) {
	validate, _ := testutil.NewValidator()
	tests := []struct {
		name     string
		body     string
		wantUser string
		wantTags map[string]string
	}{
		{name: "valid", body: `{"user": " u1 ", "progress": {"a": 1}}`, wantUser: "u1"},
		{name: "empty object", body: `{"user": "u1", "progress": {}}`, wantUser: "u1"},
		{name: "no user", body: `{"progress": {}}`, wantTags: map[string]string{"user": "required"}},
		{name: "blank user", body: `{"user": "  ", "progress": {}}`, wantTags: map[string]string{"user": "required"}},
		{name: "no progress", body: `{"user": "u1"}`, wantTags: map[string]string{"progress": "required"}},
		{name: "null progress", body: `{"user": "u1", "progress": null}`, wantTags: map[string]string{"progress": "jsonobject"}},
		{name: "array progress", body: `{"user": "u1", "progress": [1]}`, wantTags: map[string]string{"progress": "jsonobject"}},
		{name: "string progress", body: `{"user": "u1", "progress": "done"}`, wantTags: map[string]string{"progress": "jsonobject"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var sp progress.SaveProgress
			require.NoError(t, json.Unmarshal([]byte(tc.body), &sp))

			err := sp.Validate(validate)
			if tc.wantTags == nil {
				require.NoError(t, err)
				assert.Equal(t, tc.wantUser, sp.User)
				return
			}
			var vErrs validator.ValidationErrors
			require.True(t, errors.As(err, &vErrs), "got %v", err)
			got := make(map[string]string, len(vErrs))
			for _, e := range vErrs {
				got[e.Field()] = e.Tag()
			}
			assert.Equal(t, tc.wantTags, got)
		})
	}
}

func TestUserOrDefault(t *testing.T) {
	assert.Equal(t, "default", progress.UserOrDefault(""))
	assert.Equal(t, "default", progress.UserOrDefault(" \t"))
	assert.Equal(t, "小明", progress.UserOrDefault(" 小明 "))
}
