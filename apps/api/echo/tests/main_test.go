package tests

import (
	"os"
	"testing"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/xufeiok/PineScript-Study/tests"
)

var (
	validate   *validator.Validate
	translator ut.Translator
)

func TestMain(m *testing.M) {
	validate, translator = testutil.NewValidator()
	os.Exit(m.Run())
}
