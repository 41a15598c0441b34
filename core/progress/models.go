package progress

import (
	"encoding/json"

	"github.com/go-playground/validator/v10"

	"github.com/xufeiok/PineScript-Study/core"
)

// DefaultUser is assumed when a request names no user.
const DefaultUser = "default"

type (
	// Record is one user's progress. Its shape belongs to the client; only "is an object" is enforced.
	Record = json.RawMessage

	// Document maps user ids to their progress.
	Document map[string]Record

	SaveProgress struct {
		User     string          `json:"user" validate:"required,notblank"`
		Progress json.RawMessage `json:"progress" validate:"required,jsonobject"`
	}

	UserProgress struct {
		User     string          `json:"user"`
		Progress json.RawMessage `json:"progress"`
	}
)

// Empty is the progress of a user nothing is known about.
func Empty() Record {
	return Record("{}")
}

func (sp *SaveProgress) Validate(validate *validator.Validate) error {
	sp.User = core.CleanString(sp.User)
	return validate.Struct(sp)
}

// UserOrDefault cleans a user id coming from a query string.
func UserOrDefault(user string) string {
	if user = core.CleanString(user); user == "" {
		return DefaultUser
	}
	return user
}
