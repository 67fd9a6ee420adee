package server

import (
	"errors"
	"net/http"
	"testing"

	"devconnect/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Not Found", models.NewNotFoundError("post", 1), http.StatusNotFound},
		{"Unauthorized", models.NewUnauthorizedError("nope"), http.StatusUnauthorized},
		{"Validation", models.NewValidationError("bad input"), http.StatusBadRequest},
		{"Duplicate Like", models.NewDuplicateLikeError(), http.StatusBadRequest},
		{"Internal", models.NewInternalError(errors.New("boom")), http.StatusInternalServerError},
		{"Plain Error", errors.New("driver broke"), http.StatusInternalServerError},
		{"Wrapped AppError", errors.Join(errors.New("outer"), models.NewNotFoundError("post", 1)), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(tt.err))
		})
	}
}
