package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	cases := []struct {
		err  *Error
		want string
	}{
		{&Error{Code: CodeParse, Op: "movie.budget", Message: "bad int"}, "movie.budget: bad int (parse)"},
		{&Error{Code: CodeConfig, Op: "resolve"}, "resolve (config)"},
		{&Error{Code: CodeInternal, Message: "boom"}, "boom (internal)"},
		{&Error{Code: CodeNotFound}, "not_found"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.Error())
	}
	var nilErr *Error
	assert.Equal(t, "<nil>", nilErr.Error())
}

func TestWrapKeepsExistingCode(t *testing.T) {
	root := errors.New("disk full")
	parse := New(CodeParse, "movie.runtime", "bad float", root)

	wrapped := Wrap(CodePersistence, "transform", fmt.Errorf("record 7: %w", parse))
	require.Error(t, wrapped)
	assert.True(t, IsCode(wrapped, CodeParse))
	assert.False(t, IsCode(wrapped, CodePersistence))
	assert.ErrorIs(t, wrapped, root)

	plain := Wrap(CodePersistence, "transform", root)
	assert.Equal(t, CodePersistence, CodeOf(plain))
	assert.Nil(t, Wrap(CodeInternal, "noop", nil))
	assert.Equal(t, Code(""), CodeOf(root))
}
