package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/movies-etl/internal/pkg/logger"
)

func TestProseRecognizer_LoadsModelOnce(t *testing.T) {
	r := NewProseRecognizer(logger.Nop())
	require.NotNil(t, r.model)

	model := r.model
	r.People("Tom Hanks met Meg Ryan.")
	r.People("Meg Ryan met Tom Hanks.")
	assert.Same(t, model, r.model)
}

func TestProseRecognizer_Blank(t *testing.T) {
	r := NewProseRecognizer(logger.Nop())
	assert.Empty(t, r.People(""))
	assert.Empty(t, r.People("   "))
}

func TestProseRecognizer_People(t *testing.T) {
	r := NewProseRecognizer(logger.Nop())

	cases := map[string]struct {
		text string
		want []string
	}{
		"sentence keeps persons only": {
			text: "Tom Hanks met Meg Ryan in Seattle.",
			want: []string{"Tom Hanks", "Meg Ryan"},
		},
		// The model needs sentence context; a bare run of names yields nothing.
		"space separated cast column": {
			text: "Sam Worthington Zoe Saldana Sigourney Weaver Stephen Lang Michelle Rodriguez",
			want: nil,
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.People(tc.text))
		})
	}
}
