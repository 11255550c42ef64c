package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAudienceLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    AudienceLevel
		wantErr bool
	}{
		{in: "beginner", want: Beginner},
		{in: "Intermediate", want: Intermediate},
		{in: " ADVANCED\t", want: Advanced},
		{in: "expert", wantErr: true},
		{in: "", wantErr: true},
		{in: "begin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAudienceLevel(tt.in)
			if tt.wantErr {
				var ive *InputValidationError
				require.ErrorAs(t, err, &ive)
				assert.Equal(t, tt.in, ive.Value)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSectionsContent(t *testing.T) {
	var c SectionsContent
	c.Set("b", "two")
	c.Set("a", "one")
	c.Set("b", "two, revised")

	assert.Equal(t, []string{"b", "a"}, c.Titles())
	assert.Equal(t, 2, c.Len())
	text, ok := c.Get("b")
	require.True(t, ok)
	assert.Equal(t, "two, revised", text)

	clone := c.Clone()
	clone.Set("c", "three")
	assert.Equal(t, 2, c.Len(), "clone must not share storage")
	_, ok = c.Get("c")
	assert.False(t, ok)
}

func TestStateCloneIsIndependent(t *testing.T) {
	st := State{Topic: "t", Outline: outlineWith("A")}
	st.Sections.Set("A", "alpha")

	next := st.clone()
	next.Outline.Sections[0].Title = "changed"
	next.Sections.Set("B", "beta")

	assert.Equal(t, "A", st.Outline.Sections[0].Title)
	assert.Equal(t, 1, st.Sections.Len())
}

func TestErrorMessages(t *testing.T) {
	ive := &InputValidationError{Value: "pro", Attempts: 3}
	assert.Equal(t, `invalid audience level "pro" (want one of beginner, intermediate, advanced) after 3 attempts`, ive.Error())

	inner := &ModelInvocationError{Op: "outline", Err: assert.AnError}
	assert.Same(t, inner, asModelError("other", inner).(*ModelInvocationError))
}
