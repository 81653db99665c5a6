package crk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSections(t *testing.T) {
	assert := assert.New(t)
	for _, test := range []struct {
		name     string
		lines    []string
		expected [][]string
	}{
		{
			"simple",
			[]string{"a", "b", "", "c"},
			[][]string{{"a", "b"}, {"c"}},
		},
		{
			"leading and trailing blanks",
			[]string{"", "  ", "a", "", ""},
			[][]string{{"a"}},
		},
		{
			"blank runs collapse",
			[]string{"a", "", "", "", "b"},
			[][]string{{"a"}, {"b"}},
		},
		{
			"lines are trimmed",
			[]string{"  a  ", "\tb"},
			[][]string{{"a", "b"}},
		},
		{
			"comment-only line does not end a section",
			[]string{"a", "; note", "b"},
			[][]string{{"a", "; note", "b"}},
		},
		{
			"empty input",
			nil,
			nil,
		},
		{
			"only blanks",
			[]string{"", "   ", "\t"},
			nil,
		},
	} {
		assert.Equal(test.expected, sections(test.lines), test.name)
	}
}

func TestStripComments(t *testing.T) {
	assert := assert.New(t)
	for _, test := range []struct {
		lines    []string
		expected []string
	}{
		{[]string{"a ; comment"}, []string{"a"}},
		{[]string{"; whole line"}, nil},
		{[]string{"a;b;c"}, []string{"a"}},
		{[]string{"no comment"}, []string{"no comment"}},
		{[]string{"  padded ; x", "; gone", "kept"}, []string{"padded", "kept"}},
	} {
		assert.Equal(test.expected, stripComments(test.lines))
	}
}
