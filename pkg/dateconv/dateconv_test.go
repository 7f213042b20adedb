package dateconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	cases := []struct {
		name  string
		from  string
		to    string
		value string
		want  string
	}{
		{"eight digit", "Ymd", "d.m.Y", "20120725", "25.07.2012"},
		{"named month", "d/M/Y", "d.m.Y", "13/Jan/2012", "13.01.2012"},
		{"named month lowercase", "d/M/Y", "d.m.Y", "13/jan/2012", "13.01.2012"},
		{"numeric month", "d/m/Y", "d.m.Y", "13/7/2012", "13.07.2012"},
		{"dash target", "Ymd", "d-m-Y", "20120705", "05-07-2012"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Convert(tc.from, tc.to, tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestConvertRejectsUnknownShapes(t *testing.T) {
	cases := []struct {
		name  string
		from  string
		value string
	}{
		{"iso date", "Ymd", "2012-07-25"},
		{"unknown pattern", "Y-m-d", "2012-07-25"},
		{"garbage", "d/M/Y", "not a date"},
		{"impossible month", "Ymd", "20121325"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Convert(tc.from, "d.m.Y", tc.value)

			var parseErr *ParseError
			require.ErrorAs(t, err, &parseErr)
			assert.Equal(t, tc.value, parseErr.Value)
		})
	}
}
