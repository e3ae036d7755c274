package imgproc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediaforge/mediaconv/pkg/convert/imgproc"
)

func TestParseResizeSpec(t *testing.T) {
	tests := []struct {
		name         string
		spec         string
		wantW, wantH int
		wantErr      bool
	}{
		{name: "explicit dimensions", spec: "1920x1080", wantW: 1920, wantH: 1080},
		{name: "width only keeps aspect", spec: "800x", wantW: 800, wantH: 0},
		{name: "height only keeps aspect", spec: "x600", wantW: 0, wantH: 600},
		{name: "bare width", spec: "640", wantW: 640, wantH: 0},
		{name: "percentage", spec: "50%", wantW: 100, wantH: 50},
		{name: "percentage rounds down", spec: "33%", wantW: 66, wantH: 33},
		{name: "tiny percentage clamps to 1", spec: "0.1%", wantW: 1, wantH: 1},
		{name: "uppercase x accepted", spec: "320X240", wantW: 320, wantH: 240},
		{name: "empty", spec: "", wantErr: true},
		{name: "x alone", spec: "x", wantErr: true},
		{name: "zero percent", spec: "0%", wantErr: true},
		{name: "negative width", spec: "-10x20", wantErr: true},
		{name: "words", spec: "bigxsmall", wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, h, err := imgproc.ParseResizeSpec(tc.spec, 200, 100)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantW, w)
			assert.Equal(t, tc.wantH, h)
		})
	}
}
