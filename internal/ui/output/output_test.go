package output_test

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"go.trai.ch/mazerepair/internal/ui/output"
	"go.trai.ch/mazerepair/internal/ui/style"
)

func TestColorProfile(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, termenv.Ascii, output.ColorProfile(), "NO_COLOR should force Ascii profile")

	// The detected profile depends on the environment.
	t.Setenv("NO_COLOR", "")
	p := output.ColorProfile()
	assert.True(t, p >= termenv.TrueColor && p <= termenv.Ascii, "should return a valid profile")
}

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	out := output.New(&buf)
	assert.NotNil(t, out)

	_, _ = out.WriteString("test")
	assert.Equal(t, "test", buf.String())
}

func TestNew_NoColorStripsStyling(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	var buf bytes.Buffer
	out := output.New(&buf)
	_, _ = out.WriteString(out.String(style.Check).Foreground(termenv.RGBColor(string(style.Green))).String())

	assert.Equal(t, style.Check, buf.String())
}

func TestNew_Nil(t *testing.T) {
	out := output.New(nil)
	assert.NotNil(t, out)
}
