package shader

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

var contractUniforms = []string{
	"iResolution", "iTime", "iFrame", "iMouse", "iInputDir",
	"iChannel0", "iChannel1", "iChannel2", "iChannel3",
	"iCamPos", "iCamForward", "iCamRight", "iCamUp",
	"iBPM", "iBeatPhase", "iBeatPulse", "iBeatConfidence",
	"iAudioLevel", "iAudioLow", "iAudioMid", "iAudioHigh",
	"iParam1", "iParam2", "iParam3", "iParam4", "iParams", "iDebugAxes",
}

func TestPreambleDeclaresFullContract(t *testing.T) {
	for _, gles := range []bool{false, true} {
		p := GeneratePreamble(gles)
		for _, name := range contractUniforms {
			assert.Contains(t, p, name, "gles=%v", gles)
		}
	}
}

func TestPreambleVersionLines(t *testing.T) {
	assert.True(t, strings.HasPrefix(GeneratePreamble(false), "#version 410 core\n"))
	assert.True(t, strings.HasPrefix(GeneratePreamble(true), "#version 300 es\n"))
}

func TestGLESPreambleCarriesTanhPolyfill(t *testing.T) {
	p := GeneratePreamble(true)
	assert.Contains(t, p, "fast_tanh")
	assert.Contains(t, p, "#define tanh fast_tanh")
	assert.Contains(t, p, "precision highp float;")

	assert.NotContains(t, GeneratePreamble(false), "fast_tanh")
}

func TestGetFragmentShaderWrapsUserSource(t *testing.T) {
	user := "void mainImage(out vec4 fragColor, in vec2 fragCoord) { fragColor = vec4(1.0); }"
	full := GetFragmentShader(user, false)

	assert.Contains(t, full, user)
	assert.Contains(t, full, "mainImage(fragColor, gl_FragCoord.xy);")
	// Preamble precedes the user program, the wrapper follows it.
	assert.Less(t, strings.Index(full, "iResolution"), strings.Index(full, "mainImage(out"))
	assert.Greater(t, strings.Index(full, "void main(void)"), strings.Index(full, "mainImage(out"))
}

func TestVertexAndBlitVariants(t *testing.T) {
	assert.True(t, strings.HasPrefix(GenerateVertexShader(false), "#version 410 core"))
	assert.True(t, strings.HasPrefix(GenerateVertexShader(true), "#version 300 es"))

	assert.Contains(t, GetBlitFragmentShader(true, false), "1.0 - frag_uv.y")
	assert.NotContains(t, GetBlitFragmentShader(false, false), "1.0 - frag_uv.y")
	assert.Contains(t, GetBlitFragmentShader(true, true), "precision mediump float;")
}
