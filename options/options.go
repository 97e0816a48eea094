package options

// Options holds the flag-backed command-line settings. Fields are pointers
// so cmd can tell "not set" from a zero value when overriding the config
// file.
type Options struct {
	ConfigFile *string
	ShaderFile *string
	Target     *string // headless, window or hidden
	RenderNode *string // DRM render node for headless targets
	Width      *int
	Height     *int
	FPS        *int
	Cube       *bool
	Panels     *int
	FaceSize   *int
	Brightness *float64
	Gamma      *float64
	AudioFile  *string
	PlayAudio  *bool
	FFMPEGPath *string
	Watch      *bool
	Output     *string // path the transport writes corrected frames to
}
