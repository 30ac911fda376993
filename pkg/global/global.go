package global

var (
	Version   = "0.0.1"
	BuildTime = "none"
	Verbose   = false

	ConfigFilename     = "ffbuild.yaml"
	BaseDockerfileName = "Dockerfile.base"

	DefaultTokenEnv    = "DOCKERHUB_TOKEN"
	DefaultUsernameEnv = "DOCKERHUB_USER"

	UpstreamURL   = "https://github.com/FFmpeg/FFmpeg.git"
	ReleaseURL    = "https://ffmpeg.org/releases"
	ReleasePrefix = "n"
)
