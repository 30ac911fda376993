package dockerfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mediaforge/ffbuild/pkg/config"
	"github.com/mediaforge/ffbuild/pkg/release"
	"github.com/mediaforge/ffbuild/pkg/source"
)

const defaultConfigure = `PATH="$HOME/bin:$PATH" PKG_CONFIG_PATH="$HOME/ffmpeg_build/lib/pkgconfig" ./configure --prefix="$HOME/ffmpeg_build" --pkg-config-flags="--static" --extra-cflags="-I$HOME/ffmpeg_build/include" --extra-ldflags="-L$HOME/ffmpeg_build/lib" --extra-libs="-lpthread -lm" --bindir="$HOME/bin" --enable-gpl --enable-gnutls --enable-libaom --enable-libass --enable-libfdk-aac --enable-libfreetype --enable-libmp3lame --enable-libopus --enable-libvorbis --enable-libvpx --enable-libx264 --enable-libx265 --enable-nonfree`

func generate(t *testing.T, target source.Target, conf *config.Config) string {
	t.Helper()
	g := &Generator{Target: target, Config: conf, Base: "FROM base\n"}
	actual, err := g.Generate()
	require.NoError(t, err)
	return actual
}

func TestGenerateSourceArchive(t *testing.T) {
	v, err := release.NewVersion("4.3.1")
	require.NoError(t, err)

	actual := generate(t, source.SourceArchive{Version: v}, config.DefaultConfig())
	expected := `FROM base

RUN wget https://ffmpeg.org/releases/ffmpeg-4.3.1.tar.bz2 \
 && tar xjvf ffmpeg-4.3.1.tar.bz2 \
 && cd ffmpeg-4.3.1 \
 && ` + defaultConfigure + ` \
 && PATH="$HOME/bin:$PATH" make -j$(nproc) \
 && make install
ENV PATH="/root/bin:$PATH"
ENTRYPOINT ["ffmpeg"]
`
	require.Equal(t, expected, actual)
	require.NotContains(t, actual, "git ")
}

func TestGenerateCloneRemote(t *testing.T) {
	actual := generate(t, source.CloneRemote{Ref: "release/4.3"}, config.DefaultConfig())
	expected := `FROM base

RUN git clone https://github.com/FFmpeg/FFmpeg.git FFmpeg \
 && cd FFmpeg \
 && git checkout release/4.3 \
 && ` + defaultConfigure + ` \
 && PATH="$HOME/bin:$PATH" make -j$(nproc) \
 && make install
ENV PATH="/root/bin:$PATH"
ENTRYPOINT ["ffmpeg"]
`
	require.Equal(t, expected, actual)
}

func TestGenerateCloneRemoteHead(t *testing.T) {
	actual := generate(t, source.CloneRemote{Ref: "HEAD"}, config.DefaultConfig())
	require.NotContains(t, actual, "git checkout")
	require.Contains(t, actual, "git clone https://github.com/FFmpeg/FFmpeg.git FFmpeg \\\n && cd FFmpeg \\\n && PATH=")
}

func TestGenerateCopyLocal(t *testing.T) {
	conf := config.DefaultConfig()
	conf.Parallelism = "8"

	actual := generate(t, source.CopyLocal{Ref: "abc123"}, conf)
	expected := `FROM base

COPY . /FFmpeg
WORKDIR /FFmpeg
RUN git checkout abc123 \
 && ` + defaultConfigure + ` \
 && PATH="$HOME/bin:$PATH" make -j8 \
 && make install
ENV PATH="/root/bin:$PATH"
ENTRYPOINT ["ffmpeg"]
`
	require.Equal(t, expected, actual)
}

func TestGenerateCopyLocalHead(t *testing.T) {
	actual := generate(t, source.CopyLocal{Ref: "HEAD"}, config.DefaultConfig())
	require.Contains(t, actual, "WORKDIR /FFmpeg\nRUN PATH=\"$HOME/bin:$PATH\" PKG_CONFIG_PATH=")
}

func TestConfigureWithoutNonfreeLibraries(t *testing.T) {
	conf := config.DefaultConfig()
	conf.Libraries = []string{"libx264", "libvpx"}

	g := &Generator{Config: conf}
	actual := g.ConfigureCommand()
	require.Contains(t, actual, "--enable-gpl --enable-libvpx --enable-libx264")
	require.NotContains(t, actual, "nonfree")
	require.NotContains(t, actual, "fdk")
}

func TestNewGeneratorBase(t *testing.T) {
	dir := t.TempDir()
	target := source.CloneRemote{Ref: "HEAD"}

	g, err := NewGenerator(target, config.DefaultConfig(), dir)
	require.NoError(t, err)
	require.Equal(t, defaultBaseDockerfile, g.Base)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "Dockerfile.base"), []byte("FROM project\n"), 0o644))
	g, err = NewGenerator(target, config.DefaultConfig(), dir)
	require.NoError(t, err)
	require.Equal(t, "FROM project\n", g.Base)

	conf := config.DefaultConfig()
	conf.BaseDockerfile = filepath.Join(dir, "Custom.base")
	_, err = NewGenerator(target, conf, dir)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(conf.BaseDockerfile, []byte("FROM custom\n"), 0o644))
	g, err = NewGenerator(target, conf, dir)
	require.NoError(t, err)
	require.Equal(t, "FROM custom\n", g.Base)
}

func TestDefaultBaseDockerfile(t *testing.T) {
	require.Contains(t, defaultBaseDockerfile, "FROM ubuntu")
	require.Contains(t, defaultBaseDockerfile, "wget")
	require.Contains(t, defaultBaseDockerfile, "git")
}
