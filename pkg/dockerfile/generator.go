package dockerfile

import (
	// blank import for embeds
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mediaforge/ffbuild/pkg/checkout"
	"github.com/mediaforge/ffbuild/pkg/config"
	"github.com/mediaforge/ffbuild/pkg/global"
	"github.com/mediaforge/ffbuild/pkg/source"
	"github.com/mediaforge/ffbuild/pkg/util/console"
	"github.com/mediaforge/ffbuild/pkg/util/files"
)

//go:embed embed/Dockerfile.base
var defaultBaseDockerfile string

const (
	// where the local checkout is copied to inside the image
	copyDir = "/FFmpeg"
	// the directory git clone creates for the upstream repository
	cloneDir = "FFmpeg"

	prefix = `$HOME/ffmpeg_build`
)

type Generator struct {
	Target source.Target
	Config *config.Config
	// Base is the Dockerfile the generated steps are appended to
	Base string
}

// NewGenerator renders target on top of the base Dockerfile: the configured one, or
// Dockerfile.base in dir, or a built-in default.
func NewGenerator(target source.Target, conf *config.Config, dir string) (*Generator, error) {
	base, err := loadBase(conf, dir)
	if err != nil {
		return nil, err
	}
	return &Generator{Target: target, Config: conf, Base: base}, nil
}

func loadBase(conf *config.Config, dir string) (string, error) {
	if conf.BaseDockerfile != "" {
		contents, ok, err := files.ReadFileIfExists(conf.BaseDockerfile)
		if err != nil {
			return "", err
		}
		if !ok {
			return "", fmt.Errorf("Base Dockerfile %s does not exist", conf.BaseDockerfile)
		}
		console.Debugf("Using base Dockerfile %s", conf.BaseDockerfile)
		return contents, nil
	}

	path := filepath.Join(dir, global.BaseDockerfileName)
	contents, ok, err := files.ReadFileIfExists(path)
	if err != nil {
		return "", err
	}
	if ok {
		console.Debugf("Using base Dockerfile %s", path)
		return contents, nil
	}
	return defaultBaseDockerfile, nil
}

func (g *Generator) Generate() (string, error) {
	steps, err := g.sourceSteps()
	if err != nil {
		return "", err
	}

	lines := []string{strings.TrimRight(g.Base, "\n"), ""}
	if copyLocal, ok := g.Target.(source.CopyLocal); ok {
		lines = append(lines, "COPY . "+copyDir, "WORKDIR "+copyDir)
		steps = g.checkout(copyLocal.Ref)
	}

	steps = append(steps, g.ConfigureCommand(), g.MakeCommand(), "make install")
	lines = append(lines,
		"RUN "+strings.Join(steps, " \\\n && "),
		`ENV PATH="/root/bin:$PATH"`,
		`ENTRYPOINT ["ffmpeg"]`,
	)
	return strings.Join(lines, "\n") + "\n", nil
}

func (g *Generator) sourceSteps() ([]string, error) {
	switch t := g.Target.(type) {
	case source.SourceArchive:
		name := "ffmpeg-" + t.Version.String()
		return []string{
			fmt.Sprintf("wget %s/%s.tar.bz2", strings.TrimRight(g.Config.ReleaseURL, "/"), name),
			fmt.Sprintf("tar xjvf %s.tar.bz2", name),
			"cd " + name,
		}, nil
	case source.CloneRemote:
		steps := []string{
			"git clone " + g.Config.UpstreamURL + " " + cloneDir,
			"cd " + cloneDir,
		}
		return append(steps, g.checkout(t.Ref)...), nil
	case source.CopyLocal:
		return nil, nil
	}
	return nil, fmt.Errorf("Unknown build target %T", g.Target)
}

// HEAD is what the clone or copy already has checked out
func (g *Generator) checkout(ref string) []string {
	if ref == "" || ref == checkout.DefaultRef {
		return []string{}
	}
	return []string{"git checkout " + ref}
}

func (g *Generator) ConfigureCommand() string {
	args := []string{
		`PATH="$HOME/bin:$PATH" PKG_CONFIG_PATH="` + prefix + `/lib/pkgconfig"`,
		"./configure",
		`--prefix="` + prefix + `"`,
		`--pkg-config-flags="--static"`,
		`--extra-cflags="-I` + prefix + `/include"`,
		`--extra-ldflags="-L` + prefix + `/lib"`,
		`--extra-libs="-lpthread -lm"`,
		`--bindir="$HOME/bin"`,
		"--enable-gpl",
	}
	nonfree := false
	for _, lib := range g.Config.EnabledLibraries() {
		args = append(args, "--enable-"+lib.Name)
		nonfree = nonfree || lib.Nonfree
	}
	if nonfree {
		args = append(args, "--enable-nonfree")
	}
	return strings.Join(args, " ")
}

func (g *Generator) MakeCommand() string {
	return `PATH="$HOME/bin:$PATH" make -j` + g.Config.Parallelism
}
