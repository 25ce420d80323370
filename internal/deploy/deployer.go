// Package deploy copies the kun map web assets into an output directory.
//
// Assets are copied in a fixed order and the first failure aborts the run.
// Files already copied are left in place.
package deploy

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// TargetDir is the sub-directory of the output directory the assets land in.
// It must already exist.
const TargetDir = "kun"

// Asset is a single source file and the name it is deployed under.
type Asset struct {
	Source string
	Target string
}

// DefaultAssets returns the kun map page assets located in webDir.
// The HTML page is deployed as index.html.
func DefaultAssets(webDir string) []Asset {
	return []Asset{
		{Source: filepath.Join(webDir, "kunmap.js"), Target: "kunmap.js"},
		{Source: filepath.Join(webDir, "kunmap.html"), Target: "index.html"},
	}
}

// Deployer copies a list of assets, reporting each copy to out.
type Deployer struct {
	assets []Asset
	out    io.Writer
	logger *slog.Logger
}

// New creates a Deployer. A nil logger discards log output.
func New(assets []Asset, out io.Writer, logger *slog.Logger) *Deployer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Deployer{assets: assets, out: out, logger: logger}
}

// Run copies every asset into <outputDir>/kun in order. The output directory
// is used verbatim.
func (d *Deployer) Run(outputDir string) error {
	if outputDir == "" {
		return &MissingArgumentError{}
	}

	destDir := filepath.Join(outputDir, TargetDir)
	for _, a := range d.assets {
		dst := filepath.Join(destDir, a.Target)
		n, err := copyFile(a.Source, dst)
		if err != nil {
			d.logger.Error("copy failed",
				slog.String("src", a.Source),
				slog.String("dst", dst),
				slog.Any("error", err),
			)
			return &CopyError{Source: a.Source, Target: dst, Code: 1, Err: err}
		}
		d.logger.Info("asset copied",
			slog.String("src", a.Source),
			slog.String("dst", dst),
			slog.Int64("bytes", n),
		)
		fmt.Fprintf(d.out, "'%s' -> '%s'\n", a.Source, dst)
	}
	return nil
}

// CopyFile copies src to dst, creating or truncating dst. The parent
// directory of dst must exist.
func CopyFile(src, dst string) error {
	_, err := copyFile(src, dst)
	return err
}

func copyFile(src, dst string) (int64, error) {
	//nolint:gosec // source paths come from the operator's web directory
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}
	if info.IsDir() {
		return 0, fmt.Errorf("%s: is a directory", src)
	}
	// Opening dst with O_TRUNC would empty src before it is read.
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(info, dstInfo) {
		return 0, fmt.Errorf("'%s' and '%s' are the same file", src, dst)
	}

	//nolint:gosec // destination is derived from the operator-supplied output directory
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, err
	}
	return n, out.Close()
}
