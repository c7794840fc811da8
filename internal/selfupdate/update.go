package selfupdate

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Stage names a step of Update, reported through the progress callback.
type Stage string

const (
	StageCheck    Stage = "check"
	StageDownload Stage = "download"
	StageVerify   Stage = "verify"
	StageExtract  Stage = "extract"
	StageApply    Stage = "apply"
	StageDone     Stage = "done"
)

const binaryName = "rani"

// Update installs target over the running binary, or the latest release
// when target is empty. progress may be nil.
func (c *Checker) Update(ctx context.Context, current, target string, progress func(Stage, string)) error {
	if progress == nil {
		progress = func(Stage, string) {}
	}
	if IsDevBuild(current) {
		return ErrDevBuild
	}

	if target == "" {
		progress(StageCheck, "Checking for the latest version...")
		res, err := c.Check(ctx, current)
		if err != nil {
			return err
		}
		if !res.UpdateAvailable {
			return ErrAlreadyLatest
		}
		target = res.Latest.Tag
	}

	asset, err := assetNameFor(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return err
	}

	progress(StageDownload, "Downloading "+target+"...")
	archive, err := c.get(ctx, c.assetURL(target, asset), "")
	if err != nil {
		return fmt.Errorf("download archive: %w", err)
	}

	progress(StageVerify, "Verifying checksum...")
	sums, err := c.get(ctx, c.assetURL(target, "checksums.txt"), "")
	if err != nil {
		return fmt.Errorf("download checksums: %w", err)
	}
	want, ok := parseChecksums(sums)[asset]
	if !ok {
		return fmt.Errorf("%w: no checksum listed for %s", ErrChecksum, asset)
	}
	if err := verifyChecksum(archive, want); err != nil {
		return err
	}

	progress(StageExtract, "Extracting binary...")
	bin, err := extractBinary(archive, asset)
	if err != nil {
		return fmt.Errorf("extract binary: %w", err)
	}

	progress(StageApply, "Replacing binary...")
	path, err := c.execPath()
	if err != nil {
		return fmt.Errorf("resolve executable: %w", err)
	}
	if err := replaceFile(path, bin); err != nil {
		return fmt.Errorf("apply update: %w", err)
	}
	c.logger.WithField("version", target).Info("updated binary")
	progress(StageDone, "Updated to "+target)
	return nil
}

func (c *Checker) assetURL(tag, name string) string {
	return fmt.Sprintf("%s/%s/%s/releases/download/%s/%s",
		strings.TrimRight(c.downloadBase, "/"), c.owner, c.repo, tag, name)
}

var releaseArch = map[string]string{
	"amd64": "x86_64",
	"arm64": "arm64",
	"386":   "i386",
}

// assetNameFor returns the release archive built for a platform. macOS
// ships one universal archive.
func assetNameFor(goos, goarch string) (string, error) {
	if goos == "darwin" {
		return binaryName + "_Darwin_all.tar.gz", nil
	}
	arch, ok := releaseArch[goarch]
	if !ok {
		return "", fmt.Errorf("unsupported architecture: %s", goarch)
	}
	switch goos {
	case "linux":
		return fmt.Sprintf("%s_Linux_%s.tar.gz", binaryName, arch), nil
	case "windows":
		return fmt.Sprintf("%s_Windows_%s.zip", binaryName, arch), nil
	}
	return "", fmt.Errorf("unsupported operating system: %s", goos)
}

// parseChecksums reads "<sha256>  <file>" lines. Other lines are skipped.
func parseChecksums(data []byte) map[string]string {
	sums := map[string]string{}
	for _, line := range strings.Split(string(data), "\n") {
		if f := strings.Fields(line); len(f) == 2 {
			sums[f[1]] = f[0]
		}
	}
	return sums
}

func verifyChecksum(data []byte, wantHex string) error {
	sum := sha256.Sum256(data)
	if got := hex.EncodeToString(sum[:]); !strings.EqualFold(got, wantHex) {
		return fmt.Errorf("%w: want %s, got %s", ErrChecksum, wantHex, got)
	}
	return nil
}

// replaceFile swaps path for data through a temp file in the same
// directory, keeping the original mode. The temp file is re-read and
// hashed before the rename.
func replaceFile(path string, data []byte) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".rani-update-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	written, err := os.ReadFile(tmp.Name())
	if err != nil {
		return err
	}
	if a, b := sha256.Sum256(written), sha256.Sum256(data); !bytes.Equal(a[:], b[:]) {
		return fmt.Errorf("%w: temp file changed after write", ErrChecksum)
	}
	if err := os.Chmod(tmp.Name(), info.Mode()); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
