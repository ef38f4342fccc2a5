// Package assembler names, concatenates and writes bundles.
package assembler

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/zerr"
)

// OutputName computes the bundle file name for base.
// Any query string and extension of base are dropped, then suffix and the type extension are appended.
func OutputName(base, suffix string, t domain.AssetType) string {
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}
	base = strings.TrimSuffix(base, path.Ext(base))
	return base + suffix + t.Ext()
}

// Concat joins the bodies of res in resolution order. Failed files contribute nothing.
func Concat(res *domain.Resolution) []byte {
	var buf bytes.Buffer
	for _, key := range res.Order {
		buf.WriteString(res.Body(key))
	}
	return buf.Bytes()
}

// Digest returns the hex xxhash of content.
func Digest(content []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(content))
}

// Assembler writes bundles of one asset type.
type Assembler struct {
	asset domain.AssetConfig
}

// New creates an Assembler for the given asset root and URI prefix.
func New(asset domain.AssetConfig) *Assembler {
	return &Assembler{asset: asset}
}

// Build concatenates res and computes the destination of its bundle without writing it.
func (a *Assembler) Build(res *domain.Resolution, target domain.Target) (*domain.Bundle, error) {
	dir, err := a.outputDir(target)
	if err != nil {
		return nil, err
	}

	base := target.Name
	if base == "" {
		base = domain.DefaultOutputName
	}
	name := OutputName(filepath.Base(filepath.FromSlash(base)), target.Suffix, res.Type)
	outPath := filepath.Join(dir, name)
	content := Concat(res)

	return &domain.Bundle{
		Type:    res.Type,
		Name:    name,
		Path:    outPath,
		URI:     a.uri(outPath),
		Digest:  Digest(content),
		Content: content,
		Order:   res.Order,
		Failed:  res.Failed,
	}, nil
}

// Write builds the bundle of res and writes it atomically to its destination.
// Missing directories are created. The write is skipped when the file already holds the same content.
func (a *Assembler) Write(res *domain.Resolution, target domain.Target) (*domain.Bundle, error) {
	bundle, err := a.Build(res, target)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(bundle.Path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		err = fmt.Errorf("%w: %w: %w", domain.ErrWriteFailed, domain.ErrOutputDirCreateFailed, err)
		return nil, zerr.With(err, "dir", dir)
	}

	if existing, err := os.ReadFile(bundle.Path); err == nil && Digest(existing) == bundle.Digest {
		return bundle, nil
	}

	if err := writeAtomic(bundle.Path, bundle.Content); err != nil {
		return nil, zerr.With(fmt.Errorf("%w: %w", domain.ErrWriteFailed, err), "path", bundle.Path)
	}
	bundle.Written = true
	return bundle, nil
}

// outputDir resolves the destination directory: explicit override, then type root, then cwd.
func (a *Assembler) outputDir(target domain.Target) (string, error) {
	switch {
	case target.Dir != "":
		return filepath.Abs(target.Dir)
	case a.asset.Root != "":
		return filepath.Abs(a.asset.Root)
	default:
		cwd, err := os.Getwd()
		if err != nil {
			return "", zerr.Wrap(err, "failed to get working directory")
		}
		return cwd, nil
	}
}

// uri maps an output path to its public URI under the type prefix.
// Paths outside the type root fall back to their slash form.
func (a *Assembler) uri(outPath string) string {
	if a.asset.Root == "" {
		return filepath.ToSlash(outPath)
	}
	root, err := filepath.Abs(a.asset.Root)
	if err != nil {
		return filepath.ToSlash(outPath)
	}
	rel, err := filepath.Rel(root, outPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.ToSlash(outPath)
	}
	prefix := a.asset.URIPrefix
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return path.Join(prefix, filepath.ToSlash(rel))
}

func writeAtomic(dst string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(content); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}
	return os.Rename(tmpName, dst)
}
