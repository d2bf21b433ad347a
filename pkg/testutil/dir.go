package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing/fstest"

	"src.pyweb.sh/pkg/must"
)

// TempDirer is the subset of [testing.TB] used to create temporary
// directories.
type TempDirer interface {
	Cleanuper
	TempDir() string
}

// TempDir returns a new temporary directory, with symlinks in its path
// resolved. It is removed when the test finishes.
func TempDir(c TempDirer) string {
	return must.OK1(filepath.EvalSymlinks(c.TempDir()))
}

// InTempDir changes into a new temporary directory for the duration of a
// test, and returns it.
func InTempDir(c TempDirer) string {
	dir := TempDir(c)
	old := must.OK1(os.Getwd())
	must.Chdir(dir)
	c.Cleanup(func() { must.Chdir(old) })
	return dir
}

// Dir describes the layout of a directory. The keys are names of entries, and
// each value is a string for the content of a regular file, a File, or a
// nested Dir.
type Dir map[string]any

// File describes a regular file with its permission bits.
type File struct {
	Perm    os.FileMode
	Content string
}

// ApplyDir creates the entries of dir in the working directory.
func ApplyDir(dir Dir) { ApplyDirIn(dir, ".") }

// ApplyDirIn creates the entries of dir in root. Existing directories are
// reused.
func ApplyDirIn(dir Dir, root string) {
	for name, entry := range dir {
		path := filepath.Join(root, name)
		switch entry := entry.(type) {
		case string:
			must.OK(os.WriteFile(path, []byte(entry), 0o644))
		case File:
			must.OK(os.WriteFile(path, []byte(entry.Content), entry.Perm))
		case Dir:
			must.MkdirAll(path)
			ApplyDirIn(entry, path)
		default:
			panic("file is neither string, File nor Dir")
		}
	}
}

// FS returns an in-memory file system with the layout of dir.
func (dir Dir) FS() fs.FS {
	fsys := fstest.MapFS{}
	dir.addTo(fsys, "")
	return fsys
}

func (dir Dir) addTo(fsys fstest.MapFS, prefix string) {
	for name, entry := range dir {
		path := prefix + name
		switch entry := entry.(type) {
		case string:
			fsys[path] = &fstest.MapFile{Data: []byte(entry), Mode: 0o644}
		case File:
			fsys[path] = &fstest.MapFile{Data: []byte(entry.Content), Mode: entry.Perm}
		case Dir:
			fsys[path] = &fstest.MapFile{Mode: fs.ModeDir | 0o755}
			entry.addTo(fsys, path+"/")
		default:
			panic("file is neither string, File nor Dir")
		}
	}
}
