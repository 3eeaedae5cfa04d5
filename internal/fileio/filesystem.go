package fileio

import (
	"io/fs"
	"os"
)

// FileSystem is the slice of the os package the service needs. Tests and
// embedders can substitute it; OS is the default.
type FileSystem interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Stat(name string) (fs.FileInfo, error)
	Rename(oldpath, newpath string) error
	Remove(name string) error
}

// OS implements FileSystem on top of the host operating system.
type OS struct{}

var _ FileSystem = OS{}

func (OS) ReadFile(name string) ([]byte, error) { return os.ReadFile(name) }

func (OS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (OS) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

func (OS) Rename(oldpath, newpath string) error { return os.Rename(oldpath, newpath) }

func (OS) Remove(name string) error { return os.Remove(name) }
