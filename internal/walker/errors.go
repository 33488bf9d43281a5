package walker

import (
	"errors"
	"fmt"
)

const (
	opStat            = "stat"
	opReadDirectory   = "read directory"
	opReadFile        = "read file"
	opDecodeFile      = "decode file"
	opLoadIgnoreRules = "load ignore rules"
	opWalk            = "walk"
)

// ErrNotDirectory is wrapped by an IOError when a walk starts at a non-directory.
var ErrNotDirectory = errors.New("not a directory")

// IOError reports a filesystem failure that aborted a walk.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (ioError *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", ioError.Op, ioError.Path, ioError.Err)
}

func (ioError *IOError) Unwrap() error {
	return ioError.Err
}

// NameError reports a directory entry whose name is not valid UTF-8.
type NameError struct {
	Directory string
	RawName   string
}

func (nameError *NameError) Error() string {
	return fmt.Sprintf("entry name %q in %s is not valid UTF-8", nameError.RawName, nameError.Directory)
}
