package memory

import "errors"

// ErrImageLoad is the host-only error kind from §7: the ROM file could not
// be read or does not fit at its base address. It is fatal to the host; the engine itself is
// unaffected since it never touches the filesystem.
var ErrImageLoad = errors.New("memory: image load failure")
