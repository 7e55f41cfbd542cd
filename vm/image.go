package vm

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
)

// ErrImageTooShort reports an image file without even an origin word.
var ErrImageTooShort = errors.New("image too short")

// LoadImage copies a program image into memory. The image is big-endian on
// the wire regardless of host byte order: the first word is the origin
// address, the remaining words are stored from there up to the top of
// memory. A trailing odd byte is ignored. Images may be loaded repeatedly;
// later loads overwrite colliding addresses.
func (vm *VM) LoadImage(image []byte) error {
	if len(image) < 2 {
		return ErrImageTooShort
	}

	origin := word(binary.BigEndian.Uint16(image))
	addr := origin
	for i := 2; i+1 < len(image); i += 2 {
		vm.memory.write(addr, word(binary.BigEndian.Uint16(image[i:])))
		if addr == MemorySize-1 {
			break
		}
		addr++
	}
	return nil
}

// LoadImageFile loads the image at path. Errors carry the path so the
// caller can report which file failed.
func (vm *VM) LoadImageFile(path string) error {
	image, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load image %s: %w", path, err)
	}
	if err := vm.LoadImage(image); err != nil {
		return fmt.Errorf("load image %s: %w", path, err)
	}
	return nil
}
