package softdev

import (
	"encoding/binary"
	"fmt"

	"github.com/gogpu/naga"
)

// spirvMagic is the first word of every SPIR-V module.
const spirvMagic = 0x07230203

// Compile compiles a WGSL module to a little-endian SPIR-V binary.
func Compile(src string) ([]byte, error) {
	b, err := naga.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile wgsl: %w", err)
	}
	if len(b) < 4 || len(b)%4 != 0 {
		return nil, fmt.Errorf("spirv: %d bytes is not a whole number of words", len(b))
	}
	if m := binary.LittleEndian.Uint32(b); m != spirvMagic {
		return nil, fmt.Errorf("spirv: bad magic %#08x", m)
	}
	return b, nil
}
