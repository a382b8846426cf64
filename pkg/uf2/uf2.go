// Package uf2 inspects UF2 firmware images.
package uf2

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// BlockSize is the fixed size of one UF2 block.
const BlockSize = 512

const (
	magicStart0 = 0x0a324655
	magicStart1 = 0x9e5d5157
	magicEnd    = 0x0ab16f30
)

const (
	flagNotMainFlash  = 0x00000001
	flagFileContainer = 0x00001000
	flagFamilyID      = 0x00002000
	flagMD5           = 0x00004000
)

// FamilyRP2040 is the UF2 family ID of RP2040 devices.
const FamilyRP2040 uint32 = 0xe48bff56

// ErrNotUF2 indicates the data is not a UF2 image.
var ErrNotUF2 = errors.New("not a UF2 image")

// Block is one decoded UF2 block.
type Block struct {
	Flags       uint32
	TargetAddr  uint32
	PayloadSize uint32
	BlockNo     uint32
	NumBlocks   uint32
	FamilyID    uint32 // file size instead when HasFamilyID is false
	Data        []byte
}

// HasFamilyID indicates FamilyID carries a family ID.
func (b *Block) HasFamilyID() bool {
	return b.Flags&flagFamilyID != 0
}

// NotMainFlash indicates the block is not flashed.
func (b *Block) NotMainFlash() bool {
	return b.Flags&flagNotMainFlash != 0
}

// ParseBlock decodes one raw block.
func ParseBlock(raw []byte) (*Block, error) {
	if len(raw) != BlockSize {
		return nil, fmt.Errorf("block must be %d bytes, got %d", BlockSize, len(raw))
	}
	le := binary.LittleEndian
	if le.Uint32(raw) != magicStart0 ||
		le.Uint32(raw[4:]) != magicStart1 ||
		le.Uint32(raw[BlockSize-4:]) != magicEnd {
		return nil, ErrNotUF2
	}
	blk := &Block{
		Flags:       le.Uint32(raw[8:]),
		TargetAddr:  le.Uint32(raw[12:]),
		PayloadSize: le.Uint32(raw[16:]),
		BlockNo:     le.Uint32(raw[20:]),
		NumBlocks:   le.Uint32(raw[24:]),
		FamilyID:    le.Uint32(raw[28:]),
	}
	if blk.PayloadSize > BlockSize-32-4 {
		return nil, fmt.Errorf("payload size %d out of range", blk.PayloadSize)
	}
	blk.Data = append([]byte(nil), raw[32:32+blk.PayloadSize]...)
	return blk, nil
}

// Info summarizes a UF2 image.
type Info struct {
	Blocks   int
	Payload  int64
	Families []uint32
}

// HasFamily indicates the image contains blocks for the family.
func (i *Info) HasFamily(id uint32) bool {
	for _, f := range i.Families {
		if f == id {
			return true
		}
	}
	return false
}

// Inspect reads a whole image and validates every block.
func Inspect(r io.Reader) (*Info, error) {
	info := &Info{}
	raw := make([]byte, BlockSize)
	seen := make(map[uint32]bool)
	for {
		_, err := io.ReadFull(r, raw)
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			return nil, fmt.Errorf("truncated UF2 block #%d", info.Blocks)
		}
		if err != nil {
			return nil, err
		}
		blk, err := ParseBlock(raw)
		if err != nil {
			return nil, err
		}
		info.Blocks++
		if !blk.NotMainFlash() {
			info.Payload += int64(blk.PayloadSize)
		}
		if blk.HasFamilyID() && !seen[blk.FamilyID] {
			seen[blk.FamilyID] = true
			info.Families = append(info.Families, blk.FamilyID)
		}
	}
	if info.Blocks == 0 {
		return nil, ErrNotUF2
	}
	return info, nil
}

// InspectFile inspects a UF2 image on disk.
func InspectFile(path string) (*Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Inspect(f)
}
