package vsfs

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Inode is one fixed-size VSFS inode record.
type Inode struct {
	Mode   uint32 // file mode
	UID    uint32 // owner user ID
	GID    uint32 // owner group ID
	Size   uint32 // file size in bytes
	Atime  uint32 // last access time
	Ctime  uint32 // creation time
	Mtime  uint32 // last modification time
	Dtime  uint32 // deletion time, 0 while the inode is live
	Nlink  uint32 // hard link count
	Blocks uint32 // data block count

	Direct         [DirectBlocks]uint32 // direct block pointers
	Indirect       uint32               // single indirect block pointer
	DoubleIndirect uint32               // never traversed by the checker
	TripleIndirect uint32               // never traversed by the checker

	// Reserved pads the record to InodeSize and is carried through
	// untouched on write-back.
	Reserved [156]byte
}

// InodeOnDisk is the on-disk representation with explicit little-endian
// encoding.
type InodeOnDisk struct {
	Mode           [4]byte
	UID            [4]byte
	GID            [4]byte
	Size           [4]byte
	Atime          [4]byte
	Ctime          [4]byte
	Mtime          [4]byte
	Dtime          [4]byte
	Nlink          [4]byte
	Blocks         [4]byte
	Direct         [DirectBlocks][4]byte
	Indirect       [4]byte
	DoubleIndirect [4]byte
	TripleIndirect [4]byte
	Reserved       [156]byte
}

// InodeFromDisk converts the on-disk representation to an in-memory Inode
func InodeFromDisk(diskIno *InodeOnDisk) *Inode {
	ino := &Inode{}

	ino.Mode = binary.LittleEndian.Uint32(diskIno.Mode[:])
	ino.UID = binary.LittleEndian.Uint32(diskIno.UID[:])
	ino.GID = binary.LittleEndian.Uint32(diskIno.GID[:])
	ino.Size = binary.LittleEndian.Uint32(diskIno.Size[:])
	ino.Atime = binary.LittleEndian.Uint32(diskIno.Atime[:])
	ino.Ctime = binary.LittleEndian.Uint32(diskIno.Ctime[:])
	ino.Mtime = binary.LittleEndian.Uint32(diskIno.Mtime[:])
	ino.Dtime = binary.LittleEndian.Uint32(diskIno.Dtime[:])
	ino.Nlink = binary.LittleEndian.Uint32(diskIno.Nlink[:])
	ino.Blocks = binary.LittleEndian.Uint32(diskIno.Blocks[:])
	for i := range diskIno.Direct {
		ino.Direct[i] = binary.LittleEndian.Uint32(diskIno.Direct[i][:])
	}
	ino.Indirect = binary.LittleEndian.Uint32(diskIno.Indirect[:])
	ino.DoubleIndirect = binary.LittleEndian.Uint32(diskIno.DoubleIndirect[:])
	ino.TripleIndirect = binary.LittleEndian.Uint32(diskIno.TripleIndirect[:])
	copy(ino.Reserved[:], diskIno.Reserved[:])

	return ino
}

// ToDisk converts the in-memory Inode to its on-disk representation
func (ino *Inode) ToDisk() *InodeOnDisk {
	diskIno := &InodeOnDisk{}

	binary.LittleEndian.PutUint32(diskIno.Mode[:], ino.Mode)
	binary.LittleEndian.PutUint32(diskIno.UID[:], ino.UID)
	binary.LittleEndian.PutUint32(diskIno.GID[:], ino.GID)
	binary.LittleEndian.PutUint32(diskIno.Size[:], ino.Size)
	binary.LittleEndian.PutUint32(diskIno.Atime[:], ino.Atime)
	binary.LittleEndian.PutUint32(diskIno.Ctime[:], ino.Ctime)
	binary.LittleEndian.PutUint32(diskIno.Mtime[:], ino.Mtime)
	binary.LittleEndian.PutUint32(diskIno.Dtime[:], ino.Dtime)
	binary.LittleEndian.PutUint32(diskIno.Nlink[:], ino.Nlink)
	binary.LittleEndian.PutUint32(diskIno.Blocks[:], ino.Blocks)
	for i := range ino.Direct {
		binary.LittleEndian.PutUint32(diskIno.Direct[i][:], ino.Direct[i])
	}
	binary.LittleEndian.PutUint32(diskIno.Indirect[:], ino.Indirect)
	binary.LittleEndian.PutUint32(diskIno.DoubleIndirect[:], ino.DoubleIndirect)
	binary.LittleEndian.PutUint32(diskIno.TripleIndirect[:], ino.TripleIndirect)
	copy(diskIno.Reserved[:], ino.Reserved[:])

	return diskIno
}

// DecodeInode parses one inode record from raw bytes.
func DecodeInode(rec []byte) (*Inode, error) {
	diskIno := &InodeOnDisk{}
	if err := binary.Read(bytes.NewReader(rec), binary.LittleEndian, diskIno); err != nil {
		return nil, fmt.Errorf("failed to decode inode: %v", err)
	}
	return InodeFromDisk(diskIno), nil
}

// Encode serializes the inode into an InodeSize-byte record.
func (ino *Inode) Encode() ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, ino.ToDisk()); err != nil {
		return nil, fmt.Errorf("failed to encode inode: %v", err)
	}
	return buf.Bytes(), nil
}

// Valid reports whether the inode is in use. Validity is always recomputed
// from the record itself: link count above zero and no deletion time.
func (ino *Inode) Valid() bool {
	return ino.Nlink > 0 && ino.Dtime == 0
}
