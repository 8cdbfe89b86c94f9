// file: pkg/diskimg/usage.go

package diskimg

// BlockKind classifies what a block holds
type BlockKind int

const (
	BlockFree BlockKind = iota
	BlockBitmap
	BlockDescriptorTable
	BlockDirectory
	BlockFile
	BlockOrphan // Allocated but owned by no descriptor
)

var blockKindNames = map[BlockKind]string{
	BlockFree:            "free",
	BlockBitmap:          "bitmap",
	BlockDescriptorTable: "descriptors",
	BlockDirectory:       "directory",
	BlockFile:            "file",
	BlockOrphan:          "orphan",
}

func (k BlockKind) String() string {
	if name, ok := blockKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// BlockInfo describes the owner of one block
type BlockInfo struct {
	Index      int       `json:"index"`
	Kind       BlockKind `json:"-"`
	KindName   string    `json:"kind"`
	Descriptor int       `json:"descriptor"`
	Name       string    `json:"name,omitempty"`
}

// Usage summarizes block and descriptor consumption
type Usage struct {
	TotalBlocks     int `json:"total_blocks"`
	ReservedBlocks  int `json:"reserved_blocks"`
	UsedBlocks      int `json:"used_blocks"`
	FreeBlocks      int `json:"free_blocks"`
	Files           int `json:"files"`
	FreeDescriptors int `json:"free_descriptors"`
	Bytes           int `json:"bytes"`
}

// BlockMap returns the owner of every block in index order
func (fs *FileSystem) BlockMap() ([]BlockInfo, error) {
	files, err := fs.Files()
	if err != nil {
		return nil, err
	}
	names := make(map[int]string, len(files))
	for _, f := range files {
		names[f.Descriptor] = f.Name
	}

	blocks := make([]BlockInfo, NumBlocks)
	for i := range blocks {
		blocks[i] = BlockInfo{Index: i, Kind: BlockFree, Descriptor: -1}
		if fs.table.allocated[i] {
			blocks[i].Kind = BlockOrphan
		}
	}

	blocks[BitmapBlock].Kind = BlockBitmap
	for i := 0; i < DescriptorBlocks; i++ {
		blocks[FirstDescriptorBlock+i].Kind = BlockDescriptorTable
	}

	for i := range fs.table.descriptors {
		d := fs.table.descriptor(i)
		if d.IsFree() {
			continue
		}
		kind := BlockFile
		if i == DirectoryDescriptor {
			kind = BlockDirectory
		}
		for _, block := range d.MappedBlocks() {
			if block < 0 || block >= NumBlocks {
				continue
			}
			blocks[block].Kind = kind
			blocks[block].Descriptor = i
			blocks[block].Name = names[i]
		}
	}

	for i := range blocks {
		blocks[i].KindName = blocks[i].Kind.String()
	}
	return blocks, nil
}

// Usage returns block and descriptor counts for the disk
func (fs *FileSystem) Usage() (Usage, error) {
	files, err := fs.Files()
	if err != nil {
		return Usage{}, err
	}

	u := Usage{
		TotalBlocks:     NumBlocks,
		ReservedBlocks:  FirstDataBlock,
		FreeBlocks:      fs.table.FreeBlockCount(),
		Files:           len(files),
		FreeDescriptors: fs.table.FreeDescriptorCount(),
	}
	u.UsedBlocks = u.TotalBlocks - u.ReservedBlocks - u.FreeBlocks
	for _, f := range files {
		u.Bytes += f.Size
	}
	return u, nil
}
