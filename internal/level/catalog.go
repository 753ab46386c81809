package level

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed maps/*.map
var builtinFS embed.FS

const mapExt = ".map"

// Catalog lists the maps available in a filesystem directory.
type Catalog struct {
	fsys fs.FS
	dir  string
}

// Builtin returns the catalog of maps shipped with the binary.
func Builtin() *Catalog {
	return NewCatalog(builtinFS, "maps")
}

// NewCatalog returns a catalog over the *.map files in dir of fsys.
func NewCatalog(fsys fs.FS, dir string) *Catalog {
	return &Catalog{fsys: fsys, dir: dir}
}

// IDs returns the sorted ids of every map in the catalog.
func (c *Catalog) IDs() ([]string, error) {
	entries, err := fs.ReadDir(c.fsys, c.dir)
	if err != nil {
		return nil, fmt.Errorf("level: list maps: %w", err)
	}
	var ids []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), mapExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(e.Name(), mapExt))
	}
	sort.Strings(ids)
	return ids, nil
}

// Rows returns the rows of the map with the given id.
func (c *Catalog) Rows(id string) ([]string, error) {
	f, err := c.fsys.Open(path.Join(c.dir, id+mapExt))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrOpen, id, err)
	}
	defer f.Close()
	return Parse(f)
}
