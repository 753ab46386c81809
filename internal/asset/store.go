// Package asset resolves logical asset identifiers to decoded textures, fonts
// and sounds. A Store is created once at startup and passed to whatever needs
// lookups; every asset is decoded up front so lookups never touch the disk.
package asset

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/vovakirdan/tui-pacman/internal/core"
)

//go:embed defaults
var defaultFS embed.FS

// ManifestFile is the manifest name looked up at the root of an asset pack.
const ManifestFile = "manifest.yaml"

var (
	// ErrNotFound is returned when a logical identifier cannot be resolved.
	ErrNotFound = errors.New("asset: not found")
	// ErrDecode is returned when an asset exists but cannot be decoded.
	ErrDecode = errors.New("asset: decode failed")
	// ErrClosed is returned for lookups on a closed store.
	ErrClosed = errors.New("asset: store closed")
)

// Texture is a decoded single-cell sprite.
type Texture struct {
	ID    string
	Glyph rune
	Color core.Color
}

// Font describes how title text is rendered.
type Font struct {
	ID      string
	Color   core.Color
	Spacing int
}

// Apply lays out text with the font's letter spacing.
func (f Font) Apply(text string) string {
	if f.Spacing <= 0 {
		return text
	}
	gap := strings.Repeat(" ", f.Spacing)
	runes := []rune(text)
	parts := make([]string, len(runes))
	for i, r := range runes {
		parts[i] = string(r)
	}
	return strings.Join(parts, gap)
}

// Store is the explicitly constructed asset cache.
// Texture acquisitions are reference counted so owners can prove they
// returned everything they took.
type Store struct {
	textures map[string]Texture
	fonts    map[string]Font
	sounds   map[string]*beep.Buffer
	refs     map[string]int
	closed   bool
}

// Default opens the asset pack embedded in the binary.
func Default() (*Store, error) {
	sub, err := fs.Sub(defaultFS, "defaults")
	if err != nil {
		return nil, fmt.Errorf("asset: embedded pack: %w", err)
	}
	return Open(sub, ManifestFile)
}

// OpenDir opens an asset pack from a directory on disk.
func OpenDir(dir string) (*Store, error) {
	return Open(os.DirFS(dir), ManifestFile)
}

// Open reads the manifest at manifestPath and decodes every asset it lists.
// Any missing or undecodable asset fails the whole load.
func Open(fsys fs.FS, manifestPath string) (*Store, error) {
	data, err := fs.ReadFile(fsys, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("%w: manifest %s: %v", ErrNotFound, manifestPath, err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, err
	}

	s := &Store{
		textures: make(map[string]Texture, len(m.Textures)),
		fonts:    make(map[string]Font, len(m.Fonts)),
		sounds:   make(map[string]*beep.Buffer, len(m.Sounds)),
		refs:     make(map[string]int),
	}

	for id, spec := range m.Textures {
		tex, err := decodeTexture(id, spec)
		if err != nil {
			return nil, err
		}
		s.textures[id] = tex
	}

	for id, spec := range m.Fonts {
		font, err := decodeFont(id, spec)
		if err != nil {
			return nil, err
		}
		s.fonts[id] = font
	}

	base := path.Dir(manifestPath)
	for id, rel := range m.Sounds {
		buf, err := decodeSound(fsys, path.Join(base, rel))
		if err != nil {
			return nil, fmt.Errorf("sound %q: %w", id, err)
		}
		s.sounds[id] = buf
	}

	return s, nil
}

// decodeSound reads a WAV file fully into memory.
func decodeSound(fsys fs.FS, name string) (*beep.Buffer, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotFound, name, err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
	}
	return buf, nil
}

// Texture resolves a texture and records one acquisition of it.
func (s *Store) Texture(id string) (Texture, error) {
	if s.closed {
		return Texture{}, ErrClosed
	}
	tex, ok := s.textures[id]
	if !ok {
		return Texture{}, fmt.Errorf("%w: texture %q", ErrNotFound, id)
	}
	s.refs[id]++
	return tex, nil
}

// Release returns one acquisition of a texture.
func (s *Store) Release(id string) {
	if s.refs[id] > 0 {
		s.refs[id]--
	}
}

// Live returns the number of texture acquisitions not yet released.
func (s *Store) Live() int {
	n := 0
	for _, c := range s.refs {
		n += c
	}
	return n
}

// Font resolves a font by id.
func (s *Store) Font(id string) (Font, error) {
	if s.closed {
		return Font{}, ErrClosed
	}
	font, ok := s.fonts[id]
	if !ok {
		return Font{}, fmt.Errorf("%w: font %q", ErrNotFound, id)
	}
	return font, nil
}

// Sound resolves a decoded sound buffer by id.
func (s *Store) Sound(id string) (*beep.Buffer, error) {
	if s.closed {
		return nil, ErrClosed
	}
	buf, ok := s.sounds[id]
	if !ok {
		return nil, fmt.Errorf("%w: sound %q", ErrNotFound, id)
	}
	return buf, nil
}

// Require checks that every listed sound is present.
func (s *Store) Require(sounds ...string) error {
	for _, id := range sounds {
		if _, err := s.Sound(id); err != nil {
			return err
		}
	}
	return nil
}

// TextureIDs returns all texture ids in sorted order.
func (s *Store) TextureIDs() []string {
	ids := make([]string, 0, len(s.textures))
	for id := range s.textures {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Close drops every cached asset. Calling Close more than once is a no-op.
func (s *Store) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.textures = nil
	s.fonts = nil
	s.sounds = nil
	s.refs = nil
	return nil
}
