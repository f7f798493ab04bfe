package petal

import "fmt"

// TilesetConfig describes the grid of a tile sheet. Zero TileWidth and
// TileHeight are 32; zero Scale is 1. Padding is the border around the
// whole sheet and Spacing the gap between tiles, both in sheet pixels.
type TilesetConfig struct {
	X, Y, Z               float64
	TileWidth, TileHeight float64
	Padding, Spacing      float64
	Scale                 float64
	Color                 ColorSet
}

type tileDef struct {
	crop   Crop
	rotate float64
	flip   FlipMode
}

type tilePlacement struct {
	def  *tileDef
	x, y float64
}

// Tileset draws named tiles from a sheet at any number of positions.
type Tileset struct {
	Base
	X, Y float64

	tileWidth, tileHeight float64
	padding, spacing      float64
	scale                 float64

	pixmap  *Pixmap
	texture *Texture

	defs  map[string]*tileDef
	tiles []tilePlacement
}

// NewTileset loads a tile sheet from path.
func NewTileset(path string, cfg TilesetConfig) (*Tileset, error) {
	p, err := LoadPixmap(path)
	if err != nil {
		return nil, err
	}
	return NewTilesetFromPixmap(p, cfg)
}

// NewTilesetFromPixmap builds a tileset over an already decoded sheet.
func NewTilesetFromPixmap(p *Pixmap, cfg TilesetConfig) (*Tileset, error) {
	if cfg.TileWidth == 0 {
		cfg.TileWidth = 32
	}
	if cfg.TileHeight == 0 {
		cfg.TileHeight = 32
	}
	if cfg.Scale == 0 {
		cfg.Scale = 1
	}
	t := &Tileset{
		X:          cfg.X,
		Y:          cfg.Y,
		tileWidth:  cfg.TileWidth,
		tileHeight: cfg.TileHeight,
		padding:    cfg.Padding,
		spacing:    cfg.Spacing,
		scale:      cfg.Scale,
		pixmap:     p,
		texture:    p.texture(),
		defs:       make(map[string]*tileDef),
	}
	if err := t.init(cfg.Z, cfg.Color, 0); err != nil {
		return nil, err
	}
	return t, nil
}

// Position returns the offset applied to every tile.
func (t *Tileset) Position() (float64, float64) { return t.X, t.Y }

// SetPosition moves every tile.
func (t *Tileset) SetPosition(x, y float64) { t.X, t.Y = x, y }

// TileSize returns the drawn size of one tile.
func (t *Tileset) TileSize() (float64, float64) {
	return t.tileWidth * t.scale, t.tileHeight * t.scale
}

// DefineTile names the tile at grid column col and row row. Redefining a
// name only affects tiles placed afterwards.
func (t *Tileset) DefineTile(name string, col, row int, rotate float64, flip FlipMode) {
	t.defs[name] = &tileDef{
		crop: Crop{
			X:           t.padding + float64(col)*(t.spacing+t.tileWidth),
			Y:           t.padding + float64(row)*(t.spacing+t.tileHeight),
			Width:       t.tileWidth,
			Height:      t.tileHeight,
			ImageWidth:  float64(t.pixmap.Width()),
			ImageHeight: float64(t.pixmap.Height()),
		},
		rotate: rotate,
		flip:   flip,
	}
}

// SetTile places the named tile at each position, relative to the tileset.
func (t *Tileset) SetTile(name string, positions ...Vec2) error {
	def, ok := t.defs[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownTile, name)
	}
	for _, p := range positions {
		t.tiles = append(t.tiles, tilePlacement{def: def, x: p.X, y: p.Y})
	}
	return nil
}

// TileCount returns the number of placed tiles.
func (t *Tileset) TileCount() int { return len(t.tiles) }

// ClearTiles removes every placed tile. Definitions are kept.
func (t *Tileset) ClearTiles() {
	t.tiles = t.tiles[:0]
}

// Contains reports whether (x, y) lies inside any placed tile.
func (t *Tileset) Contains(x, y float64) bool {
	w, h := t.TileSize()
	for _, tile := range t.tiles {
		if (Rect{t.X + tile.x, t.Y + tile.y, w, h}).Contains(x, y) {
			return true
		}
	}
	return false
}

// Render draws every placed tile.
func (t *Tileset) Render(r Renderer) {
	w, h := t.TileSize()
	tint := t.color.At(0)
	for _, tile := range t.tiles {
		v := NewVertices(t.X+tile.x, t.Y+tile.y, w, h, tile.def.rotate, &tile.def.crop, tile.def.flip)
		t.texture.Draw(r, v.Coordinates(), v.TextureCoordinates(), tint)
	}
}
