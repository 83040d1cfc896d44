package ecsim

import "fmt"

// Coord is an integer cell position in a DiscreteWorld.
type Coord struct {
	X, Y, Z int
}

// CellID is the synthetic dense id of a cell: z*w*h + y*w + x.
type CellID int

// CellRef is anything a neighbour or cell-value query accepts as a cell
// reference: a CellID, a Coord, or a *PositionComponent (coordinates
// truncated toward zero).
type CellRef interface {
	resolve(w *DiscreteWorld) (Coord, error)
}

func (c Coord) resolve(w *DiscreteWorld) (Coord, error) {
	if !w.contains(c) {
		return Coord{}, fmt.Errorf("%w: no cell at (%d,%d,%d)", ErrOutOfBounds, c.X, c.Y, c.Z)
	}
	return c, nil
}

func (id CellID) resolve(w *DiscreteWorld) (Coord, error) {
	if int(id) < 0 || int(id) >= w.cells.Len() {
		return Coord{}, fmt.Errorf("%w: no cell with id %d", ErrOutOfBounds, id)
	}
	return w.cells.pos[id], nil
}

func (p *PositionComponent) resolve(w *DiscreteWorld) (Coord, error) {
	return Coord{X: int(p.X), Y: int(p.Y), Z: int(p.Z)}.resolve(w)
}

// CellTable is the structure-of-arrays backing store for cell data: a fixed
// pos column plus any number of named value columns, one row per cell in
// id order.
type CellTable struct {
	pos      []Coord
	columns  map[string][]any
	colOrder []string // column insertion order
}

func newCellTable(width, height, depth int) *CellTable {
	nx, ny, nz := axisCells(width), axisCells(height), axisCells(depth)
	t := &CellTable{
		pos:     make([]Coord, 0, nx*ny*nz),
		columns: make(map[string][]any),
	}
	for z := 0; z < nz; z++ {
		for y := 0; y < ny; y++ {
			for x := 0; x < nx; x++ {
				t.pos = append(t.pos, Coord{X: x, Y: y, Z: z})
			}
		}
	}
	return t
}

// axisCells is the number of cells along an axis: a missing axis (extent 0)
// still contributes one row of cells pinned at coordinate 0.
func axisCells(extent int) int {
	if extent < 1 {
		return 1
	}
	return extent
}

// Len returns the number of cells.
func (t *CellTable) Len() int { return len(t.pos) }

// Pos returns the coordinate of the given cell.
func (t *CellTable) Pos(id CellID) Coord { return t.pos[id] }

// Columns returns the value column names in insertion order.
func (t *CellTable) Columns() []string {
	out := make([]string, len(t.colOrder))
	copy(out, t.colOrder)
	return out
}

// Column returns the named value column, one entry per cell in id order.
func (t *CellTable) Column(name string) ([]any, error) {
	col, ok := t.columns[name]
	if !ok {
		return nil, fmt.Errorf("%w: no cell component %q", ErrComponentNotFound, name)
	}
	return col, nil
}

func (t *CellTable) addColumn(name string, values []any) error {
	if _, ok := t.columns[name]; ok {
		return fmt.Errorf("%w: cell component %q", ErrDuplicateComponent, name)
	}
	t.columns[name] = values
	t.colOrder = append(t.colOrder, name)
	return nil
}

func (t *CellTable) removeColumn(name string) error {
	if _, ok := t.columns[name]; !ok {
		return fmt.Errorf("%w: no cell component %q", ErrComponentNotFound, name)
	}
	delete(t.columns, name)
	for i, n := range t.colOrder {
		if n == name {
			t.colOrder = append(t.colOrder[:i], t.colOrder[i+1:]...)
			break
		}
	}
	return nil
}

// CellGenerator produces the value of one cell. It is invoked once per cell
// in id order, so generators may read columns added earlier.
type CellGenerator func(c Coord, t *CellTable) any

// Constant returns a generator yielding the same value for every cell.
func Constant(v any) CellGenerator {
	return func(Coord, *CellTable) any { return v }
}

// Lookup1D returns a generator indexing values by the cell's x coordinate.
func Lookup1D(values []any) CellGenerator {
	return func(c Coord, _ *CellTable) any { return values[c.X] }
}

// Lookup2D returns a generator indexing values by [y][x].
func Lookup2D(values [][]any) CellGenerator {
	return func(c Coord, _ *CellTable) any { return values[c.Y][c.X] }
}

// Lookup3D returns a generator indexing values by [z][y][x].
func Lookup3D(values [][][]any) CellGenerator {
	return func(c Coord, _ *CellTable) any { return values[c.Z][c.Y][c.X] }
}

// DiscreteWorld is a SpaceWorld whose space is additionally divided into
// unit cells carrying shared per-cell data. Agents still hold continuous
// positions; cell queries truncate them.
type DiscreteWorld struct {
	SpaceWorld
	cells *CellTable
}

var _ Environment = (*DiscreteWorld)(nil)

// NewDiscreteWorld creates a cell-structured environment with the given
// extents. Negative extents are rejected with ErrOutOfBounds.
func NewDiscreteWorld(m *Model, width, height, depth int) (*DiscreteWorld, error) {
	sw, err := NewSpaceWorld(m, width, height, depth)
	if err != nil {
		return nil, err
	}
	return &DiscreteWorld{
		SpaceWorld: *sw,
		cells:      newCellTable(width, height, depth),
	}, nil
}

// NewLineWorld creates a 1D DiscreteWorld of the given width.
func NewLineWorld(m *Model, width int) (*DiscreteWorld, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: line width %d must be at least 1", ErrOutOfBounds, width)
	}
	return NewDiscreteWorld(m, width, 0, 0)
}

// NewGridWorld creates a 2D DiscreteWorld of the given width and height.
func NewGridWorld(m *Model, width, height int) (*DiscreteWorld, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: grid extents (%d,%d) must be at least 1", ErrOutOfBounds, width, height)
	}
	return NewDiscreteWorld(m, width, height, 0)
}

// NewCubeWorld creates a 3D DiscreteWorld of the given extents.
func NewCubeWorld(m *Model, width, height, depth int) (*DiscreteWorld, error) {
	if width < 1 || height < 1 || depth < 1 {
		return nil, fmt.Errorf("%w: cube extents (%d,%d,%d) must be at least 1", ErrOutOfBounds, width, height, depth)
	}
	return NewDiscreteWorld(m, width, height, depth)
}

// Cells returns the world's cell table.
func (w *DiscreteWorld) Cells() *CellTable { return w.cells }

// contains reports whether c names a cell. Axes with extent 0 only hold
// coordinate 0.
func (w *DiscreteWorld) contains(c Coord) bool {
	return c.X >= 0 && c.X < axisCells(w.width) &&
		c.Y >= 0 && c.Y < axisCells(w.height) &&
		c.Z >= 0 && c.Z < axisCells(w.depth)
}

// idOf maps a contained coordinate to its dense cell id. Degenerate axes
// count one cell each so ids stay dense whichever axes exist.
func (w *DiscreteWorld) idOf(c Coord) CellID {
	nx, ny := axisCells(w.width), axisCells(w.height)
	return CellID(c.Z*nx*ny + c.Y*nx + c.X)
}

// Cell returns the id of the cell at (x, y, z), or ErrOutOfBounds when no
// such cell exists.
func (w *DiscreteWorld) Cell(x, y, z int) (CellID, error) {
	c, err := Coord{X: x, Y: y, Z: z}.resolve(w)
	if err != nil {
		return 0, err
	}
	return w.idOf(c), nil
}

// CellAt resolves any cell reference to its id.
func (w *DiscreteWorld) CellAt(ref CellRef) (CellID, error) {
	c, err := ref.resolve(w)
	if err != nil {
		return 0, err
	}
	return w.idOf(c), nil
}

// CellData returns the full row of the referenced cell: its coordinate
// under "pos" plus every named column's value.
func (w *DiscreteWorld) CellData(ref CellRef) (map[string]any, error) {
	c, err := ref.resolve(w)
	if err != nil {
		return nil, err
	}
	id := w.idOf(c)
	row := make(map[string]any, len(w.cells.colOrder)+1)
	row["pos"] = c
	for _, name := range w.cells.colOrder {
		row[name] = w.cells.columns[name][id]
	}
	return row, nil
}

// AddCellComponent adds a named value column generated per cell in id
// order. ErrDuplicateComponent when the name is taken.
func (w *DiscreteWorld) AddCellComponent(name string, gen CellGenerator) error {
	if _, ok := w.cells.columns[name]; ok {
		return fmt.Errorf("%w: cell component %q", ErrDuplicateComponent, name)
	}
	values := make([]any, w.cells.Len())
	for i, c := range w.cells.pos {
		values[i] = gen(c, w.cells)
	}
	return w.cells.addColumn(name, values)
}

// AddCellComponentData adds a named value column verbatim. The slice must
// hold exactly one value per cell (ErrColumnLength otherwise).
func (w *DiscreteWorld) AddCellComponentData(name string, values []any) error {
	if len(values) != w.cells.Len() {
		return fmt.Errorf("%w: cell component %q has %d values for %d cells",
			ErrColumnLength, name, len(values), w.cells.Len())
	}
	return w.cells.addColumn(name, values)
}

// RemoveCellComponent deletes a named value column.
func (w *DiscreteWorld) RemoveCellComponent(name string) error {
	return w.cells.removeColumn(name)
}

// CellValue returns the value of a named column at the referenced cell.
func (w *DiscreteWorld) CellValue(name string, ref CellRef) (any, error) {
	col, err := w.cells.Column(name)
	if err != nil {
		return nil, err
	}
	id, err := w.CellAt(ref)
	if err != nil {
		return nil, err
	}
	return col[id], nil
}

// SetCellValue overwrites the value of a named column at the referenced
// cell.
func (w *DiscreteWorld) SetCellValue(name string, ref CellRef, v any) error {
	col, err := w.cells.Column(name)
	if err != nil {
		return err
	}
	id, err := w.CellAt(ref)
	if err != nil {
		return err
	}
	col[id] = v
	return nil
}

// NeighbourMode selects the neighbourhood shape of a Neighbours query.
type NeighbourMode int

const (
	// Moore is the Chebyshev neighbourhood: every cell within the radius
	// on each axis.
	Moore NeighbourMode = iota
	// VonNeumann is the Moore neighbourhood further restricted to cells
	// within the radius in Manhattan distance.
	VonNeumann
)

// ReturnType selects how a neighbour query reports cells.
type ReturnType int

const (
	// ReturnIDs reports neighbours as CellID values. The default.
	ReturnIDs ReturnType = iota
	// ReturnCoordinates reports neighbours as Coord values.
	ReturnCoordinates
)

type neighbourQuery struct {
	radius  int
	center  bool
	retType ReturnType
}

// NeighbourOption adjusts a neighbour query.
type NeighbourOption func(*neighbourQuery)

// WithRadius sets the neighbourhood radius. Values below 1 are clamped
// to 1.
func WithRadius(r int) NeighbourOption {
	return func(q *neighbourQuery) {
		if r < 1 {
			r = 1
		}
		q.radius = r
	}
}

// IncludeCenter makes the query report the referenced cell itself.
func IncludeCenter() NeighbourOption {
	return func(q *neighbourQuery) { q.center = true }
}

// ReturnCoords makes the query report Coord values instead of ids.
func ReturnCoords() NeighbourOption {
	return func(q *neighbourQuery) { q.retType = ReturnCoordinates }
}

// WithReturnType sets the query's result representation explicitly.
func WithReturnType(rt ReturnType) NeighbourOption {
	return func(q *neighbourQuery) { q.retType = rt }
}

// MooreNeighbours returns the cells within Chebyshev distance radius of the
// referenced cell, clipped to the world, in z,y,x ascending order with x
// varying fastest. The center cell is excluded unless IncludeCenter.
func (w *DiscreteWorld) MooreNeighbours(ref CellRef, opts ...NeighbourOption) ([]CellRef, error) {
	return w.neighbours(ref, Moore, opts)
}

// VonNeumannNeighbours returns the Moore cells additionally within
// Manhattan distance radius of the referenced cell.
func (w *DiscreteWorld) VonNeumannNeighbours(ref CellRef, opts ...NeighbourOption) ([]CellRef, error) {
	return w.neighbours(ref, VonNeumann, opts)
}

// Neighbours dispatches on mode. Unknown modes fail with ErrInvalidMode.
func (w *DiscreteWorld) Neighbours(ref CellRef, mode NeighbourMode, opts ...NeighbourOption) ([]CellRef, error) {
	switch mode {
	case Moore, VonNeumann:
		return w.neighbours(ref, mode, opts)
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidMode, mode)
	}
}

func (w *DiscreteWorld) neighbours(ref CellRef, mode NeighbourMode, opts []NeighbourOption) ([]CellRef, error) {
	q := neighbourQuery{radius: 1}
	for _, opt := range opts {
		opt(&q)
	}
	if q.retType != ReturnIDs && q.retType != ReturnCoordinates {
		return nil, fmt.Errorf("%w: %d", ErrInvalidReturnType, q.retType)
	}

	c, err := ref.resolve(w)
	if err != nil {
		return nil, err
	}

	lo := Coord{
		X: max(0, c.X-q.radius),
		Y: max(0, c.Y-q.radius),
		Z: max(0, c.Z-q.radius),
	}
	hi := Coord{
		X: min(axisCells(w.width)-1, c.X+q.radius),
		Y: min(axisCells(w.height)-1, c.Y+q.radius),
		Z: min(axisCells(w.depth)-1, c.Z+q.radius),
	}

	var out []CellRef
	for z := lo.Z; z <= hi.Z; z++ {
		for y := lo.Y; y <= hi.Y; y++ {
			for x := lo.X; x <= hi.X; x++ {
				if x == c.X && y == c.Y && z == c.Z && !q.center {
					continue
				}
				if mode == VonNeumann {
					if absInt(x-c.X)+absInt(y-c.Y)+absInt(z-c.Z) > q.radius {
						continue
					}
				}
				n := Coord{X: x, Y: y, Z: z}
				if q.retType == ReturnCoordinates {
					out = append(out, n)
				} else {
					out = append(out, w.idOf(n))
				}
			}
		}
	}
	return out, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
