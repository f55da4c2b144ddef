package collider

import "github.com/jakecoffman/cp"

// ShapeOwner is the physics-side boundary: an ordered shape collection
// with identity-based removal, plus the body new shapes attach to.
type ShapeOwner interface {
	Body() *cp.Body
	AddShape(shape *cp.Shape)
	RemoveShape(shape *cp.Shape)
}

// SpaceShapes owns tile collider shapes on a chipmunk space's static body.
type SpaceShapes struct {
	space *cp.Space
}

func NewSpaceShapes(space *cp.Space) *SpaceShapes {
	return &SpaceShapes{space: space}
}

func (s *SpaceShapes) Body() *cp.Body {
	return s.space.StaticBody
}

func (s *SpaceShapes) AddShape(shape *cp.Shape) {
	s.space.AddShape(shape)
}

func (s *SpaceShapes) RemoveShape(shape *cp.Shape) {
	s.space.RemoveShape(shape)
}
