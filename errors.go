package diffusion

import "errors"

var (
	// ErrInvalidArgument is returned for inputs that cannot produce a
	// meaningful trajectory: non-positive frame counts, zero normals...
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrParallelSegment is returned when a segment is reflected about or
	// intersected with a plane it does not cross.
	ErrParallelSegment = errors.New("segment parallel to plane")

	// ErrDegenerateGeometry is returned when the intersection line of two
	// parallel planes is requested.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)
