package hot

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/matzehuels/hotnet/pkg/errors"
	"github.com/matzehuels/hotnet/pkg/overlay"
)

// Initialize assigns root state and coordinates to every node of net.
// It is [InitializeRoots] followed by [InitializeCoordinates]. No wiring is
// performed; see [Grow].
func Initialize(net *overlay.Network, outDegree int, maxCoord float64, rng RandomSource, opts ...Option) error {
	if err := InitializeRoots(net, outDegree, maxCoord, rng, opts...); err != nil {
		return err
	}
	return InitializeCoordinates(net, outDegree, maxCoord, rng, opts...)
}

// InitializeRoots marks nodes [0, outDegree) as roots with hop 0 and in-degree 0.
//
// A single root sits exactly at the centre (maxCoord/2, maxCoord/2). With
// several roots each axis is independently the centre plus or minus a
// uniform offset in [0, 0.1), the sign chosen by a fair coin. For every root
// the draws are: coin and offset for x, then coin and offset for y.
func InitializeRoots(net *overlay.Network, outDegree int, maxCoord float64, rng RandomSource, opts ...Option) error {
	if err := validateInit(net, outDegree, maxCoord, rng); err != nil {
		return err
	}
	o := buildOptions(opts)
	o.logger.Debug("initializing overlay", "size", net.Size(), "outdegree", outDegree)
	o.logger.Debugf("generating %d root(s), means out degree %d", outDegree, outDegree)

	center := maxCoord / 2
	for i := 0; i < outDegree; i++ {
		n := net.Nodes.At(i)
		n.Root = true
		n.Hop = 0
		n.InDegree = 0
		if outDegree == 1 {
			n.Pos = r2.Vec{X: center, Y: center}
			continue
		}
		x := jitter(center, rng)
		y := jitter(center, rng)
		n.Pos = r2.Vec{X: x, Y: y}
		o.logger.Debug("root coord", "index", i, "x", x, "y", y)
	}
	return nil
}

func jitter(center float64, rng RandomSource) float64 {
	if rng.Bool() {
		return center + rng.Float64()*rootJitter
	}
	return center - rng.Float64()*rootJitter
}

// InitializeCoordinates places nodes [outDegree, N) and resets their in-degree.
//
// When maxCoord is exactly 1.0 both coordinates are uniform in the continuous
// interval [0, 1). Any other maxCoord selects grid placement: both coordinates
// are uniform integers in [0, int(maxCoord)).
func InitializeCoordinates(net *overlay.Network, outDegree int, maxCoord float64, rng RandomSource, opts ...Option) error {
	if err := validateInit(net, outDegree, maxCoord, rng); err != nil {
		return err
	}
	o := buildOptions(opts)
	o.logger.Debug("generating random coordinates for nodes", "from", outDegree, "to", net.Size())

	grid := int(maxCoord)
	for i := outDegree; i < net.Size(); i++ {
		n := net.Nodes.At(i)
		if maxCoord == DefaultMaxCoord {
			x := rng.Float64()
			y := rng.Float64()
			n.Pos = r2.Vec{X: x, Y: y}
		} else {
			x := rng.IntN(grid)
			y := rng.IntN(grid)
			n.Pos = r2.Vec{X: float64(x), Y: float64(y)}
		}
		n.InDegree = 0
	}
	return nil
}

func validateInit(net *overlay.Network, outDegree int, maxCoord float64, rng RandomSource) error {
	if net == nil {
		return errors.New(errors.ErrCodeInvalidInput, "network must not be nil")
	}
	if rng == nil {
		return errors.New(errors.ErrCodeInvalidInput, "random source must not be nil")
	}
	if err := validateOutDegree(outDegree); err != nil {
		return err
	}
	if err := validateMaxCoord(maxCoord); err != nil {
		return err
	}
	return validateSize(net.Size(), outDegree)
}
