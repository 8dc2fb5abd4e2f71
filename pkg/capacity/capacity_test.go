package capacity

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
)

func u64(v uint64) *uint64 { return &v }

// CapacityTestSuite tests width and inversion math
type CapacityTestSuite struct {
	suite.Suite
}

// TestWidthForBounds tests the empty and full capacity cases
func (s *CapacityTestSuite) TestWidthForBounds() {
	s.InDelta(200.0, WidthFor(0, 1000, 200), 1e-9)
	s.InDelta(0.0, WidthFor(1000, 1000, 200), 1e-9)
	s.InDelta(100.0, WidthFor(500, 1000, 200), 1e-9)
}

// TestWidthForZeroTotal tests that a zero total does not divide by zero
func (s *CapacityTestSuite) TestWidthForZeroTotal() {
	s.Equal(200.0, WidthFor(0, 0, 200))
	s.Equal(200.0, WidthFor(123, 0, 200))
}

// TestWidthForClamping tests clamping of inconsistent inputs
func (s *CapacityTestSuite) TestWidthForClamping() {
	testCases := []struct {
		name      string
		capacity  uint64
		total     uint64
		container float64
		expected  float64
	}{
		{"capacity_over_total", 1500, 1000, 200, 0},
		{"negative_container", 100, 1000, -5, 0},
		{"zero_container", 100, 1000, 0, 0},
		{"infinite_container", 1000, 1000, math.Inf(1), 0},
		{"negative_infinite_container", 0, 1000, math.Inf(-1), 0},
		{"nan_container", 500, 1000, math.NaN(), 0},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.expected, WidthFor(tc.capacity, tc.total, tc.container))
		})
	}
}

// TestInvert tests used-capacity inversion
func (s *CapacityTestSuite) TestInvert() {
	s.Equal(uint64(700), Invert(300, 1000, true))
	s.Equal(uint64(0), Invert(1200, 1000, true))
	s.Equal(uint64(300), Invert(300, 1000, false))
	s.Equal(uint64(1200), Invert(1200, 1000, false))
}

// TestPercent tests percentage math
func (s *CapacityTestSuite) TestPercent() {
	s.Equal(0.0, Percent(10, 0))
	s.InDelta(40.0, Percent(400, 1000), 1e-9)
	s.Equal(100.0, Percent(2000, 1000))
}

// TestNestedScenario tests the outer-to-inner widths of a full snapshot
func (s *CapacityTestSuite) TestNestedScenario() {
	snapshot := Snapshot{
		Total:         u64(1000),
		Available:     u64(400),
		Opportunistic: u64(300),
		Important:     u64(200),
	}

	bars := Compute(StorageLayers(snapshot), snapshot.Total, 200)
	s.Require().Len(bars, 4)

	s.InDelta(120.0, bars[0].Width, 1e-9)
	s.InDelta(140.0, bars[1].Width, 1e-9)
	s.InDelta(160.0, bars[2].Width, 1e-9)

	for i := 1; i < 3; i++ {
		s.GreaterOrEqual(bars[i].Width, bars[i-1].Width)
	}

	used := bars[3]
	s.True(used.Inverted)
	s.Equal(uint64(600), used.Display)
	s.Equal(ColorClear, used.Color)
	s.Equal(uint64(400), bars[0].Display)
}

// TestAbsentLayersDropped tests that missing figures are not rendered as zero
func (s *CapacityTestSuite) TestAbsentLayersDropped() {
	snapshot := Snapshot{
		Total:     u64(1000),
		Available: u64(250),
	}

	bars := Compute(StorageLayers(snapshot), snapshot.Total, 100)
	s.Require().Len(bars, 2)
	s.Equal(ColorGreen, bars[0].Color)
	s.Equal(ColorClear, bars[1].Color)
	s.Equal(uint64(750), bars[1].Display)
}

// TestAbsentTotal tests that a missing total yields full-width bars
func (s *CapacityTestSuite) TestAbsentTotal() {
	snapshot := Snapshot{Available: u64(250)}

	bars := Compute(StorageLayers(snapshot), nil, 80)
	s.Require().Len(bars, 2)
	s.Equal(80.0, bars[0].Width)
	s.Equal(uint64(0), bars[1].Display)
	s.Nil(snapshot.Used())
	s.Equal(uint64(0), snapshot.TotalOrZero())
}

// TestUsed tests the derived used figure
func (s *CapacityTestSuite) TestUsed() {
	snapshot := Snapshot{Total: u64(1000), Available: u64(1200)}
	s.Require().NotNil(snapshot.Used())
	s.Equal(uint64(0), *snapshot.Used())
}

// TestBackground tests the full-width background bar
func (s *CapacityTestSuite) TestBackground() {
	bg := Background(64)
	s.Equal(64.0, bg.Width)
	s.Equal(ColorGray, bg.Color)
}

// TestSurfaceLifecycle tests the idle -> measured -> remeasured transitions
func (s *CapacityTestSuite) TestSurfaceLifecycle() {
	var surface Surface

	width, ok := surface.Width()
	s.False(ok)
	s.Equal(0.0, width)
	s.Equal(Idle, surface.State())

	s.True(surface.Resize(200))
	s.Equal(Measured, surface.State())

	s.False(surface.Resize(200))
	s.Equal(Measured, surface.State())

	s.True(surface.Resize(120))
	s.Equal(Remeasured, surface.State())
	width, ok = surface.Width()
	s.True(ok)
	s.Equal(120.0, width)

	surface.Resize(-3)
	width, _ = surface.Width()
	s.Equal(0.0, width)
}

// TestSurfaceBarsFollowResize tests that bars are recomputed against the latest width
func (s *CapacityTestSuite) TestSurfaceBarsFollowResize() {
	var surface Surface
	snapshot := Snapshot{Total: u64(1000), Available: u64(500)}

	bars := func() []Bar {
		width, _ := surface.Width()
		return Compute(StorageLayers(snapshot), snapshot.Total, width)
	}

	surface.Resize(100)
	s.InDelta(50.0, bars()[0].Width, 1e-9)

	surface.Resize(300)
	s.InDelta(150.0, bars()[0].Width, 1e-9)
}

// TestSurfaceConcurrentAccess tests that the cache is safe for concurrent use
func (s *CapacityTestSuite) TestSurfaceConcurrentAccess() {
	var (
		surface Surface
		wg      sync.WaitGroup
	)

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(w float64) {
			defer wg.Done()
			surface.Resize(w)
			_, _ = surface.Width()
		}(float64(i * 10))
	}
	wg.Wait()

	s.NotEqual(Idle, surface.State())
}

func TestCapacityTestSuite(t *testing.T) {
	suite.Run(t, new(CapacityTestSuite))
}
