package series_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/mkarlsen/convect/internal/field"
	"github.com/mkarlsen/convect/internal/series"
)

// makeSeries builds a series with one scalar snapshot per time, holding the
// snapshot's index as its value so frames are distinguishable.
func makeSeries(times []float64) *series.Series {
	snaps := make([]*field.Field3, len(times))
	for i := range times {
		f, err := field.New(1, 1, 1)
		Expect(err).NotTo(HaveOccurred())
		f.Set(0, 0, 0, float64(i))
		snaps[i] = f
	}
	s, err := series.New("T", times, snaps)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("Series construction", func() {
	It("rejects an empty time series", func() {
		_, err := series.New("T", nil, nil)
		Expect(err).To(MatchError(series.ErrInvalidInput))
	})

	It("rejects mismatched lengths", func() {
		f, _ := field.New(1, 1, 1)
		_, err := series.New("T", []float64{0, 1}, []*field.Field3{f})
		Expect(err).To(MatchError(series.ErrInvalidInput))
	})

	It("rejects non-increasing times", func() {
		f1, _ := field.New(1, 1, 1)
		f2, _ := field.New(1, 1, 1)
		_, err := series.New("T", []float64{1, 1}, []*field.Field3{f1, f2})
		Expect(err).To(MatchError(series.ErrInvalidInput))
	})

	It("rejects snapshots on different grids", func() {
		f1, _ := field.New(2, 1, 2)
		f2, _ := field.New(2, 1, 3)
		_, err := series.New("T", []float64{0, 1}, []*field.Field3{f1, f2})
		Expect(err).To(MatchError(series.ErrInvalidInput))
	})
})

var _ = Describe("FrameAt", func() {
	It("rejects a non-positive total duration", func() {
		s := makeSeries([]float64{0, 1, 2})
		_, err := s.FrameAt(0.5, 0)
		Expect(err).To(MatchError(series.ErrInvalidInput))

		_, err = s.FrameAt(0.5, -3)
		Expect(err).To(MatchError(series.ErrInvalidInput))
	})

	It("maps position 0 to the first recorded time", func() {
		s := makeSeries([]float64{0, 1, 2, 3})
		Expect(s.FrameAt(0, 10)).To(Equal(0))
	})

	It("maps the full duration to the last index", func() {
		s := makeSeries([]float64{0, 1, 2, 3})
		Expect(s.FrameAt(10, 10)).To(Equal(3))
	})

	It("breaks ties toward the earlier index", func() {
		// target = 2.5 * 5 / 5 = 2.5, equidistant between times 2 and 3
		s := makeSeries([]float64{0, 1, 2, 3, 4, 5})
		Expect(s.FrameAt(2.5, 5)).To(Equal(2))
	})

	It("is idempotent", func() {
		s := makeSeries([]float64{0, 0.5, 1.7, 2.1, 9})
		first, err := s.FrameAt(3.3, 7)
		Expect(err).NotTo(HaveOccurred())
		second, err := s.FrameAt(3.3, 7)
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(Equal(first))
	})

	It("handles non-uniform spacing", func() {
		s := makeSeries([]float64{0, 10, 11, 12, 100})
		// target 12.5 is nearest to 12
		idx, err := s.FrameAt(12.5, 100)
		Expect(err).NotTo(HaveOccurred())
		Expect(idx).To(Equal(3))
	})

	It("always returns an in-range index with no closer alternative", func() {
		times := []float64{0, 0.3, 1.1, 4.0, 4.2, 9.9}
		s := makeSeries(times)
		total := 10.0
		for f := 0.0; f <= total; f += 0.37 {
			idx, err := s.FrameAt(f, total)
			Expect(err).NotTo(HaveOccurred())
			Expect(idx).To(BeNumerically(">=", 0))
			Expect(idx).To(BeNumerically("<", len(times)))

			target := f * times[len(times)-1] / total
			best := math.Abs(times[idx] - target)
			for j, tj := range times {
				Expect(math.Abs(tj - target)).To(BeNumerically(">=", best),
					"index %d is closer than chosen %d", j, idx)
			}
		}
	})
})

var _ = Describe("Nearest", func() {
	It("clamps targets beyond the recorded range", func() {
		s := makeSeries([]float64{1, 2, 3})
		Expect(s.Nearest(-50)).To(Equal(0))
		Expect(s.Nearest(50)).To(Equal(2))
	})
})
