package collide_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/jostle/internal/collide"
	"github.com/san-kum/jostle/internal/grid"
	"github.com/san-kum/jostle/internal/particle"
)

const (
	radius   = 8.0
	diameter = 2 * radius
	size     = 80
)

func populate(g *grid.Grid, s *particle.Store) {
	g.Clear()
	for i, p := range s.All() {
		g.Insert(p, i)
	}
}

var _ = Describe("Resolver", func() {
	var (
		g *grid.Grid
		s *particle.Store
		r *collide.Resolver
	)

	BeforeEach(func() {
		g = grid.New(size, diameter)
		s = particle.NewStore(0)
		r = collide.New(radius, collide.ZeroAxis)
	})

	Describe("Overlapping", func() {
		It("is strict at one diameter", func() {
			Expect(r.Overlapping(particle.V(0, 0), particle.V(diameter, 0))).To(BeFalse())
			Expect(r.Overlapping(particle.V(0, 0), particle.V(diameter-1e-9, 0))).To(BeTrue())
		})
	})

	Describe("Separate", func() {
		It("moves a pair to one diameter apart around its midpoint", func() {
			a := s.Add(particle.V(0, 0))
			b := s.Add(particle.V(5, 0))

			Expect(r.Separate(s, a, b)).To(BeTrue())

			pa, pb := s.Get(a), s.Get(b)
			Expect(pa.Distance(pb)).To(BeNumerically("~", diameter, 1e-9))
			Expect(pa.X).To(BeNumerically("~", 2.5-radius, 1e-9))
			Expect(pb.X).To(BeNumerically("~", 2.5+radius, 1e-9))
			Expect(pa.Y).To(BeZero())
		})

		It("works along an arbitrary direction", func() {
			a := s.Add(particle.V(10, 10))
			b := s.Add(particle.V(13, 14))

			r.Separate(s, a, b)

			pa, pb := s.Get(a), s.Get(b)
			Expect(pa.Distance(pb)).To(BeNumerically("~", diameter, 1e-9))
			mid := pa.Add(pb).Scale(0.5)
			Expect(mid.X).To(BeNumerically("~", 11.5, 1e-9))
			Expect(mid.Y).To(BeNumerically("~", 12, 1e-9))
			// direction preserved: b stays up and to the right of a
			Expect(pb.X).To(BeNumerically(">", pa.X))
			Expect(pb.Y).To(BeNumerically(">", pa.Y))
		})

		Context("with coincident particles", func() {
			It("pushes them apart along x under the axis policy", func() {
				a := s.Add(particle.V(3, 4))
				b := s.Add(particle.V(3, 4))

				Expect(r.Separate(s, a, b)).To(BeTrue())
				Expect(s.Get(a)).To(Equal(particle.V(3-radius, 4)))
				Expect(s.Get(b)).To(Equal(particle.V(3+radius, 4)))
			})

			It("leaves them alone under the skip policy", func() {
				r = collide.New(radius, collide.ZeroSkip)
				a := s.Add(particle.V(3, 4))
				b := s.Add(particle.V(3, 4))

				Expect(r.Separate(s, a, b)).To(BeFalse())
				Expect(s.Get(a)).To(Equal(particle.V(3, 4)))
				Expect(s.Get(b)).To(Equal(particle.V(3, 4)))
			})
		})
	})

	Describe("Resolve", func() {
		It("scans only interior cells", func() {
			populate(g, s)
			st := r.Resolve(g, s)
			Expect(st.CellsScanned).To(Equal((size - 2) * (size - 2)))
			Expect(st.PairsTested).To(BeZero())
		})

		It("never pairs a particle with itself", func() {
			s.Add(particle.V(0, 0))
			populate(g, s)
			st := r.Resolve(g, s)
			Expect(st.PairsTested).To(BeZero())
			Expect(s.Get(0)).To(Equal(particle.V(0, 0)))
		})

		It("visits a pair in adjacent cells once from each side", func() {
			s.Add(particle.V(1, 1))
			s.Add(particle.V(20, 1))
			populate(g, s)

			st := r.Resolve(g, s)
			// both cells are scanned and each sees the other as a neighbour
			Expect(st.PairsTested).To(Equal(2))
			Expect(st.Resolutions).To(BeZero())
		})

		It("corrects a pair again when a later visit finds it overlapping", func() {
			s.Add(particle.V(-2.1710, 0.2306))
			s.Add(particle.V(-5.2474, -0.9469))
			s.Add(particle.V(-4.4908, 8.8699))
			populate(g, s)

			st := r.Resolve(g, s)
			// three distinct pairs, four corrections: one pair is moved twice
			Expect(st.Resolutions).To(Equal(4))
			Expect(st.PairsTested).To(Equal(6))

			want := []particle.Vec2{
				particle.V(5.705369278701414, 0.6590579553335998),
				particle.V(-11.709519299279584, -4.173519709858162),
				particle.V(-5.905049979421831, 11.66806175452456),
			}
			for i, w := range want {
				Expect(s.Get(i).X).To(BeNumerically("~", w.X, 1e-9), "x of particle %d", i)
				Expect(s.Get(i).Y).To(BeNumerically("~", w.Y, 1e-9), "y of particle %d", i)
			}
		})

		It("separates a two-body overlap in one pass", func() {
			s.Add(particle.V(0, 0))
			s.Add(particle.V(5, 0))
			populate(g, s)

			st := r.Resolve(g, s)
			Expect(st.Resolutions).To(BeNumerically(">=", 1))

			pa, pb := s.Get(0), s.Get(1)
			Expect(pa.Distance(pb)).To(BeNumerically("~", diameter, 1e-4))
			Expect((pa.X + pb.X) / 2).To(BeNumerically("~", 2.5, 1e-4))
			Expect((pa.Y + pb.Y) / 2).To(BeNumerically("~", 0, 1e-4))
		})

		It("reaches a border particle only from an interior neighbour", func() {
			// x=-630 maps to cell 0, x=-616 to cell 1
			s.Add(particle.V(-630, 0))
			s.Add(particle.V(-616, 0))
			populate(g, s)

			x0, _ := g.Cell(s.Get(0))
			x1, _ := g.Cell(s.Get(1))
			Expect(x0).To(Equal(0))
			Expect(x1).To(Equal(1))

			st := r.Resolve(g, s)
			// cell 1 is interior and sees cell 0 as a neighbour, cell 0 is
			// never scanned itself
			Expect(st.PairsTested).To(Equal(1))
			Expect(s.Get(0).Distance(s.Get(1))).To(BeNumerically("~", diameter, 1e-4))
		})

		It("never resolves a pair held entirely in border cells", func() {
			s.Add(particle.V(-639, 0))
			s.Add(particle.V(-639, 5))
			populate(g, s)

			st := r.Resolve(g, s)
			Expect(st.PairsTested).To(BeZero())
			Expect(s.Get(0)).To(Equal(particle.V(-639, 0)))
			Expect(s.Get(1)).To(Equal(particle.V(-639, 5)))
		})

		It("is a no-op once nothing overlaps", func() {
			for i := 0; i < 6; i++ {
				s.Add(particle.V(float64(i)*diameter, 0))
			}
			before := s.Positions()
			populate(g, s)

			st := r.Resolve(g, s)
			Expect(st.Resolutions).To(BeZero())
			Expect(s.Positions()).To(Equal(before))
		})

		It("counts coincident pairs", func() {
			s.Add(particle.V(0, 0))
			s.Add(particle.V(0, 0))
			populate(g, s)

			st := r.Resolve(g, s)
			Expect(st.ZeroDistance).To(Equal(1))
			Expect(s.Get(0).Distance(s.Get(1))).To(BeNumerically("~", diameter, 1e-9))
		})
	})
})
