package dynamo_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/jostle/internal/collide"
	"github.com/san-kum/jostle/internal/dynamo"
	"github.com/san-kum/jostle/internal/particle"
)

func newWorld() *dynamo.World {
	w, err := dynamo.NewWorld(dynamo.DefaultGeometry(), collide.ZeroAxis)
	Expect(err).NotTo(HaveOccurred())
	return w
}

func expectAt(w *dynamo.World, i int, x, y float64) {
	p := w.Position(i)
	ExpectWithOffset(1, p.X).To(BeNumerically("~", x, 1e-6), "x of particle %d", i)
	ExpectWithOffset(1, p.Y).To(BeNumerically("~", y, 1e-6), "y of particle %d", i)
}

var _ = Describe("World", func() {
	Describe("NewWorld", func() {
		DescribeTable("rejects bad geometry",
			func(g dynamo.Geometry, want error) {
				_, err := dynamo.NewWorld(g, collide.ZeroAxis)
				Expect(errors.Is(err, want)).To(BeTrue())
			},
			Entry("zero radius", dynamo.Geometry{Radius: 0, GridSize: 80}, dynamo.ErrInvalidRadius),
			Entry("negative radius", dynamo.Geometry{Radius: -1, GridSize: 80}, dynamo.ErrInvalidRadius),
			Entry("tiny grid", dynamo.Geometry{Radius: 8, GridSize: 2}, dynamo.ErrInvalidGridSize),
		)

		It("covers a square of side 2*radius*N", func() {
			Expect(dynamo.DefaultGeometry().Extent()).To(Equal(1280.0))
		})
	})

	Describe("OnPointerMove", func() {
		It("appends one particle per event, duplicates included", func() {
			w := newWorld()
			Expect(w.OnPointerMove(1, 2)).To(Equal(0))
			Expect(w.OnPointerMove(1, 2)).To(Equal(1))
			Expect(w.OnPointerMove(3, 4)).To(Equal(2))
			Expect(w.ParticleCount()).To(Equal(3))
			Expect(w.Grid().Occupied()).To(Equal(3))
		})
	})

	Describe("OnTick", func() {
		It("leaves every particle in exactly the cell of its position", func() {
			w := newWorld()
			for i := 0; i < 50; i++ {
				w.OnPointerMove(float64(i*7%300)-150, float64(i*13%300)-150)
			}
			w.OnTick()

			g := w.Grid()
			Expect(g.Occupied()).To(Equal(w.ParticleCount()))

			seen := make(map[int]int)
			for x := 0; x < g.Size(); x++ {
				for y := 0; y < g.Size(); y++ {
					for _, idx := range g.Get(x, y) {
						seen[idx]++
					}
				}
			}
			Expect(seen).To(HaveLen(w.ParticleCount()))
			for idx, n := range seen {
				Expect(n).To(Equal(1), "particle %d filed %d times", idx, n)
			}
		})

		It("files each particle under the cell of its position at tick start", func() {
			w := newWorld()
			w.OnPointerMove(0, 0)
			w.OnPointerMove(300, -200)
			w.OnTick()

			for i, p := range w.Particles() {
				x, y := w.Grid().Cell(p)
				Expect(w.Grid().Get(x, y)).To(ContainElement(i))
			}
		})

		It("counts ticks and reports resolver work", func() {
			w := newWorld()
			w.OnTick()
			Expect(w.Ticks()).To(Equal(1))
			Expect(w.LastStats().CellsScanned).To(Equal(78 * 78))
		})
	})

	Describe("scenario A: two overlapping particles", func() {
		It("ends one diameter apart around the same midpoint", func() {
			w := newWorld()
			w.OnPointerMove(0, 0)
			w.OnPointerMove(5, 0)
			w.OnTick()

			a, b := w.Position(0), w.Position(1)
			Expect(a.Distance(b)).To(BeNumerically("~", 16.0, 1e-4))
			Expect((a.X + b.X) / 2).To(BeNumerically("~", 2.5, 1e-4))
			Expect((a.Y + b.Y) / 2).To(BeNumerically("~", 0, 1e-4))
		})
	})

	Describe("scenario B: border dead zone", func() {
		It("does not move a border particle one diameter from an interior one", func() {
			w := newWorld()
			w.OnPointerMove(-630, 0)
			w.OnPointerMove(-614, 0)
			w.OnTick()

			expectAt(w, 0, -630, 0)
			expectAt(w, 1, -614, 0)
		})

		It("never resolves overlaps inside the border ring", func() {
			w := newWorld()
			w.OnPointerMove(-635, 0)
			w.OnPointerMove(-634, 0)
			w.OnPointerMove(635, 600)
			w.OnPointerMove(636, 600)
			for i := 0; i < 5; i++ {
				w.OnTick()
			}

			expectAt(w, 0, -635, 0)
			expectAt(w, 1, -634, 0)
			expectAt(w, 2, 635, 600)
			expectAt(w, 3, 636, 600)
			Expect(w.LastStats().PairsTested).To(BeZero())
		})
	})

	Describe("scenario C: three collinear particles", func() {
		place := func() *dynamo.World {
			w := newWorld()
			w.OnPointerMove(0, 0)
			w.OnPointerMove(10, 0)
			w.OnPointerMove(20, 0)
			return w
		}

		It("matches the reference configuration after one tick", func() {
			w := place()
			w.OnTick()

			expectAt(w, 0, -3, 0)
			expectAt(w, 1, 8.5, 0)
			expectAt(w, 2, 24.5, 0)
		})

		It("is reproducible", func() {
			a, b := place(), place()
			for i := 0; i < 10; i++ {
				a.OnTick()
				b.OnTick()
			}
			Expect(a.Positions()).To(Equal(b.Positions()))
		})

		It("does not converge within one tick", func() {
			w := place()
			w.OnTick()
			Expect(w.Position(0).Distance(w.Position(1))).To(BeNumerically("<", 16))
		})

		It("settles over repeated ticks and then stays put", func() {
			w := place()
			for i := 0; i < 200; i++ {
				w.OnTick()
			}
			ps := w.Positions()
			Expect(ps[0].Distance(ps[1])).To(BeNumerically(">=", 16-1e-6))
			Expect(ps[1].Distance(ps[2])).To(BeNumerically(">=", 16-1e-6))

			expectAt(w, 0, -6, 0)
			expectAt(w, 1, 10, 0)
			expectAt(w, 2, 26, 0)
		})
	})

	Describe("Particles", func() {
		It("can be ranged over repeatedly", func() {
			w := newWorld()
			w.OnPointerMove(1, 1)
			w.OnPointerMove(2, 2)

			count := func() int {
				n := 0
				for range w.Particles() {
					n++
				}
				return n
			}
			Expect(count()).To(Equal(2))
			Expect(count()).To(Equal(2))
		})
	})

	It("panics on an unknown particle index", func() {
		w := newWorld()
		Expect(func() { w.Position(0) }).To(PanicWith(MatchError(particle.ErrIndexOutOfRange)))
	})
})
