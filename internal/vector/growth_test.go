package vector_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/valarray/internal/vector"
)

var _ = Describe("Vector growth", func() {
	var v *vector.Vector[int]

	BeforeEach(func() {
		v = vector.New[int]()
	})

	Context("pushing at the back", func() {
		It("keeps every element across the 8 -> 16 -> 32 boundaries", func() {
			caps := []int{}
			for i := 0; i < 20; i++ {
				v.PushBack(i)
				if len(caps) == 0 || caps[len(caps)-1] != v.Cap() {
					caps = append(caps, v.Cap())
				}
			}

			Expect(caps).To(Equal([]int{8, 16, 32}))
			Expect(v.Len()).To(Equal(20))
			for i := 0; i < 20; i++ {
				Expect(v.At(i)).To(Equal(i))
			}
		})

		It("leaves at least half of the new slack at the front", func() {
			for i := 0; i < 9; i++ {
				v.PushBack(i)
			}

			Expect(v.Cap()).To(Equal(16))
			Expect(v.FrontCap()).To(BeNumerically(">=", 4))
			Expect(v.FrontCap() + v.Len() + v.BackCap()).To(Equal(v.Cap()))
		})
	})

	Context("pushing at the front", func() {
		It("grows the front and preserves order", func() {
			for i := 0; i < 20; i++ {
				v.PushFront(i)
			}

			Expect(v.Len()).To(Equal(20))
			Expect(v.Front()).To(Equal(19))
			Expect(v.Back()).To(Equal(0))
			Expect(v.Slice()[10]).To(Equal(9))
		})

		It("reserves slack on the back while growing the front", func() {
			v.PushBack(0)
			for i := 0; i < 8; i++ {
				v.PushFront(i + 1)
			}

			Expect(v.BackCap()).To(BeNumerically(">=", 4))
		})
	})

	Context("mixing both ends", func() {
		It("behaves like a deque", func() {
			want := []int{}
			for i := 0; i < 50; i++ {
				if i%3 == 0 {
					v.PushFront(i)
					want = append([]int{i}, want...)
				} else {
					v.PushBack(i)
					want = append(want, i)
				}
			}
			Expect(v.PopFront()).To(Succeed())
			Expect(v.PopBack()).To(Succeed())
			want = want[1 : len(want)-1]

			Expect(v.Slice()).To(Equal(want))
		})
	})

	Context("an empty vector", func() {
		It("reports out of range on every end operation", func() {
			Expect(v.PopBack()).To(MatchError(vector.ErrOutOfRange))
			Expect(v.PopFront()).To(MatchError(vector.ErrOutOfRange))

			_, err := v.Front()
			Expect(err).To(MatchError(vector.ErrOutOfRange))
			_, err = v.Back()
			Expect(err).To(MatchError(vector.ErrOutOfRange))
		})
	})

	Context("reserving explicitly", func() {
		It("does nothing when the spare already fits", func() {
			v.ReserveBack(8)
			Expect(v.Cap()).To(Equal(8))
		})

		It("doubles until the request fits", func() {
			v.PushBack(1)
			v.ReserveBack(40)

			Expect(v.Cap()).To(Equal(64))
			Expect(v.BackCap()).To(BeNumerically(">=", 40))
			Expect(v.At(0)).To(Equal(1))
		})
	})
})
