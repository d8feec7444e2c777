package bench

import (
	"context"
	"fmt"
	"testing"

	"github.com/fxnlabs/densolver/pkg/solver"
)

func BenchmarkDispatch(b *testing.B) {
	h, err := solver.Create()
	if err != nil {
		b.Fatal(err)
	}
	defer h.Destroy()

	for _, fn := range []string{"getrf", "potrf", "geqrf", "syevd"} {
		for _, size := range []int{32, 64, 128, 256} {
			b.Run(fmt.Sprintf("%s/size_%d", fn, size), func(b *testing.B) {
				args := DefaultArguments()
				args.Function = fn
				args.Precision = 'd'
				args.M, args.N = size, size
				args.Iters = 1

				var gflops float64
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					res, err := Dispatch(context.Background(), h, args)
					if err != nil {
						b.Fatal(err)
					}
					gflops += res.GFLOPS
				}
				b.ReportMetric(gflops/float64(b.N), "GFLOPS")
			})
		}
	}
}
