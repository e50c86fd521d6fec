// Package progress attaches an optional progress bar to a context. Code that
// reports progress works the same whether or not a bar is attached.
package progress

import (
	"context"
	"fmt"
	"io"
	"time"

	pb "github.com/schollz/progressbar/v3"
)

type barKey struct{}

// Open returns a context whose progress bars render to w.
func Open(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, barKey{}, w)
}

func writer(ctx context.Context) (io.Writer, bool) {
	w, ok := ctx.Value(barKey{}).(io.Writer)
	return w, ok && w != nil
}

type Progress struct {
	bar    *pb.ProgressBar
	prefix string
}

func (t *Progress) Tick() {
	if t.bar == nil {
		return
	}

	t.bar.Add(1)
}

func (t *Progress) On(step string) {
	if t.bar == nil {
		return
	}

	t.bar.Describe(t.prefix + ": " + step)
}

func (t *Progress) Close() {
	if t.bar == nil {
		return
	}

	t.bar.Finish()
}

// Count starts a bar for total steps, or a no-op Progress when the context
// has no writer attached.
func Count(ctx context.Context, total int64, desc string) *Progress {
	w, ok := writer(ctx)
	if !ok || total == 0 {
		return &Progress{}
	}

	bar := pb.NewOptions64(
		total,
		pb.OptionSetDescription(desc),
		pb.OptionSetWriter(w),
		pb.OptionSetWidth(20),
		pb.OptionThrottle(65*time.Millisecond),
		pb.OptionShowCount(),
		pb.OptionSetTheme(
			pb.Theme{Saucer: "=", SaucerPadding: " ", BarStart: "[", BarEnd: "]"},
		),
		pb.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
	)
	bar.RenderBlank()

	return &Progress{prefix: desc, bar: bar}
}
