package cmd

import (
	"os"

	"github.com/gosuri/uiprogress"
)

// startProgress shows a bar over total scripts. The returned hook advances
// it; stop must be called once the run is over.
func startProgress(enabled bool, total int) (onFile func(), stop func()) {
	if !enabled || total == 0 {
		return nil, func() {}
	}

	p := uiprogress.New()
	p.SetOut(os.Stderr)
	p.Start()
	bar := p.AddBar(total).AppendCompleted().PrependElapsed()
	bar.PrependFunc(func(b *uiprogress.Bar) string {
		return "Processing: "
	})
	return func() { bar.Incr() }, p.Stop
}
