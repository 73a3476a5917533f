// Package statsview serves live runtime statistics of the process (heap,
// goroutines, GC pauses) as web charts.
package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Address the statistics are served on.
const Address = "localhost:12600"

const url = "/debug/statsview"

// Launch starts the statistics server in the background and writes its
// URL to output. The returned function stops the server.
func Launch(output io.Writer) (stop func()) {
	viewer.SetConfiguration(viewer.WithAddr(Address))
	mgr := statsview.New()
	go mgr.Start()

	fmt.Fprintf(output, "stats server available at http://%s%s\n", Address, url)
	return mgr.Stop
}
