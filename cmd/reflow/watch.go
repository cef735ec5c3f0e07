package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/quilldoc/reflow/internal/engine/doc"
	"github.com/quilldoc/reflow/internal/engine/epoch"
	"github.com/quilldoc/reflow/internal/renderer/selsync"
	"github.com/quilldoc/reflow/internal/watch"
)

// layoutResult carries one finished background layout back to the
// event loop.
type layoutResult struct {
	epoch      int64
	paragraphs []paragraphLayout
	err        error
}

func runWatch(args []string) int {
	fs := newFlagSet("watch", "<document>")
	caretFlag := fs.Int64("caret", -1, "Byte offset in the document file to track across edits")
	debounce := fs.Duration("debounce", watch.DefaultDebounce, "Quiet interval before a change is processed")
	verbose := fs.Bool("verbose", false, "Print resolved tab stops on every layout")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	path := fs.Arg(0)

	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reflow: %v\n", err)
		return 1
	}
	text := string(raw)

	d, err := loadDocument(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reflow: %v\n", err)
		return 1
	}
	defer d.Close()

	w, err := watch.New(path, watch.WithDebounce(*debounce))
	if err != nil {
		fmt.Fprintf(os.Stderr, "reflow: %v\n", err)
		return 1
	}
	defer w.Close()

	mapper := epoch.NewMapper(epoch.WithMaxEpochs(d.doc.Settings.MaxEpochs))

	// The caret is anchored at the epoch it was last mapped to.
	caret := *caretFlag
	caretEpoch := int64(0)

	queue := selsync.NewQueueScheduler()
	coord := selsync.NewCoordinator(selsync.WithScheduler(queue))
	defer coord.Destroy()

	var current []paragraphLayout
	coord.Subscribe(func() {
		fmt.Printf("-- layout epoch %d --\n", coord.State().LayoutEpoch)
		printLayout(os.Stdout, current, *verbose)
		if caret >= 0 {
			fmt.Printf("caret: %d\n", caret)
		}
	})

	// Initial layout renders before any edit arrives.
	current, err = d.layoutParagraphs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "reflow: %v\n", err)
		return 1
	}
	coord.RequestRender()
	queue.RunPending()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	results := make(chan layoutResult, 1)

	for {
		select {
		case <-signals:
			return 0

		case err, ok := <-w.Errors():
			if !ok {
				return 0
			}
			fmt.Fprintf(os.Stderr, "reflow: watch: %v\n", err)

		case ev, ok := <-w.Events():
			if !ok {
				return 0
			}

			raw, err := os.ReadFile(ev.Path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "reflow: %v\n", err)
				continue
			}
			edit, changed := doc.Diff(text, string(raw))
			if !changed {
				continue
			}
			text = string(raw)

			mapper.RecordTransaction(epoch.TransformOf(edit))

			// The caret moves with the edit, before pruning can drop
			// the transform it rode on.
			if caret >= 0 {
				res := mapper.MapToCurrentDetailed(doc.Position(caret), caretEpoch, epoch.AssocAfter)
				if res.OK {
					caret = int64(res.Pos)
					caretEpoch = res.ToEpoch
				} else {
					fmt.Printf("caret: lost (%s)\n", res.Reason)
					caret = -1
				}
			}

			coord.SetDocEpoch(mapper.CurrentEpoch())
			coord.OnLayoutStart()

			go func(e int64) {
				nd, err := loadDocument(path)
				if err != nil {
					results <- layoutResult{epoch: e, err: err}
					return
				}
				defer nd.Close()
				paragraphs, err := nd.layoutParagraphs()
				results <- layoutResult{epoch: e, paragraphs: paragraphs, err: err}
			}(mapper.CurrentEpoch())

		case res := <-results:
			if res.err != nil {
				fmt.Fprintf(os.Stderr, "reflow: layout: %v\n", res.err)
				coord.OnLayoutAbort()
				queue.RunPending()
				continue
			}
			current = res.paragraphs
			mapper.OnLayoutComplete(res.epoch)
			coord.OnLayoutComplete(res.epoch)
			coord.RequestRender()
			queue.RunPending()
		}
	}
}
