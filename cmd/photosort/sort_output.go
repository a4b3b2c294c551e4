package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"photosort/internal/i18n"
	"photosort/internal/sorter"
)

// eventPrinter renders sorter events for the terminal. With a progress bar,
// only fallback and failure lines are printed above the bar.
type eventPrinter struct {
	out         io.Writer
	errOut      io.Writer
	tr          *i18n.Translator
	colorize    bool
	errColorize bool
	useBar      bool
	bar         *progressbar.ProgressBar
}

func newEventPrinter(out, errOut io.Writer, tr *i18n.Translator, colorize, useBar bool) *eventPrinter {
	return &eventPrinter{
		out:         out,
		errOut:      errOut,
		tr:          tr,
		colorize:    colorize,
		errColorize: shouldColorize(errOut),
		useBar:      useBar,
	}
}

func (p *eventPrinter) Observe(ev sorter.Event) {
	switch ev.Kind {
	case sorter.KindStart:
		fmt.Fprintln(p.out, paint(p.tr.T(i18n.KeySortingStarted), statusInfo, p.colorize))
		fmt.Fprintln(p.out, p.tr.T(i18n.KeyFound, ev.Total))
		if p.useBar && ev.Total > 0 {
			p.bar = progressbar.NewOptions(ev.Total,
				progressbar.OptionSetWriter(p.errOut),
				progressbar.OptionSetDescription(p.tr.T(i18n.KeyTitle)),
				progressbar.OptionShowCount(),
				progressbar.OptionSetElapsedTime(true),
				progressbar.OptionClearOnFinish(),
				progressbar.OptionThrottle(65*time.Millisecond),
			)
		}
	case sorter.KindMetadataFallback:
		p.line(p.errOut, paint(p.tr.T(i18n.KeyFallback, filepath.Base(ev.Path), ev.Detail), statusInfo, p.errColorize))
	case sorter.KindPlaced:
		if p.bar == nil {
			fmt.Fprintln(p.out, p.tr.T(i18n.KeyMoved, filepath.Base(ev.Path), filepath.Base(ev.Target), filepath.Dir(ev.Target)))
		}
		p.advance()
	case sorter.KindFailed:
		p.line(p.errOut, paint(p.tr.T(i18n.KeyFailed, filepath.Base(ev.Path), ev.Err), statusError, p.errColorize))
		p.advance()
	case sorter.KindComplete:
		p.finish()
	}
}

func (p *eventPrinter) line(w io.Writer, s string) {
	if p.bar != nil {
		_ = p.bar.Clear()
	}
	fmt.Fprintln(w, s)
	if p.bar != nil {
		_ = p.bar.RenderBlank()
	}
}

func (p *eventPrinter) advance() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *eventPrinter) finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
		p.bar = nil
	}
}

func renderSummary(tr *i18n.Translator, summary sorter.Summary) string {
	keys := []i18n.Key{
		i18n.KeyColumnMoved,
		i18n.KeyColumnFailed,
		i18n.KeyColumnRenamed,
		i18n.KeyColumnFallbacks,
		i18n.KeyColumnSkipped,
		i18n.KeyColumnSize,
		i18n.KeyColumnDuration,
	}
	columns := make([]column, len(keys))
	for i, key := range keys {
		columns[i] = numCol(tr.Upper(tr.T(key)))
	}
	row := []string{
		strconv.Itoa(summary.Moved),
		strconv.Itoa(summary.Failed),
		strconv.Itoa(summary.Renamed),
		strconv.Itoa(summary.Fallbacks),
		strconv.Itoa(summary.Skipped),
		humanize.IBytes(uint64(summary.Bytes)),
		summary.Duration().Round(time.Millisecond).String(),
	}
	return renderTable(columns, [][]string{row})
}
