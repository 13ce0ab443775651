package main

import (
	"log"

	"github.com/pterm/pterm"
)

// progressSink renders a per-table progress bar, one tick per committed
// batch, and logs the events a bar cannot show.
type progressSink struct {
	bar *pterm.ProgressbarPrinter
}

func newProgressSink() *progressSink {
	return &progressSink{}
}

func (p *progressSink) TableCreated(table string) {
	log.Printf("  created table %s", table)
}

func (p *progressSink) TableStarted(table string, totalRows int64, totalBatches int) {
	bar, err := pterm.DefaultProgressbar.
		WithTotal(totalBatches).
		WithTitle("transferring " + table).
		Start()
	if err != nil {
		// Fall back to plain logging on terminals pterm cannot drive
		logSink{}.TableStarted(table, totalRows, totalBatches)
		return
	}
	p.bar = bar
}

func (p *progressSink) BatchCommitted(table string, batch, totalBatches, rows int) {
	if p.bar == nil {
		logSink{}.BatchCommitted(table, batch, totalBatches, rows)
		return
	}
	p.bar.Increment()
}

func (p *progressSink) TableFinished(table string, rowsRead int64) {
	if p.bar != nil {
		p.bar.Stop()
		p.bar = nil
	}
	log.Printf("  finished %s (%d rows)", table, rowsRead)
}
