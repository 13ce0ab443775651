package main

import "log"

// EventSink receives migration progress events. The pipeline carries no
// logging or display concern of its own; the CLI layer decides what a sink
// does with each event. BatchCommitted fires once per committed chunk.
type EventSink interface {
	TableCreated(table string)
	TableStarted(table string, totalRows int64, totalBatches int)
	BatchCommitted(table string, batch, totalBatches, rows int)
	TableFinished(table string, rowsRead int64)
}

// logSink writes events through the standard logger.
type logSink struct{}

func (logSink) TableCreated(table string) {
	log.Printf("  created table %s", table)
}

func (logSink) TableStarted(table string, totalRows int64, totalBatches int) {
	log.Printf("  transferring %s: %d rows in %d batch(es)", table, totalRows, totalBatches)
}

func (logSink) BatchCommitted(table string, batch, totalBatches, rows int) {
	log.Printf("    %s: batch %d/%d committed (%d rows)", table, batch, totalBatches, rows)
}

func (logSink) TableFinished(table string, rowsRead int64) {
	log.Printf("  finished %s (%d rows)", table, rowsRead)
}

// nopSink discards all events.
type nopSink struct{}

func (nopSink) TableCreated(string)                  {}
func (nopSink) TableStarted(string, int64, int)      {}
func (nopSink) BatchCommitted(string, int, int, int) {}
func (nopSink) TableFinished(string, int64)          {}
