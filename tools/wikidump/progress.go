package main

import (
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/swlocal/go-wikidump"
)

// progress logs a running page count as pages are pulled through it.
type progress struct {
	wikidump.Parser

	every int64
	pages int64
	prev  time.Time
}

func newProgress(p wikidump.Parser, every int64) *progress {
	return &progress{Parser: p, every: every, prev: time.Now()}
}

func (p *progress) Next() (*wikidump.Page, error) {
	page, err := p.Parser.Next()
	if err != nil {
		return nil, err
	}
	p.pages++
	if p.every > 0 && p.pages%p.every == 0 {
		now := time.Now()
		d := now.Sub(p.prev)
		log.Printf("Processed %s pages total (%.2f/s)",
			humanize.Comma(p.pages), float64(p.every)/d.Seconds())
		p.prev = now
	}
	return page, nil
}
