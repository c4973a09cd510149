// Package dateparse resolves date strings at the I/O boundary into
// time.Time, per an explicit format switch (spec §6). No date-ambiguity
// library appears anywhere in the retrieval corpus, so this stays on
// stdlib time.Parse — see DESIGN.md for the justification.
package dateparse

import (
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/schedcu/shiftsolver/internal/entity"
)

// Format names the expected layout of an input date string.
type Format string

const (
	ISO  Format = "iso" // YYYY-MM-DD
	US   Format = "us"  // MM/DD/YYYY
	EU   Format = "eu"  // DD/MM/YYYY
	Auto Format = "auto"
)

const (
	isoLayout = "2006-01-02"
	usLayout  = "01/02/2006"
	euLayout  = "02/01/2006"
)

// Parse resolves value per the requested format. Auto tries ISO first (the
// unambiguous layout), then US, then EU.
func Parse(value string, format Format) (time.Time, error) {
	value = strings.TrimSpace(value)

	switch format {
	case ISO, "":
		return parseLayout(value, isoLayout)
	case US:
		return parseLayout(value, usLayout)
	case EU:
		return parseLayout(value, euLayout)
	case Auto:
		if t, err := parseLayout(value, isoLayout); err == nil {
			return t, nil
		}
		if t, err := parseLayout(value, usLayout); err == nil {
			if _, eerr := parseLayout(value, euLayout); eerr == nil {
				warnAmbiguousOnce(value)
			}
			return t, nil
		}
		return parseLayout(value, euLayout)
	default:
		return time.Time{}, entity.NewConfigError(entity.InvalidTime, "unknown date_format: "+string(format))
	}
}

// warnedLiterals tracks which ambiguous date strings have already triggered
// an auto-resolution warning, so a literal repeated across many requests
// (spec §6 scenario S6) only logs once per process lifetime.
var (
	warnedMu       sync.Mutex
	warnedLiterals = make(map[string]struct{})
)

func warnAmbiguousOnce(value string) {
	warnedMu.Lock()
	defer warnedMu.Unlock()
	if _, done := warnedLiterals[value]; done {
		return
	}
	warnedLiterals[value] = struct{}{}
	zap.S().Warnw("auto date format resolved an ambiguous literal as US (MM/DD/YYYY)", "value", value)
}

func parseLayout(value, layout string) (time.Time, error) {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}, entity.NewConfigError(entity.InvalidTime, "could not parse date "+value+": "+err.Error())
	}
	return t, nil
}
