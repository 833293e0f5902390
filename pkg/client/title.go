package client

import (
	"strings"
	"sync"

	"go.uber.org/zap"
)

const defaultTitleSeparator = " | "

// TitleSink receives the rendered document title. The DOM (or whatever
// surface displays the title) sits behind this boundary.
type TitleSink interface {
	SetTitle(title string)
}

// TitleSinkFunc adapts a function to a TitleSink.
type TitleSinkFunc func(title string)

func (f TitleSinkFunc) SetTitle(title string) { f(title) }

// TitleController tracks a base title, an optional page title, and the
// separator joining them. The rendered title is page + separator + base
// when a page title is set, else base alone.
type TitleController struct {
	mu        sync.Mutex
	base      string
	page      string
	separator string
	sink      TitleSink
	log       *zap.Logger
}

// NewTitleController creates a controller rendering through sink. An empty
// separator selects the default " | ". sink may be nil.
func NewTitleController(sink TitleSink, separator string, log *zap.Logger) *TitleController {
	if separator == "" {
		separator = defaultTitleSeparator
	}
	return &TitleController{
		separator: separator,
		sink:      sink,
		log:       log,
	}
}

// Init parses current into page and base title. When the separator occurs
// in current, the part before it becomes the page title and the part after
// becomes the base title; otherwise the whole string is the base title and
// the page title is cleared.
func (t *TitleController) Init(current string) {
	t.mu.Lock()
	if before, after, found := strings.Cut(current, t.separator); found {
		t.page = before
		t.base = after
	} else {
		t.page = ""
		t.base = current
	}
	t.mu.Unlock()
	t.apply()
}

// Update replaces the page title unconditionally (empty clears it). An
// empty base or separator means "not supplied" and keeps the stored value;
// anything else overwrites it.
func (t *TitleController) Update(page, base, separator string) {
	t.mu.Lock()
	if base != "" {
		t.base = base
	}
	if separator != "" {
		t.separator = separator
	}
	t.page = page
	t.mu.Unlock()
	t.apply()
}

// Rendered returns the displayed title.
func (t *TitleController) Rendered() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rendered()
}

// PageTitle returns the current page title, empty when cleared.
func (t *TitleController) PageTitle() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.page
}

// BaseTitle returns the current base title.
func (t *TitleController) BaseTitle() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.base
}

func (t *TitleController) rendered() string {
	if t.page == "" {
		return t.base
	}
	return t.page + t.separator + t.base
}

func (t *TitleController) apply() {
	t.mu.Lock()
	title := t.rendered()
	sink := t.sink
	t.mu.Unlock()

	if sink != nil {
		sink.SetTitle(title)
	}
	if t.log != nil {
		t.log.Debug("document title updated", zap.String("title", title))
	}
}
