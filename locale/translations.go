package locale

import (
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Translations holds the message printer for the current LC_MESSAGES locale
type Translations struct {
	mu      sync.RWMutex
	name    string
	tag     language.Tag
	printer *message.Printer
}

// NewTranslations builds a printer for the given messages locale
func NewTranslations(messages string) *Translations {
	t := &Translations{}
	t.Invalidate(messages)
	return t
}

// Invalidate drops the current printer and builds one for the new messages locale
func (t *Translations) Invalidate(messages string) {
	tag, err := language.Parse(Tag(messages))
	if err != nil {
		tag = language.Und
	}
	t.mu.Lock()
	t.name = messages
	t.tag = tag
	t.printer = message.NewPrinter(tag)
	t.mu.Unlock()
}

// Locale returns the messages locale the printer was built for
func (t *Translations) Locale() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.name
}

// Language returns the parsed language tag
func (t *Translations) Language() language.Tag {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tag
}

// Sprintf formats through the current printer
func (t *Translations) Sprintf(format string, args ...any) string {
	t.mu.RLock()
	p := t.printer
	t.mu.RUnlock()
	return p.Sprintf(format, args...)
}
