// Package translate formats the user-visible messages of the Intcode tools
// for the locale of the running system.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/message"
)

// Fallback is the language used when the system reports no locale.
const Fallback = "en-US"

var (
	mu      sync.RWMutex
	printer *message.Printer
)

// systemLocales returns the locales configured for the current user.
func systemLocales() []string {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("intcode: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{Fallback}
	}

	return locales
}

// Use selects the message printer for the given languages. With no
// arguments the system locales are used.
func Use(languages ...string) {
	if len(languages) == 0 {
		languages = systemLocales()
	}

	p := message.NewPrinter(message.MatchLanguage(languages...))

	mu.Lock()
	printer = p
	mu.Unlock()
}

func current() *message.Printer {
	mu.RLock()
	p := printer
	mu.RUnlock()
	if p != nil {
		return p
	}

	Use()

	mu.RLock()
	defer mu.RUnlock()
	return printer
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return current().Sprintf(key, args...)
}
