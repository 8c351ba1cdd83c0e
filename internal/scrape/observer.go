package scrape

import "github.com/wscrape/wscrape/internal/store"

// Observer receives each capture cycle's full parsed batch after the
// persistence pass, regardless of which records persisted successfully.
// It is invoked synchronously inside the capture task, so a slow observer
// delays the next cycle.
type Observer interface {
	ReceiveBatch(entries []store.LoginEntry)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(entries []store.LoginEntry)

// ReceiveBatch calls f(entries).
func (f ObserverFunc) ReceiveBatch(entries []store.LoginEntry) {
	f(entries)
}
