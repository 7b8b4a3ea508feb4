package words

import (
	"context"
	"fmt"
	"net/http"
)

// Word sources selectable through Options.Source.
const (
	SourceRemote = "remote" // random word API
	SourceList   = "list"   // random pick from the word list
	SourceDaily  = "daily"  // word of the day from the word list
)

// Provider is implemented by every word source. It matches game.WordProvider.
type Provider interface {
	FetchWord(ctx context.Context, length int) (string, error)
}

// Options configures NewProvider.
type Options struct {
	Source      string
	APIURL      string       // remote only
	Client      *http.Client // remote only; nil for the default
	AnswersFile string       // list and daily; empty for the embedded list
	DailySalt   string       // daily only
}

// NewProvider builds the provider selected by opts.Source.
func NewProvider(opts Options) (Provider, error) {
	switch opts.Source {
	case SourceRemote, "":
		return NewRemoteProvider(opts.APIURL, opts.Client), nil
	case SourceList:
		list, err := LoadList(opts.AnswersFile)
		if err != nil {
			return nil, err
		}
		return NewListProvider(list), nil
	case SourceDaily:
		list, err := LoadList(opts.AnswersFile)
		if err != nil {
			return nil, err
		}
		return NewDailyProvider(list, opts.DailySalt, nil), nil
	}
	return nil, fmt.Errorf("words: unknown source %q", opts.Source)
}
