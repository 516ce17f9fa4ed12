package main

import (
	"errors"

	"github.com/atomicstack/suggestbox/internal/app"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("suggestbox needs an interactive terminal on stdin")

// terminal is what the popup learns about the console before starting.
type terminal struct {
	Input  bool   `json:"input"`
	Output bool   `json:"output"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Error  string `json:"error,omitempty"`
}

func probeTerminal(in, out uintptr) terminal {
	t := terminal{
		Input:  term.IsTerminal(int(in)),
		Output: term.IsTerminal(int(out)),
	}
	if !t.Output {
		return t
	}
	width, height, err := term.GetSize(int(out))
	if err != nil {
		t.Error = err.Error()
		return t
	}
	t.Width, t.Height = width, height
	return t
}

func (t terminal) check() error {
	if !t.Input {
		return errNoTerminal
	}
	return nil
}

// fit shrinks a fixed width or height that would overflow the output
// terminal. Unknown sizes leave cfg alone.
func (t terminal) fit(cfg app.Config) app.Config {
	if t.Width > 0 && cfg.Width > t.Width {
		cfg.Width = t.Width
	}
	if t.Height > 0 && cfg.Height > t.Height {
		cfg.Height = t.Height
	}
	return cfg
}
