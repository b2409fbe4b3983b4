// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package prompt

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/scaffoldrc/pkg/placeholder"
	"gitlab.com/tozd/go/errors"
)

// ErrNotInteractive is returned when values are missing and there is no
// terminal to ask on.
var ErrNotInteractive = errors.Base("cannot prompt without a terminal")

// asker performs a single question. The pterm implementation is swapped for
// a fake in tests.
type asker interface {
	Text(message string, masked bool) (string, error)
	Confirm(message string, def bool) (bool, error)
	Select(message string, choices []string, def string) (string, error)
}

// 💬 Interactive asks for missing placeholders on the terminal
type Interactive struct {
	ask        asker
	isTerminal func() bool
}

// 🏭 NewInteractive creates a prompter backed by pterm's interactive printers
func NewInteractive() *Interactive {
	return &Interactive{
		ask:        ptermAsker{},
		isTerminal: stdinIsTerminal,
	}
}

func stdinIsTerminal() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Prompt asks for every spec in order and returns the answers.
func (p *Interactive) Prompt(ctx context.Context, specs []placeholder.Spec) (map[string]string, error) {
	if !p.isTerminal() {
		return nil, errors.Errorf("%w: missing %s", ErrNotInteractive, strings.Join(placeholder.Names(specs), ", "))
	}

	logger := zerolog.Ctx(ctx)
	answers := make(map[string]string, len(specs))
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			return nil, errors.Errorf("prompting cancelled: %w", err)
		}

		value, err := p.askOne(spec)
		if err != nil {
			return nil, errors.Errorf("asking for %s: %w", spec.Name, err)
		}
		logger.Trace().Str("placeholder", spec.Name).Msg("answered")
		answers[spec.Name] = value
	}
	return answers, nil
}

func (p *Interactive) askOne(spec placeholder.Spec) (string, error) {
	switch spec.Kind() {
	case placeholder.TypeConfirm:
		def, _ := strconv.ParseBool(spec.Default)
		ok, err := p.ask.Confirm(spec.Prompt(), def)
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(ok), nil

	case placeholder.TypeSelect:
		return p.ask.Select(spec.Prompt(), spec.Choices, spec.Default)

	case placeholder.TypePassword:
		value, err := p.ask.Text(spec.Prompt(), true)
		if err != nil {
			return "", err
		}
		if value == "" {
			return spec.Default, nil
		}
		return value, nil

	default:
		message := spec.Prompt()
		if spec.Default != "" {
			message = fmt.Sprintf("%s (%s)", message, spec.Default)
		}
		value, err := p.ask.Text(message, false)
		if err != nil {
			return "", err
		}
		if value == "" {
			return spec.Default, nil
		}
		return value, nil
	}
}

// ptermAsker implements asker with pterm
type ptermAsker struct{}

func (ptermAsker) Text(message string, masked bool) (string, error) {
	printer := pterm.DefaultInteractiveTextInput
	if masked {
		printer = *printer.WithMask("*")
	}
	return printer.Show(message)
}

func (ptermAsker) Confirm(message string, def bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultValue(def).Show(message)
}

func (ptermAsker) Select(message string, choices []string, def string) (string, error) {
	printer := pterm.DefaultInteractiveSelect.WithOptions(choices)
	if def != "" {
		printer = printer.WithDefaultOption(def)
	}
	return printer.Show(message)
}
