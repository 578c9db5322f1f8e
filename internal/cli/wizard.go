package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/imihigo/internal/builder"
	"github.com/alexanderramin/imihigo/internal/cli/formatter"
	"github.com/alexanderramin/imihigo/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// imihigoHuhTheme paints huh's base theme with the dashboard palette.
func imihigoHuhTheme() *huh.Theme {
	accent := lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	text := lipgloss.NewStyle().Foreground(formatter.ColorFg)
	muted := lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t := huh.ThemeBase()
	f := &t.Focused
	f.Title = accent.Bold(true)
	f.Description = muted
	f.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	f.TextInput.Cursor, f.TextInput.Prompt = accent, accent
	f.TextInput.Text, f.TextInput.Placeholder = text, muted
	f.FocusedButton = text.Background(formatter.ColorHeader).Padding(0, 1)
	f.BlurredButton = muted.Padding(0, 1)

	t.Blurred.Title = muted
	t.Blurred.TextInput.Prompt, t.Blurred.TextInput.Text = muted, muted
	return t
}

// Prompter asks the author one question at a time. value holds the default
// on entry and the answer on return.
type Prompter interface {
	Input(title, description string, value *string, validate func(string) error) error
}

type huhPrompter struct{}

func (huhPrompter) Input(title, description string, value *string, validate func(string) error) error {
	if validate == nil {
		validate = func(string) error { return nil }
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description(description).
				Value(value).
				Validate(validate),
		),
	).WithTheme(imihigoHuhTheme()).WithShowHelp(false).Run()
}

// atLeast builds a validator for counts: blank means the default, otherwise
// a whole number no smaller than floor.
func atLeast(floor int, msg string) func(string) error {
	return func(s string) error {
		if s == "" {
			return nil
		}
		if n, err := strconv.Atoi(s); err == nil && n >= floor {
			return nil
		}
		return errors.New(msg)
	}
}

var (
	validatePositiveInt    = atLeast(1, "enter a positive number")
	validateNonNegativeInt = atLeast(0, "enter a non-negative number")
)

// validateOptionalFigure accepts empty or any decimal number.
func validateOptionalFigure(s string) error {
	if s == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return errors.New("enter a number")
	}
	return nil
}

// wizard drives a builder.Builder from prompter answers.
type wizard struct {
	p Prompter
	b *builder.Builder
}

func (w *wizard) ask(title, description, def string, validate func(string) error) (string, error) {
	v := def
	if err := w.p.Input(title, description, &v, validate); err != nil {
		return "", err
	}
	return strings.TrimSpace(v), nil
}

func (w *wizard) askCount(title string) (int, error) {
	s, err := w.ask(title, "", "0", validateNonNegativeInt)
	if err != nil || s == "" {
		return 0, err
	}
	n, _ := strconv.Atoi(s)
	return n, nil
}

// run walks the count, names and structure steps. The builder is left in the
// structure step, ready for Complete.
func (w *wizard) run() error {
	count, err := w.ask("How many pillars?", fmt.Sprintf("1 to %d", builder.MaxPillarCount), "1", validatePositiveInt)
	if err != nil {
		return err
	}
	if err := w.b.SetCount(count); err != nil {
		return err
	}
	if err := w.b.ConfirmCount(); err != nil {
		return err
	}

	for i, def := range w.b.Names() {
		name, err := w.ask(fmt.Sprintf("Pillar %d name", i+1), "", def, nil)
		if err != nil {
			return err
		}
		if err := w.b.SetName(i, name); err != nil {
			return err
		}
	}
	if err := w.b.ConfirmNames(); err != nil {
		return err
	}

	for p, pillar := range w.b.Outline() {
		n, err := w.askCount(fmt.Sprintf("Sectors in %s", pillar.Name))
		if err != nil {
			return err
		}
		for s := 0; s < n; s++ {
			if err := w.sector(p, s); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *wizard) sector(p, s int) error {
	if _, err := w.b.AddSector(p); err != nil {
		return err
	}
	name, err := w.ask(fmt.Sprintf("Sector %d name", s+1), "", "", nil)
	if err != nil {
		return err
	}
	if err := w.b.RenameSector(p, s, name); err != nil {
		return err
	}
	n, err := w.askCount(fmt.Sprintf("Outcomes in %s", formatter.OrDash(name)))
	if err != nil {
		return err
	}
	for oc := 0; oc < n; oc++ {
		if _, err := w.b.AddOutcome(p, s); err != nil {
			return err
		}
		name, err := w.ask(fmt.Sprintf("Outcome %d name", oc+1), "", "", nil)
		if err != nil {
			return err
		}
		if err := w.b.RenameOutcome(p, s, oc, name); err != nil {
			return err
		}
		if err := w.outputs(p, s, oc, name); err != nil {
			return err
		}
	}
	return nil
}

func (w *wizard) outputs(p, s, oc int, outcome string) error {
	n, err := w.askCount(fmt.Sprintf("Outputs in %s", formatter.OrDash(outcome)))
	if err != nil {
		return err
	}
	for op := 0; op < n; op++ {
		if _, err := w.b.AddOutput(p, s, oc); err != nil {
			return err
		}
		name, err := w.ask(fmt.Sprintf("Output %d name", op+1), "", "", nil)
		if err != nil {
			return err
		}
		if err := w.b.RenameOutput(p, s, oc, op, name); err != nil {
			return err
		}
		k, err := w.askCount(fmt.Sprintf("Indicators in %s", formatter.OrDash(name)))
		if err != nil {
			return err
		}
		for i := 0; i < k; i++ {
			if err := w.indicator(p, s, oc, op, i); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *wizard) indicator(p, s, oc, op, i int) error {
	if _, err := w.b.AddIndicator(p, s, oc, op); err != nil {
		return err
	}

	fields := []struct {
		field domain.IndicatorField
		title string
	}{
		{domain.FieldName, fmt.Sprintf("Indicator %d name", i+1)},
		{domain.FieldBaseline, "Baseline"},
		{domain.FieldSourceOfData, "Source of data"},
	}
	for _, f := range fields {
		v, err := w.ask(f.title, "", "", nil)
		if err != nil {
			return err
		}
		if err := w.b.UpdateIndicatorField(p, s, oc, op, i, f.field, v); err != nil {
			return err
		}
	}

	for q := 1; q <= domain.QuarterCount; q++ {
		v, err := w.ask(fmt.Sprintf("Q%d target", q), "", "0", validateOptionalFigure)
		if err != nil {
			return err
		}
		if err := w.b.SetQuarterTarget(p, s, oc, op, i, q, domain.ParseFigure(v)); err != nil {
			return err
		}
	}
	return nil
}
