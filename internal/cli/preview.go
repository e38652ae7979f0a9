package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hingecut/pkg/errors"
	"github.com/matzehuels/hingecut/pkg/hinge"
	"github.com/matzehuels/hingecut/pkg/render/term"
)

// previewCommand creates the interactive preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var flags patternFlags

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview a pattern in the terminal and tune it live",
		Long: `Preview a pattern in the terminal and tune it live.

Lowercase keys decrease a parameter, uppercase keys increase it:

  l/L  cut length      g/G  gap
  s/S  separation      w/W  cut width
  v    toggle variant  f    toggle frame
  r    reset           enter  accept and print the generate command
  q    quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			panel, params, cfg, err := flags.inputs(cmd)
			if err != nil {
				return err
			}

			p := tea.NewProgram(newPreviewModel(panel, params, cfg), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return err
			}

			fm, ok := final.(previewModel)
			if !ok || !fm.accepted {
				return nil
			}
			if fm.err != nil {
				printWarning("Accepted parameters do not validate: %s", errors.UserMessage(fm.err))
			} else {
				printSuccess("%d segments", fm.pattern.Stats.Segments)
			}
			printNextStep("Generate with", fm.commandLine())
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// =============================================================================
// previewModel - Live pattern preview
// =============================================================================

const (
	defaultPreviewCols = 80
	defaultPreviewRows = 24

	// chromeRows is the number of terminal rows used around the grid.
	chromeRows = 6

	lengthStep = 0.5
	fineStep   = 0.1
)

var (
	previewGridStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	previewKeyStyle   = lipgloss.NewStyle().Foreground(colorGray)
	previewValueStyle = lipgloss.NewStyle().Foreground(colorWhite).Bold(true)
	previewHelpStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

// previewModel is the bubbletea model behind the preview command.
type previewModel struct {
	panel   hinge.Panel
	params  hinge.Params
	cfg     hinge.Config
	initial hinge.Params

	cols, rows int

	pattern  *hinge.Pattern
	err      error
	accepted bool
}

func newPreviewModel(panel hinge.Panel, params hinge.Params, cfg hinge.Config) previewModel {
	m := previewModel{
		panel:   panel,
		params:  params,
		cfg:     cfg,
		initial: params,
		cols:    defaultPreviewCols,
		rows:    defaultPreviewRows,
	}
	m.regenerate()
	return m
}

func (m *previewModel) regenerate() {
	m.pattern, m.err = hinge.Generate(m.panel, m.params, m.cfg)
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			m.accepted = true
			return m, tea.Quit
		case "l":
			m.params.CutLength = nudge(m.params.CutLength, -lengthStep)
		case "L":
			m.params.CutLength = nudge(m.params.CutLength, lengthStep)
		case "g":
			m.params.Gap = nudge(m.params.Gap, -lengthStep)
		case "G":
			m.params.Gap = nudge(m.params.Gap, lengthStep)
		case "s":
			m.params.Separation = nudge(m.params.Separation, -fineStep)
		case "S":
			m.params.Separation = nudge(m.params.Separation, fineStep)
		case "w":
			m.params.CutWidth = nudge(m.params.CutWidth, -fineStep)
		case "W":
			m.params.CutWidth = nudge(m.params.CutWidth, fineStep)
		case "v":
			if m.params.Variant == hinge.Chevron {
				m.params.Variant = hinge.Straight
			} else {
				m.params.Variant = hinge.Chevron
			}
		case "f":
			m.params.IncludeFrame = !m.params.IncludeFrame
		case "r":
			m.params = m.initial
		default:
			return m, nil
		}
		m.regenerate()
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s · %g x %g mm", appName, m.panel.Width, m.panel.Height)))
	b.WriteString("\n")
	b.WriteString(m.paramsLine())
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + errors.UserMessage(m.err))
		b.WriteString("\n")
	} else {
		grid := term.Rasterize(m.pattern, m.cols, m.rows-chromeRows)
		b.WriteString(previewGridStyle.Render(strings.Join(grid, "\n")))
		b.WriteString("\n")
		b.WriteString(StyleDim.Render(fmt.Sprintf("%d columns · %d segments · %s of cut",
			m.pattern.Stats.Columns, m.pattern.Stats.Segments, formatLength(m.pattern.Stats.CutLength))))
		b.WriteString("\n")
	}

	b.WriteString(previewHelpStyle.Render("l/L length · g/G gap · s/S separation · w/W cut width · v variant · f frame · r reset · enter accept · q quit"))
	return b.String()
}

func (m previewModel) paramsLine() string {
	field := func(k string, v any) string {
		return previewKeyStyle.Render(k+" ") + previewValueStyle.Render(fmt.Sprint(v))
	}
	parts := []string{
		field("variant", m.params.Variant),
		field("length", m.params.CutLength),
		field("gap", m.params.Gap),
		field("separation", m.params.Separation),
	}
	if m.params.Variant == hinge.Chevron {
		parts = append(parts, field("cut width", m.params.CutWidth))
	}
	parts = append(parts, field("frame", m.params.IncludeFrame))
	return strings.Join(parts, StyleDim.Render("  "))
}

// commandLine returns the generate invocation reproducing the current
// parameters.
func (m previewModel) commandLine() string {
	args := []string{
		appName, "generate",
		fmt.Sprintf("--width %g", m.panel.Width),
		fmt.Sprintf("--height %g", m.panel.Height),
		fmt.Sprintf("--cut-length %g", m.params.CutLength),
		fmt.Sprintf("--gap %g", m.params.Gap),
		fmt.Sprintf("--separation %g", m.params.Separation),
	}
	if m.params.Variant == hinge.Chevron {
		args = append(args, "--variant chevron", fmt.Sprintf("--cut-width %g", m.params.CutWidth))
	}
	if !m.params.IncludeFrame {
		args = append(args, "--frame=false")
	}
	return strings.Join(args, " ")
}

// nudge adds d to v, rounds to a hundredth and floors at zero.
func nudge(v, d float64) float64 {
	return math.Max(0, math.Round((v+d)*100)/100)
}
