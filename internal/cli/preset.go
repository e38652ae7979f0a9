package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hingecut/pkg/config"
)

const defaultPresetFile = "hingecut.toml"

// presetCommand creates the preset management command.
func (c *CLI) presetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Create and inspect TOML parameter presets",
	}

	cmd.AddCommand(c.presetInitCommand())
	cmd.AddCommand(c.presetShowCommand())

	return cmd
}

// presetInitCommand creates the "preset init" subcommand.
func (c *CLI) presetInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write the default preset (use - for stdout)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultPresetFile
			if len(args) == 1 {
				path = args[0]
			}
			if path == "-" {
				return config.Write(cmd.OutOrStdout(), config.Default())
			}
			return writePreset(path, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func writePreset(path string, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
	if force {
		flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		return err
	}
	if err := config.Write(f, config.Default()); err != nil {
		f.Close()
		return fmt.Errorf("write preset: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	printSuccess("Wrote preset")
	printFile(path)
	printNextStep("Generate from it", fmt.Sprintf("%s generate -c %s", appName, path))
	return nil
}

// presetShowCommand creates the "preset show" subcommand.
func (c *CLI) presetShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Print the parameters a preset resolves to",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := config.Default()
			if len(args) == 1 {
				loaded, err := config.Load(args[0])
				if err != nil {
					return err
				}
				p = loaded
			}
			if _, err := p.Params(); err != nil {
				return err
			}
			return renderPresetTable(cmd.OutOrStdout(), p)
		},
	}
}

// renderPresetTable prints the preset as a bordered key/value table.
func renderPresetTable(w io.Writer, p config.Preset) error {
	cfg := p.Config().WithDefaults()
	rows := [][]string{
		{"panel", "width", fmt.Sprintf("%g mm", p.Panel.Width)},
		{"", "height", fmt.Sprintf("%g mm", p.Panel.Height)},
		{"pattern", "variant", p.Pattern.Variant},
		{"", "cut_length", fmt.Sprintf("%g mm", p.Pattern.CutLength)},
		{"", "gap", fmt.Sprintf("%g mm", p.Pattern.Gap)},
		{"", "separation", fmt.Sprintf("%g mm", p.Pattern.Separation)},
		{"", "cut_width", fmt.Sprintf("%g mm", p.Pattern.CutWidth)},
		{"", "frame", fmt.Sprint(p.Pattern.Frame)},
		{"limits", "epsilon", fmt.Sprintf("%g", cfg.Epsilon)},
		{"", "safe_margin", fmt.Sprintf("%g mm", cfg.SafeMargin)},
		{"", "min_pitch", fmt.Sprintf("%g mm", cfg.MinPitch)},
		{"", "max_segments", fmt.Sprint(cfg.MaxSegments)},
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Section", "Key", "Value").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return headerStyle
			case col == 0:
				return lipgloss.NewStyle().Foreground(colorCyan).Padding(0, 1)
			case col == 2:
				return lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
			}
			return lipgloss.NewStyle().Foreground(colorGray).Padding(0, 1)
		})

	_, err := fmt.Fprintln(w, t.Render())
	return err
}
