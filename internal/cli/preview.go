package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	apperrors "github.com/matzehuels/codediagram/pkg/errors"
	"github.com/matzehuels/codediagram/pkg/io"
	"github.com/matzehuels/codediagram/pkg/pipeline"
	"github.com/matzehuels/codediagram/pkg/render"
	"github.com/matzehuels/codediagram/pkg/structure"
)

// previewChrome is the number of screen rows used by the header and footer.
const previewChrome = 4

var (
	previewStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	previewErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

func (c *CLI) previewCommand() *cobra.Command {
	var (
		style              string
		includeControlFlow bool
		noCache            bool
	)

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Browse a structure diagram in the terminal",
		Long: `Preview renders a Python file (or an exported .json tree) in a scrollable
terminal view.

Keys: tab cycles the style, c toggles control flow, ↑/↓ or j/k scroll,
q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			start := cfg.ParsedStyle()
			if style != "" {
				if start, err = render.ParseStyle(style); err != nil {
					return err
				}
			}
			if !cmd.Flags().Changed("include-control-flow") {
				includeControlFlow = cfg.IncludeControlFlow
			}

			input := args[0]
			data, err := readInput(input)
			if err != nil {
				return err
			}

			runner := c.newRunner(noCache || !cfg.CacheEnabled())
			defer runner.Cache.Close()

			m, err := newPreviewModel(cmd.Context(), runner, input, data, start, includeControlFlow, cfg.LabelWidth)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&style, "style", "", "initial style: "+strings.Join(render.StyleNames(), ", "))
	cmd.Flags().BoolVar(&includeControlFlow, "include-control-flow", false, "start with control flow shown")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the diagram cache")

	return cmd
}

// =============================================================================
// previewModel - Interactive diagram viewer
// =============================================================================

// previewModel is the bubbletea model behind the preview command.
type previewModel struct {
	ctx    context.Context
	runner *pipeline.Runner

	name       string
	source     []byte
	tree       *structure.Node // set for .json input, which cannot be re-extracted
	labelWidth int

	style       render.Style
	controlFlow bool

	lines    []string
	elements int
	cached   bool
	err      error

	offset int
	height int
}

func newPreviewModel(ctx context.Context, runner *pipeline.Runner, input string, data []byte,
	style render.Style, controlFlow bool, labelWidth int) (previewModel, error) {
	m := previewModel{
		ctx:         ctx,
		runner:      runner,
		name:        filepath.Base(input),
		source:      data,
		labelWidth:  labelWidth,
		style:       style,
		controlFlow: controlFlow,
		height:      20,
	}
	if isTreeInput(input) {
		tree, err := io.ReadJSON(bytes.NewReader(data))
		if err != nil {
			return m, fmt.Errorf("load tree %s: %w", input, err)
		}
		m.tree = tree
	}
	return m.refresh(), nil
}

// refresh re-renders the diagram for the current style and control-flow
// setting. A parse error is kept and shown instead of the diagram.
func (m previewModel) refresh() previewModel {
	opts := pipeline.Options{
		Styles:             []render.Style{m.style},
		IncludeControlFlow: m.controlFlow,
		ModuleName:         m.name,
		LabelWidth:         m.labelWidth,
	}

	var res *pipeline.Result
	var err error
	if m.tree != nil {
		res, err = m.runner.ExecuteTree(m.ctx, m.tree, opts)
	} else {
		res, err = m.runner.Execute(m.ctx, m.source, opts)
	}
	if err != nil {
		m.err, m.lines, m.elements, m.cached = err, nil, 0, false
		return m
	}

	m.err = nil
	m.lines = strings.Split(strings.TrimRight(res.Output, "\n"), "\n")
	m.elements = res.Stats.Elements
	m.cached = res.CacheHit
	m.offset = m.clamp(m.offset)
	return m
}

func (m previewModel) clamp(offset int) int {
	if last := len(m.lines) - m.height; offset > last {
		offset = last
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.style = m.style.Next()
			m.offset = 0
			return m.refresh(), nil
		case "c":
			m.controlFlow = !m.controlFlow
			return m.refresh(), nil
		case "up", "k":
			m.offset = m.clamp(m.offset - 1)
		case "down", "j":
			m.offset = m.clamp(m.offset + 1)
		case "pgup":
			m.offset = m.clamp(m.offset - m.height)
		case "pgdown", " ":
			m.offset = m.clamp(m.offset + m.height)
		case "home", "g":
			m.offset = 0
		case "end", "G":
			m.offset = m.clamp(len(m.lines))
		}
	case tea.WindowSizeMsg:
		m.height = msg.Height - previewChrome
		if m.height < 5 {
			m.height = 5
		}
		m.offset = m.clamp(m.offset)
	}
	return m, nil
}

func (m previewModel) View() string {
	var b strings.Builder

	flow := "off"
	if m.controlFlow {
		flow = "on"
	}
	b.WriteString(StyleTitle.Render(m.name))
	b.WriteString("  ")
	b.WriteString(previewStatusStyle.Render(fmt.Sprintf("style: %s · control flow: %s", m.style, flow)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(previewErrorStyle.Render(iconError + " " + apperrors.UserMessage(m.err)))
		b.WriteString("\n")
	} else {
		end := m.offset + m.height
		if end > len(m.lines) {
			end = len(m.lines)
		}
		for _, l := range m.lines[m.offset:end] {
			b.WriteString(l)
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	status := iconFresh
	if m.cached {
		status = iconCached
	}
	b.WriteString(StyleDim.Render(fmt.Sprintf("tab style  c control flow  ↑/↓ scroll  q quit  [%d elements · %s · %d/%d]",
		m.elements, status, m.offset+1, len(m.lines))))

	return b.String()
}
