package play

import (
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game"
	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
)

// Renderer styles console output for the writer it was created for.
// Writers that are not terminals get plain text.
type Renderer struct {
	titleStyle  lipgloss.Style
	turnStyle   lipgloss.Style
	aiStyle     lipgloss.Style
	resultStyle lipgloss.Style
	errorStyle  lipgloss.Style
}

// NewRenderer creates a renderer bound to w
func NewRenderer(w io.Writer) *Renderer {
	r := lipgloss.NewRenderer(w)
	return &Renderer{
		titleStyle: r.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true),
		turnStyle: r.NewStyle().
			Bold(true),
		aiStyle: r.NewStyle().
			Foreground(lipgloss.Color("#888888")),
		resultStyle: r.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			Bold(true),
		errorStyle: r.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F")),
	}
}

// Piles renders the header and one row per pile, surrounded by blank lines
func (r *Renderer) Piles(s core.State) string {
	return "\n" + r.titleStyle.Render("rows:") + "\n" + game.RenderPiles(s) + "\n"
}

func (r *Renderer) Turn(text string) string   { return r.turnStyle.Render(text) }
func (r *Renderer) AI(text string) string     { return r.aiStyle.Render(text) }
func (r *Renderer) Result(text string) string { return r.resultStyle.Render(text) }
func (r *Renderer) Error(text string) string  { return r.errorStyle.Render(text) }
func (r *Renderer) Title(text string) string  { return r.titleStyle.Render(text) }
