package services

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"statshell/internal/logger"
	"statshell/pkg/stattypes"
)

// HelpService renders command help as markdown using Glamour. In test mode
// rendering falls back to plain text so output assertions stay stable.
type HelpService struct {
	initialized bool
	renderer    *glamour.TermRenderer
	plain       bool
}

// NewHelpService creates a new HelpService instance.
func NewHelpService() *HelpService {
	return &HelpService{}
}

// NewPlainHelpService creates a HelpService that skips ANSI rendering.
func NewPlainHelpService() *HelpService {
	return &HelpService{plain: true}
}

// Name returns the service name "help" for registration.
func (h *HelpService) Name() string {
	return "help"
}

// Initialize sets up the markdown renderer.
func (h *HelpService) Initialize() error {
	if !h.plain {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)
		if err != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		h.renderer = renderer
	}
	h.initialized = true
	logger.Debug("HelpService initialized")
	return nil
}

// RenderCommand renders the help page for a single command.
func (h *HelpService) RenderCommand(info stattypes.HelpInfo) (string, error) {
	if !h.initialized {
		return "", fmt.Errorf("help service not initialized")
	}
	return h.render(h.commandMarkdown(info))
}

// RenderIndex renders the overview page listing every registered command.
func (h *HelpService) RenderIndex(infos []stattypes.HelpInfo) (string, error) {
	if !h.initialized {
		return "", fmt.Errorf("help service not initialized")
	}
	var sb strings.Builder
	sb.WriteString("# Commands\n\n")
	sb.WriteString("Type `help <command>` for details on a command.\n\n")
	for _, info := range infos {
		sb.WriteString(fmt.Sprintf("- **%s** — %s\n", info.Command, info.Description))
	}
	return h.render(sb.String())
}

func (h *HelpService) commandMarkdown(info stattypes.HelpInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", info.Command))
	sb.WriteString(info.Description + "\n\n")
	if info.Usage != "" {
		sb.WriteString("## Usage\n\n")
		sb.WriteString("```\n" + info.Usage + "\n```\n\n")
	}
	if len(info.Options) > 0 {
		sb.WriteString("## Options\n\n")
		for _, opt := range info.Options {
			sb.WriteString(fmt.Sprintf("- `%s` — %s\n", opt.Name, opt.Description))
		}
		sb.WriteString("\n")
	}
	if len(info.Examples) > 0 {
		sb.WriteString("## Examples\n\n")
		for _, ex := range info.Examples {
			sb.WriteString("```\n" + ex.Command + "\n```\n")
			if ex.Description != "" {
				sb.WriteString(ex.Description + "\n")
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func (h *HelpService) render(markdown string) (string, error) {
	if h.plain || h.renderer == nil {
		return markdown, nil
	}
	rendered, err := h.renderer.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return rendered, nil
}
