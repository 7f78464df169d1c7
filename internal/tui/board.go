package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/victordelrosal/epictaskquest/internal/engine"
	"github.com/victordelrosal/epictaskquest/internal/storage"
)

func RunBoard(ctx context.Context, svc *engine.Service, cfg *storage.ConfigRepo, out io.Writer) error {
	m := newBoardModel(ctx, svc, cfg)
	p := tea.NewProgram(m, tea.WithOutput(out))
	_, err := p.Run()
	return err
}
