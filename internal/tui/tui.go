// Package tui is the interactive task list.
package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"todo/internal/service"
)

// Run shows the task list until the user quits or ctx is cancelled.
func Run(ctx context.Context, svc service.Service) error {
	logger := log.FromContext(ctx)
	logger.Debug("starting ui")

	p := tea.NewProgram(newAppModel(ctx, svc), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
