package game

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/ncruces/zenity"

	"github.com/iburimskiy/protractor/internal/config"
	"github.com/iburimskiy/protractor/internal/protractor"
)

type menuAction int

const (
	actionNone menuAction = iota
	actionSpan
	actionStyle
	actionColor
	actionQuit
)

const (
	colorItem = "Change label color"
	quitItem  = "Quit"
)

func spanItem(s protractor.Span) string {
	return fmt.Sprintf("Switch to %d°", s.Toggle().Degrees())
}

func styleItem(s protractor.Style) string {
	return fmt.Sprintf("Switch to %s style", s.Toggle())
}

// menuItems lists the context menu entries for the current configuration.
func menuItems(cfg protractor.Config) []string {
	return []string{spanItem(cfg.Span), styleItem(cfg.Style), colorItem, quitItem}
}

func parseMenu(cfg protractor.Config, choice string) menuAction {
	switch choice {
	case spanItem(cfg.Span):
		return actionSpan
	case styleItem(cfg.Style):
		return actionStyle
	case colorItem:
		return actionColor
	case quitItem:
		return actionQuit
	}
	return actionNone
}

// showMenu opens the context menu. A dismissed dialog is actionNone.
func showMenu(cfg protractor.Config) (menuAction, error) {
	choice, err := zenity.List(
		"Protractor",
		menuItems(cfg),
		zenity.Title(config.WindowTitle),
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return actionNone, nil
		}
		return actionNone, err
	}
	return parseMenu(cfg, choice), nil
}

// pickColor asks for a new label color. ok is false when the dialog was
// dismissed.
func pickColor(current color.Color) (c color.Color, ok bool, err error) {
	c, err = zenity.SelectColor(
		zenity.Title("Label color"),
		zenity.Color(current),
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return c, true, nil
}
