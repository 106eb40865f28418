// Package menu implements numbered, line-based menus with a dispatch table.
package menu

import (
	"errors"
	"fmt"
	"strconv"

	"foresight/internal/logger"
)

type Result int

const (
	Continue Result = iota
	Exit
)

type Item struct {
	Label  func() string
	Action func() Result
}

// Static is a convenience for items whose label never changes.
func Static(label string, action func() Result) Item {
	return Item{Label: func() string { return label }, Action: action}
}

// Menu is a titled list of items. Framed menus draw the dashed banner used
// by the top-level menu; others use a section header.
type Menu struct {
	Title  string
	Framed bool
	Items  []Item
}

const rule = "---------------------------------------"

func (c *Console) show(m *Menu) {
	if m.Framed {
		c.Println(c.paint(ansiCyan, "\n"+rule))
		c.Println(c.paint(ansiGreen, m.Title))
	} else {
		c.Section(m.Title)
	}
	for i, item := range m.Items {
		c.Printf("%s%s\n", c.paint(ansiYellow, fmt.Sprintf("%d) ", i+1)), item.Label())
	}
	if m.Framed {
		c.Println(c.paint(ansiCyan, rule))
	}
}

// Select parses a 1-based choice for a menu of n items.
func Select(choice string, n int) (int, bool) {
	v, err := strconv.Atoi(choice)
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v - 1, true
}

// Run displays m and dispatches choices until an action returns Exit.
// It returns nil on Exit and ErrInputClosed when input ends first.
func (c *Console) Run(m *Menu, log logger.Logger) error {
	for {
		c.show(m)
		choice, err := c.ReadLine("Enter your choice: ")
		if err != nil {
			return err
		}

		idx, ok := Select(choice, len(m.Items))
		if !ok {
			c.Error("Invalid choice. Please enter a number 1-%d.", len(m.Items))
			if log != nil {
				log.Debug("Menu", "invalid selection", map[string]interface{}{"menu": m.Title, "input": choice})
			}
			continue
		}

		if log != nil {
			log.Debug("Menu", "selection", map[string]interface{}{"menu": m.Title, "choice": idx + 1})
		}
		if m.Items[idx].Action() == Exit {
			return nil
		}
	}
}

// IsClosed reports whether err means the input stream ended.
func IsClosed(err error) bool {
	return errors.Is(err, ErrInputClosed)
}
