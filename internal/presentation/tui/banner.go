package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the Varion ASCII banner with a warm gradient.
func PrintBanner() {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{` __     __         _             `, "#f59e0b"},
		{` \ \   / /_ _ _ __(_) ___  _ __  `, "#f97316"},
		{`  \ \ / / _' | '__| |/ _ \| '_ \ `, "#ef4444"},
		{`   \ V / (_| | |  | | (_) | | | |`, "#ec4899"},
		{`    \_/ \__,_|_|  |_|\___/|_| |_|`, "#a855f7"},
	}

	fmt.Println()
	for _, l := range lines {
		fmt.Println(termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Println()
}
