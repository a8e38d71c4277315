package logger

import (
	"fmt"
	"io"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fatih/color"
)

var (
	gray    = color.New(color.FgHiBlack)
	blue    = color.New(color.FgBlue)
	green   = color.New(color.FgGreen)
	yellow  = color.New(color.FgYellow)
	red     = color.New(color.FgRed)
	cyan    = color.New(color.FgCyan)
	purple  = color.New(color.FgMagenta)
	white   = color.New(color.FgWhite)
	debugOn atomic.Bool
)

// Output est la destination des logs (stdout par défaut, via color.Output)
var Output io.Writer = color.Output

// SetLevel active les logs de debug quand level vaut "debug"
func SetLevel(level string) {
	debugOn.Store(strings.EqualFold(strings.TrimSpace(level), "debug"))
}

func timestamp() string {
	return gray.Sprintf("[%s]", time.Now().Format("15:04:05"))
}

func write(c *color.Color, prefix, message string, args ...interface{}) {
	fmt.Fprintf(Output, "%s %s\n", timestamp(), c.Sprint(prefix+fmt.Sprintf(message, args...)))
}

// Info log une information générale (bleu)
func Info(message string, args ...interface{}) {
	write(blue, "", message, args...)
}

// Success log un succès (vert)
func Success(message string, args ...interface{}) {
	write(green, "✓ ", message, args...)
}

// Warning log un avertissement (jaune)
func Warning(message string, args ...interface{}) {
	write(yellow, "⚠ ", message, args...)
}

// Error log une erreur (rouge)
func Error(message string, args ...interface{}) {
	write(red, "✗ ", message, args...)
}

// Debug log un message de debug (gris), seulement si LOG_LEVEL=debug
func Debug(message string, args ...interface{}) {
	if !debugOn.Load() {
		return
	}
	write(gray, "DEBUG: ", message, args...)
}

// StatusColor choisit la couleur selon le code HTTP
func StatusColor(statusCode int) *color.Color {
	switch {
	case statusCode >= 200 && statusCode < 300:
		return green
	case statusCode >= 300 && statusCode < 400:
		return cyan
	case statusCode >= 400 && statusCode < 500:
		return yellow
	default:
		return red
	}
}

// FormatDuration formate une durée pour les lignes d'accès
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}

// Request log une requête HTTP avec durée
func Request(method, path string, statusCode int, duration time.Duration) {
	fmt.Fprintf(Output, "%s %s %s %s %s\n",
		timestamp(),
		purple.Sprintf("%-6s", method),
		white.Sprintf("%-50s", path),
		StatusColor(statusCode).Sprintf("[%d]", statusCode),
		gray.Sprintf("(%s)", FormatDuration(duration)),
	)
}
