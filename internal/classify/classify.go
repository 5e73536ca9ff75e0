// Package classify maps foreground windows to application categories.
// Classification is a chain of pure lookups over the window snapshot, so
// it is idempotent for a fixed window and never fails: anything the
// tables do not recognize is Generic.
package classify

import (
	"strings"

	"github.com/chaz8081/typesink/internal/window"
)

// Category is the closed set of application families the injection
// engine distinguishes. Every window resolves to exactly one category.
type Category string

const (
	Browser         Category = "browser"
	IDE             Category = "ide"
	OfficeSuite     Category = "office"
	Terminal        Category = "terminal"
	PlainTextEditor Category = "plaintext"
	Generic         Category = "generic"
)

// Categories lists every category, Generic last.
func Categories() []Category {
	return []Category{Browser, IDE, OfficeSuite, Terminal, PlainTextEditor, Generic}
}

// Classifier resolves a window snapshot to a Category. The lookup order
// is process name, then window class, then title heuristics.
type Classifier struct {
	processes     map[string]Category
	classPrefixes []classPattern
	titleSuffixes []titlePattern
}

type classPattern struct {
	prefix   string
	category Category
}

type titlePattern struct {
	suffix   string
	category Category
}

// New returns a Classifier loaded with the known-application tables.
func New() *Classifier {
	return &Classifier{
		processes: map[string]Category{
			// Browsers.
			"chrome":   Browser,
			"chromium": Browser,
			"firefox":  Browser,
			"msedge":   Browser,
			"brave":    Browser,
			"safari":   Browser,
			"opera":    Browser,
			"vivaldi":  Browser,

			// IDEs and heavyweight editors.
			"code":      IDE,
			"devenv":    IDE,
			"idea64":    IDE,
			"goland64":  IDE,
			"pycharm64": IDE,
			"clion64":   IDE,
			"rider64":   IDE,
			"studio64":  IDE,
			"zed":       IDE,

			// Office suites.
			"winword":     OfficeSuite,
			"excel":       OfficeSuite,
			"powerpnt":    OfficeSuite,
			"outlook":     OfficeSuite,
			"soffice":     OfficeSuite,
			"soffice.bin": OfficeSuite,

			// Terminal emulators.
			"windowsterminal":       Terminal,
			"cmd":                   Terminal,
			"powershell":            Terminal,
			"pwsh":                  Terminal,
			"conhost":               Terminal,
			"alacritty":             Terminal,
			"kitty":                 Terminal,
			"wezterm-gui":           Terminal,
			"gnome-terminal-server": Terminal,
			"konsole":               Terminal,
			"iterm2":                Terminal,
			"ghostty":               Terminal,

			// Plain-text editors.
			"notepad":   PlainTextEditor,
			"notepad++": PlainTextEditor,
			"gedit":     PlainTextEditor,
			"kate":      PlainTextEditor,
			"textedit":  PlainTextEditor,
			"mousepad":  PlainTextEditor,
		},
		classPrefixes: []classPattern{
			{"Chrome_WidgetWin", Browser},
			{"MozillaWindowClass", Browser},
			{"CASCADIA_HOSTING_WINDOW_CLASS", Terminal},
			{"ConsoleWindowClass", Terminal},
			{"mintty", Terminal},
			{"OpusApp", OfficeSuite},
			{"XLMAIN", OfficeSuite},
			{"PPTFrameClass", OfficeSuite},
			{"SunAwtFrame", IDE},
			{"Notepad", PlainTextEditor},
		},
		titleSuffixes: []titlePattern{
			{" - Google Chrome", Browser},
			{" - Mozilla Firefox", Browser},
			{" - Microsoft Edge", Browser},
			{" - Brave", Browser},
			{" - Visual Studio Code", IDE},
			{" - Visual Studio", IDE},
			{" - IntelliJ IDEA", IDE},
			{" - GoLand", IDE},
			{" - Word", OfficeSuite},
			{" - Excel", OfficeSuite},
			{" - PowerPoint", OfficeSuite},
			{" - LibreOffice Writer", OfficeSuite},
			{" - Notepad", PlainTextEditor},
		},
	}
}

// Classify resolves info to exactly one Category. Unmatched windows are
// Generic, never an error.
func (c *Classifier) Classify(info window.Info) Category {
	if cat, ok := c.processes[NormalizeProcess(info.ProcessName)]; ok {
		return cat
	}

	for _, p := range c.classPrefixes {
		if strings.HasPrefix(info.WindowClass, p.prefix) {
			return p.category
		}
	}

	for _, t := range c.titleSuffixes {
		if strings.HasSuffix(info.Title, t.suffix) {
			return t.category
		}
	}

	return Generic
}

// NormalizeProcess lowercases a process name and strips a trailing
// executable extension, so "Chrome.EXE" and "chrome" match the same row.
func NormalizeProcess(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimSuffix(name, ".exe")
	return name
}
