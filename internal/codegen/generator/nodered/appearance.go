package nodered

import (
	"embed"
	"fmt"
	"strings"

	"github.com/s2ws/s2gen/internal/codegen/controltype"
)

// Category is the palette category every generated node registers under.
const Category = "S2 Protocol"

type appearance struct {
	color string
	icon  string
}

var appearances = map[controltype.ControlType]appearance{
	controltype.OMBC: {color: "#87A980", icon: "fa-random"},
	controltype.PEBC: {color: "#A9A980", icon: "fa-bolt"},
	controltype.PPBC: {color: "#A98087", icon: "fa-area-chart"},
	controltype.FRBC: {color: "#80A987", icon: "fa-battery-half"},
	controltype.DDBC: {color: "#8780A9", icon: "fa-tachometer"},
}

//go:embed help/*.html
var helpFS embed.FS

// helpText returns the long-form prose and the property glossary of ct.
func helpText(ct controltype.ControlType) (prose, glossary string, err error) {
	read := func(name string) (string, error) {
		data, err := helpFS.ReadFile("help/" + name)
		if err != nil {
			return "", fmt.Errorf("%s help: %w", ct, err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
	if prose, err = read(ct.Lower() + ".html"); err != nil {
		return "", "", err
	}
	if glossary, err = read(ct.Lower() + "_properties.html"); err != nil {
		return "", "", err
	}
	return prose, glossary, nil
}
