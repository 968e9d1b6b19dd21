package dataset

import (
	"fmt"
	"maps"
	"os"

	"gopkg.in/yaml.v3"
)

const FallbackColor = "gray"

var defaultTeamColors = map[string]string{
	"Mercedes":        "#00D2BE",
	"Red Bull Racing": "#1E41FF",
	"Ferrari":         "#DC0000",
	"McLaren":         "#FF8700",
	"Racing Point":    "#F363B9",
	"Renault":         "#FCD205",
	"Williams":        "#005AFF",
	"AlphaTauri":      "#2B4562",
	"Alfa Romeo":      "#900000",
	"Haas":            "#9E9E9E",
}

// TeamColors maps team names to display colors
type TeamColors map[string]string

func DefaultTeamColors() TeamColors {
	return maps.Clone(defaultTeamColors)
}

// Color returns the color of the team or FallbackColor for unknown teams
func (tc TeamColors) Color(team string) string {
	if c, ok := tc[team]; ok {
		return c
	}
	return FallbackColor
}

// LoadTeamColors reads a yaml mapping of team name to color.
// Entries are merged over the default colors.
//
//	Mercedes: "#00D2BE"
//	Ferrari: "#DC0000"
func LoadTeamColors(path string) (TeamColors, error) {
	ret := DefaultTeamColors()
	if path == "" {
		return ret, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	custom := map[string]string{}
	if err := yaml.Unmarshal(data, &custom); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	maps.Copy(ret, custom)
	return ret, nil
}
