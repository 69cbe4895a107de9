package cli

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/shipforge-go/internal/application/design"
	domainDesign "github.com/andrescamacho/shipforge-go/internal/domain/design"
)

// TreeFormatter renders a design as a layer tree: class at the root, layers below it and
// installed components as leaves
type TreeFormatter struct {
	useColors bool
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(useColors bool) *TreeFormatter {
	return &TreeFormatter{useColors: useColors}
}

// FormatDesign renders a design's layers and components
func (f *TreeFormatter) FormatDesign(resp *design.GetDesignStatsResponse) string {
	if resp == nil {
		return "(empty design)"
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "%s (%s) mass %s\n", resp.Design.Name, resp.Class, formatNumber(resp.Stats.Mass))

	for i, layer := range resp.Layers {
		lastLayer := i == len(resp.Layers)-1
		branch, childPrefix := "├── ", "│   "
		if lastLayer {
			branch, childPrefix = "└── ", "    "
		}

		fmt.Fprintf(&builder, "%s%s%s%s %s\n",
			branch,
			f.layerColor(layer),
			layer.Layer,
			f.colorReset(),
			f.budgetText(layer),
		)

		for j, c := range layer.Components {
			leaf := "├── "
			if j == len(layer.Components)-1 {
				leaf = "└── "
			}
			fmt.Fprintf(&builder, "%s%s%s %s (%s) mass %s%s\n",
				childPrefix,
				leaf,
				f.activeIcon(c.Active),
				c.Name,
				shortID(c.InstanceID),
				formatNumber(c.Mass),
				f.inactiveText(c.Active),
			)
		}
	}
	return builder.String()
}

// FormatVerdicts renders one line per rule with a status marker
func (f *TreeFormatter) FormatVerdicts(verdicts []domainDesign.Verdict) string {
	var builder strings.Builder
	for _, v := range verdicts {
		fmt.Fprintf(&builder, "%s%-7s%s %s: %s\n",
			f.statusColor(v.Status),
			v.Status,
			f.colorReset(),
			v.Rule,
			v.Message,
		)
	}
	return builder.String()
}

func (f *TreeFormatter) budgetText(layer design.LayerUsage) string {
	if layer.Budget == 0 {
		return fmt.Sprintf("[%s]", formatNumber(layer.Mass))
	}
	return fmt.Sprintf("[%s / %s]", formatNumber(layer.Mass), formatNumber(layer.Budget))
}

// activeIcon marks whether an instance's prerequisites are met
func (f *TreeFormatter) activeIcon(active bool) string {
	if active {
		return "[✓]"
	}
	return "[ ]"
}

func (f *TreeFormatter) inactiveText(active bool) string {
	if active {
		return ""
	}
	return " inactive"
}

// layerColor highlights layers over their mass budget in red
func (f *TreeFormatter) layerColor(layer design.LayerUsage) string {
	if !f.useColors {
		return ""
	}
	if layer.Budget > 0 && layer.Mass > layer.Budget {
		return "\033[31m" // Red
	}
	return "\033[36m" // Cyan
}

// statusColor returns ANSI color code for a verdict status
func (f *TreeFormatter) statusColor(status domainDesign.Status) string {
	if !f.useColors {
		return ""
	}

	switch status {
	case domainDesign.StatusPass:
		return "\033[32m" // Green
	case domainDesign.StatusWarning:
		return "\033[33m" // Yellow
	case domainDesign.StatusFail:
		return "\033[31m" // Red
	default:
		return ""
	}
}

// colorReset returns ANSI reset code
func (f *TreeFormatter) colorReset() string {
	if !f.useColors {
		return ""
	}
	return "\033[0m"
}

// shortID trims a uuid to its first block for display
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}
