package cli

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/andrescamacho/shipforge-go/internal/infrastructure/config"
)

// resolveDesignID resolves the design to operate on
// Priority: --design flag > user config default
// Returns error only if no design can be identified from any source
func resolveDesignID(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	userConfigHandler, err := config.NewUserConfigHandler()
	if err != nil {
		return "", fmt.Errorf("no design specified and failed to load user config: %w", err)
	}

	userCfg, err := userConfigHandler.Load()
	if err != nil {
		return "", fmt.Errorf("no design specified and failed to load user config: %w", err)
	}

	if userCfg.DefaultDesignID != "" {
		return userCfg.DefaultDesignID, nil
	}

	return "", fmt.Errorf("no design specified: use --design, or set a default with 'shipforge design use <id>'")
}

// newTable returns the tabwriter every listing uses
func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

// formatNumber prints a float without trailing zeros; infinities print as "inf"
func formatNumber(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	if math.IsInf(v, -1) {
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatFixed prints a float rounded to two decimals; infinities print as "inf"
func formatFixed(v float64) string {
	if math.IsInf(v, 1) {
		return "inf"
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// formatPercent prints a 0..1 ratio as a percentage
func formatPercent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}
