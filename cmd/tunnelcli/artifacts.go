package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"tunnelcli/internal/dataprocessing"
	"tunnelcli/internal/figure"
	"tunnelcli/internal/files"
	"tunnelcli/internal/reduction"
)

// writeCpPlot renders the Cp distribution of res as <stem>_cp.<format>
func writeCpPlot(manager *files.Manager, res *reduction.Result, chord float64, format string) (string, error) {
	p, err := figure.CpFigure(res, chord)
	if err != nil {
		return "", err
	}
	data, err := figure.Render(p, format)
	if err != nil {
		return "", err
	}
	stem := strings.TrimSuffix(filepath.Base(res.Source), filepath.Ext(res.Source))
	return manager.WriteFile(fmt.Sprintf("%s_cp.%s", stem, format), data)
}

// writeLiftPlot renders the lift curve as lift_curve.<format>
func writeLiftPlot(manager *files.Manager, curve dataprocessing.LiftCurve, format string) (string, error) {
	p, err := figure.LiftCurveFigure(curve)
	if err != nil {
		return "", err
	}
	data, err := figure.Render(p, format)
	if err != nil {
		return "", err
	}
	return manager.WriteFile("lift_curve."+format, data)
}
