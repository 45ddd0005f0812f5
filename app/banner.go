// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/common-nighthawk/go-figure"
)

// printStartupBanner prints the service's ASCII-art banner, a
// Service/Environment/Address summary, and (in development) the
// registered route table, to stdout.
func (a *Application) printStartupBanner(addr string) {
	myFigure := figure.NewFigure(a.cfg.serviceName, "", false)
	asciiLines := myFigure.Slicify()

	var gradientColors []string
	if a.cfg.environment == EnvironmentDevelopment {
		gradientColors = []string{"12", "14", "10", "11"}
	} else {
		gradientColors = []string{"10", "11"}
	}

	var styledArt strings.Builder
	for _, line := range asciiLines {
		if strings.TrimSpace(line) == "" {
			styledArt.WriteString("\n")
			continue
		}
		for i, char := range line {
			color := gradientColors[i%len(gradientColors)]
			style := lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
			styledArt.WriteString(style.Render(string(char)))
		}
		styledArt.WriteString("\n")
	}

	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(14).PaddingLeft(2)
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
	disabledStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	categoryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)

	displayAddr := addr
	if strings.HasPrefix(addr, ":") {
		displayAddr = "0.0.0.0" + addr
	}
	displayAddr = "http://" + displayAddr

	var out strings.Builder
	out.WriteString(categoryStyle.Render("Service") + "\n")
	out.WriteString(labelStyle.Render("Version:") + "  " + valueStyle.Render(a.cfg.serviceVersion) + "\n")
	out.WriteString(labelStyle.Render("Environment:") + "  " + valueStyle.Render(a.cfg.environment) + "\n")
	out.WriteString(labelStyle.Render("Address:") + "  " + valueStyle.Render(displayAddr) + "\n")

	out.WriteString("\n" + categoryStyle.Render("Observability") + "\n")
	if a.metrics != nil {
		out.WriteString(labelStyle.Render("Metrics:") + "  " + valueStyle.Render(displayAddr+"/metrics") + "\n")
	} else {
		out.WriteString(labelStyle.Render("Metrics:") + "  " + disabledStyle.Render("Disabled") + "\n")
	}
	if a.cfg.tracing != nil {
		out.WriteString(labelStyle.Render("Tracing:") + "  " + valueStyle.Render("Enabled") + "\n")
	} else {
		out.WriteString(labelStyle.Render("Tracing:") + "  " + disabledStyle.Render("Disabled") + "\n")
	}

	fmt.Fprintln(os.Stdout)
	fmt.Fprint(os.Stdout, styledArt.String())
	fmt.Fprintln(os.Stdout)
	fmt.Fprint(os.Stdout, out.String())

	if a.cfg.environment == EnvironmentDevelopment {
		entries := a.table.Entries()
		if len(entries) > 0 {
			fmt.Fprintln(os.Stdout)
			a.renderRoutesTable(os.Stdout)
		}
	}

	fmt.Fprintln(os.Stdout)
}

// renderRoutesTable prints a simple Method/Path/Resource table of the
// application's registered routes.
func (a *Application) renderRoutesTable(w *os.File) {
	entries := a.table.Entries()
	if len(entries) == 0 {
		return
	}

	methodStyles := map[string]lipgloss.Style{
		"GET":     lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		"POST":    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		"PUT":     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		"DELETE":  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		"PATCH":   lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
		"OPTIONS": lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Bold(true),
	}

	maxMethod, maxPath := len("Method"), len("Path")
	for _, e := range entries {
		if l := len(e.Method); l > maxMethod {
			maxMethod = l
		}
		if l := len(e.Pattern.Template); l > maxPath {
			maxPath = l
		}
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("230"))
	fmt.Fprintf(w, "  %s  %s  %s\n",
		headerStyle.Render(pad("Method", maxMethod)),
		headerStyle.Render(pad("Path", maxPath)),
		headerStyle.Render("Resource"))

	for _, e := range entries {
		method := e.Method
		if style, ok := methodStyles[method]; ok {
			method = style.Render(pad(e.Method, maxMethod))
		} else {
			method = pad(e.Method, maxMethod)
		}
		fmt.Fprintf(w, "  %s  %s  %s\n", method, pad(e.Pattern.Template, maxPath), e.Name)
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// PrintRoutes prints the application's registered routes to stdout,
// outside the startup sequence.
func (a *Application) PrintRoutes() {
	entries := a.table.Entries()
	if len(entries) == 0 {
		fmt.Println("No routes registered")
		return
	}
	a.renderRoutesTable(os.Stdout)
}
