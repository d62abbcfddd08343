package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

func main() {
	runName := flag.String("run", "", "run a named demo circuit and print its tally")
	listDemos := flag.Bool("list", false, "list the available demo circuits")
	shots := flag.Int("shots", 1024, "number of measurement shots")
	seed := flag.Int64("seed", 0, "random seed for measurements")
	file := flag.String("file", "", "QASM file to load into the editor")
	flag.Parse()

	logger := log.New(os.Stderr)

	if *listDemos {
		for _, name := range demoNames() {
			fmt.Printf("%-20s %s\n", name, demos[name].desc)
		}
		return
	}

	if *runName != "" {
		tally, err := runDemo(*runName, *shots, *seed)
		if err != nil {
			logger.Fatal("demo failed", "demo", *runName, "err", err)
		}
		fmt.Println(demos[*runName].desc)
		fmt.Print(tally.Render())
		return
	}

	source := bellQASM
	if *file != "" {
		data, err := os.ReadFile(*file)
		if err != nil {
			logger.Fatal("cannot read QASM file", "file", *file, "err", err)
		}
		source = strings.ReplaceAll(string(data), "\r\n", "\n")
	}

	p := tea.NewProgram(initialModel(source, *shots, *seed), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Fatal("TUI error", "err", err)
	}
}
