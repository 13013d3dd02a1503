package main

import (
	"flag"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"concierge/internal/tui"
)

func main() {
	serverURL := flag.String("server", "http://localhost:5001", "Base URL of the concierge server")
	bookingNumber := flag.String("booking", "", "Booking number to personalize answers (optional)")
	flag.Parse()

	client := tui.NewClient(*serverURL, *bookingNumber)
	m := tui.New(client)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal(err)
	}
}
