package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"
)

type Config struct {
	Addr    string `envconfig:"TAIL_ADDR" default:"localhost:8080"`
	MatchID int64  `envconfig:"TAIL_MATCH_ID" required:"true"`
	Colours bool   `envconfig:"TAIL_COLOURS" default:"true"`
}

type message struct {
	Type    string          `json:"type"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type profile struct {
	DisplayName string `json:"display_name"`
}

type frame struct {
	ID           int64    `json:"id"`
	Number       int      `json:"frame_number"`
	Winner       *profile `json:"winner"`
	BallsOnTable []string `json:"balls_on_table"`
	Events       []struct {
		Type string `json:"eventType"`
	} `json:"events"`
}

type matchView struct {
	ID          int64   `json:"id"`
	Player1     profile `json:"player1"`
	Player2     profile `json:"player2"`
	FramesToWin int     `json:"frames_to_win"`
	Player1Wins int     `json:"player1_wins"`
	Player2Wins int     `json:"player2_wins"`
	Frames      []frame `json:"match_frames"`
}

// Terminal spectator: prints the match state, then every broadcast as it arrives.
func main() {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		log.Fatalf("Config error: %v", err)
	}
	if !config.Colours {
		color.Disable()
	}

	url := fmt.Sprintf("ws://%s/ws/match/%d/", config.Addr, config.MatchID)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		log.Fatalf("Impossible to connect to %s: %v", url, err)
	}
	defer conn.Close()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	go func() {
		<-interrupt
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}()

	for {
		var msg message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure) {
				log.Printf("Connection lost: %v", err)
			}
			return
		}
		render(msg)
	}
}

func render(msg message) {
	switch msg.Type {
	case "match_state", "match_update":
		var m matchView
		if err := json.Unmarshal(msg.Data, &m); err != nil {
			color.Red.Printf("Unreadable %s: %v\n", msg.Type, err)
			return
		}
		renderMatch(m)
	case "error":
		color.Red.Printf("Error: %s\n", msg.Message)
	default:
		color.Cyan.Printf("%-22s %s\n", msg.Type, compact(msg.Data))
	}
}

func renderMatch(m matchView) {
	color.Green.Printf("\n%s %d - %d %s (best of %d)\n",
		m.Player1.DisplayName, m.Player1Wins, m.Player2Wins, m.Player2.DisplayName, m.FramesToWin)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Frame", "Winner", "Events", "Balls on table"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	for _, f := range m.Frames {
		winner := "-"
		if f.Winner != nil {
			winner = f.Winner.DisplayName
		}
		table.Append([]string{
			strconv.Itoa(f.Number),
			winner,
			strconv.Itoa(len(f.Events)),
			strings.Join(f.BallsOnTable, " "),
		})
	}
	table.Render()
}

func compact(raw json.RawMessage) string {
	s := string(raw)
	if len(s) > 120 {
		return s[:117] + "..."
	}
	return s
}
