// Command capture referees capture-the-flag pacman matches between two
// teams of agents, records replays, and archives per-turn match data.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nrharido/pacman/game"
	"github.com/nrharido/pacman/layout"
	"github.com/nrharido/pacman/replay"
	"github.com/nrharido/pacman/rules"
	"github.com/nrharido/pacman/runner"
)

type matchUpdate struct {
	Index   int
	Score   int
	Winner  string
	Moves   int
	Crashed bool
}

type model struct {
	played    int
	total     int
	redWins   int
	blueWins  int
	ties      int
	scoreSum  int
	startTime time.Time
	recent    []string
	updates   chan matchUpdate
}

func initialModel(total int, updates chan matchUpdate) model {
	return model{total: total, startTime: time.Now(), updates: updates}
}

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func waitForUpdate(updates chan matchUpdate) tea.Cmd {
	return func() tea.Msg {
		return <-updates
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), tickCmd())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tickMsg:
		return m, tickCmd()
	case matchUpdate:
		m.played++
		m.scoreSum += msg.Score
		switch msg.Winner {
		case "Red":
			m.redWins++
		case "Blue":
			m.blueWins++
		default:
			m.ties++
		}
		logMsg := fmt.Sprintf("Game %d: %s wins, score %d, %d moves", msg.Index+1, msg.Winner, msg.Score, msg.Moves)
		if msg.Winner == "Tie" {
			logMsg = fmt.Sprintf("Game %d: tie, %d moves", msg.Index+1, msg.Moves)
		}
		m.recent = append([]string{logMsg}, m.recent...)
		if len(m.recent) > 10 {
			m.recent = m.recent[:10]
		}
		if m.played >= m.total {
			return m, tea.Quit
		}
		return m, waitForUpdate(m.updates)
	}
	return m, nil
}

func (m model) View() string {
	duration := time.Since(m.startTime)

	s := fmt.Sprintf("Games Played: %d/%d\n", m.played, m.total)
	s += fmt.Sprintf("Red Wins:     %d\n", m.redWins)
	s += fmt.Sprintf("Blue Wins:    %d\n", m.blueWins)
	s += fmt.Sprintf("Ties:         %d\n", m.ties)
	if m.played > 0 {
		s += fmt.Sprintf("Avg Score:    %.2f\n", float64(m.scoreSum)/float64(m.played))
	}
	s += fmt.Sprintf("Duration:     %s\n\n", duration.Round(time.Second))

	s += "Recent Games:\n"
	for _, g := range m.recent {
		s += g + "\n"
	}

	s += "\nPress q to quit.\n"
	return s
}

func main() {
	layoutPath := flag.String("layout", "", "Layout file to play on (default: embedded defaultCapture)")
	matchLength := flag.Int("time", 1200, "Move limit of a game")
	numGames := flag.Int("num-games", 1, "Number of games to play")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	fixRandomSeed := flag.Bool("fix-random-seed", false, "Fix the random seed to always play the same game")
	recordPath := flag.String("record", "", "Write the last game's history to the named file")
	replayPath := flag.String("replay", "", "Replay a recorded game file and exit")
	archiveDir := flag.String("archive-dir", "", "Write parquet turn archives to this directory")
	redName := flag.String("red", "RedTeam", "Red team name")
	blueName := flag.String("blue", "BlueTeam", "Blue team name")
	quiet := flag.Bool("quiet", false, "Minimal output")
	verbose := flag.Bool("verbose", false, "Print the board after every replayed step")
	flag.Parse()

	if *replayPath != "" {
		replayGame(*replayPath, *verbose)
		return
	}

	lay := layout.Default()
	if *layoutPath != "" {
		var err error
		lay, err = layout.Load(*layoutPath)
		if err != nil {
			log.Fatalf("Failed to load layout: %v", err)
		}
	}

	baseSeed := *seed
	if *fixRandomSeed {
		baseSeed = rules.FixedSeed
	} else if baseSeed == 0 {
		baseSeed = time.Now().UnixNano()
	}

	var archive *replay.ArchiveWriter
	if *archiveDir != "" {
		var err error
		archive, err = replay.NewArchiveWriter(*archiveDir)
		if err != nil {
			log.Fatalf("Failed to open archive: %v", err)
		}
	}

	useTUI := *numGames > 1 && !*quiet
	if useTUI {
		// Keep log output from corrupting the TUI.
		log.SetOutput(io.Discard)
	}

	updates := make(chan matchUpdate, *numGames)
	scores := make([]int, 0, *numGames)

	play := func() {
		for i := 0; i < *numGames; i++ {
			gameSeed := baseSeed + int64(i)*1000003
			rng := rand.New(rand.NewSource(gameSeed))
			agents := runner.NewRandomTeams(len(lay.AgentPositions), gameSeed)

			g, err := runner.New(lay, agents, *matchLength, rng)
			if err != nil {
				log.Fatalf("Failed to start game: %v", err)
			}
			if *quiet || useTUI {
				g.Rules.Quiet = true
			}
			if archive != nil {
				g.OnStep = func(state *game.GameState, mv replay.Move) {
					row := replay.TurnRow{
						MatchID:    g.MatchID,
						Turn:       int32(len(g.MoveHistory)),
						AgentIndex: int32(mv.AgentIndex),
						Action:     mv.Action.String(),
						Score:      int32(state.Score()),
						RedFood:    int32(state.RedFood().Count()),
						BlueFood:   int32(state.BlueFood().Count()),
						TimeLeft:   int32(state.TimeLeft()),
					}
					if err := archive.WriteRows([]replay.TurnRow{row}); err != nil {
						log.Printf("archive: %v", err)
					}
				}
			}

			outcome := g.Run()
			scores = append(scores, g.State.Score())

			if *recordPath != "" && i == *numGames-1 {
				rec := g.Record(*redName, *blueName)
				if err := rec.Save(*recordPath); err != nil {
					log.Printf("Failed to record game: %v", err)
				} else if !useTUI {
					log.Printf("Game recorded to %q", *recordPath)
				}
			}

			updates <- matchUpdate{
				Index:   i,
				Score:   g.State.Score(),
				Winner:  outcome.Winner,
				Moves:   len(g.MoveHistory),
				Crashed: g.Crashed,
			}
		}
	}

	if useTUI {
		go play()
		if _, err := tea.NewProgram(initialModel(*numGames, updates)).Run(); err != nil {
			log.SetOutput(os.Stderr)
			log.Fatalf("TUI error: %v", err)
		}
		log.SetOutput(os.Stderr)
	} else {
		play()
	}

	if archive != nil {
		if err := archive.Close(); err != nil {
			log.Printf("Failed to close archive: %v", err)
		} else if archive.Rows() > 0 {
			log.Printf("Archived %d turns to %s", archive.Rows(), archive.OutPath())
		}
	}

	printSummary(scores)
}

func replayGame(path string, verbose bool) {
	rec, err := replay.Load(path)
	if err != nil {
		log.Fatalf("Failed to load replay: %v", err)
	}
	log.Printf("Replaying %d moves (%s vs %s)", len(rec.Moves), rec.RedTeamName, rec.BlueTeamName)

	final, err := rec.Replay(func(state *game.GameState) {
		if verbose {
			fmt.Println(state)
		}
	})
	if err != nil {
		log.Fatalf("Replay failed: %v", err)
	}
	log.Printf("Final score: %d", final.Score())
}

func printSummary(scores []int) {
	if len(scores) == 0 {
		return
	}

	sum, redWins, blueWins := 0, 0, 0
	outcomes := make([]string, len(scores))
	for i, s := range scores {
		sum += s
		switch {
		case s > 0:
			redWins++
			outcomes[i] = "Red"
		case s < 0:
			blueWins++
			outcomes[i] = "Blue"
		default:
			outcomes[i] = "Tie"
		}
	}

	n := float64(len(scores))
	log.Printf("Average Score: %.2f", float64(sum)/n)
	log.Printf("Red Win Rate:  %d/%d (%.2f)", redWins, len(scores), float64(redWins)/n)
	log.Printf("Blue Win Rate: %d/%d (%.2f)", blueWins, len(scores), float64(blueWins)/n)
	log.Printf("Record: %s", strings.Join(outcomes, ", "))
}
